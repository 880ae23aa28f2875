package cloudfront

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedEndpoint は再生エンドポイントURLからパスパターンを導出できない場合のエラー
var ErrMalformedEndpoint = errors.New("再生エンドポイントの形式が不正です")

const (
	// minPathSegments は "/" で分割した際に必要なセグメント数（先頭の空要素を含む）
	minPathSegments = 5

	smoothStreamingMarker = ".ism"
	smoothStreamingSuffix = "/index.ism/*"
)

// PathPattern はエンドポイントのパスから導出したキャッシュビヘイビア用パスパターン
type PathPattern struct {
	Pattern         string
	SmoothStreaming bool // Microsoft Smooth Streaming のエンドポイントか
}

// GeneralizePath はエンドポイントのパスをワイルドカード付きのパスパターンに変換します
//
//	/out/v1/<group>/<asset>/index.mpd        -> /out/v1/*/<asset>/*
//	/out/v1/<group>/<asset>/index.ism/Manifest -> /out/v1/*/<asset>/*/index.ism/*
func GeneralizePath(path string) (PathPattern, error) {
	parts := strings.Split(path, "/")
	if len(parts) < minPathSegments {
		return PathPattern{}, fmt.Errorf("%w: パス '%s' のセグメント数が不足しています (%d < %d)",
			ErrMalformedEndpoint, path, len(parts), minPathSegments)
	}

	pattern := fmt.Sprintf("/%s/%s/*/%s/*", parts[1], parts[2], parts[4])

	// Smooth Streaming の場合は index.ism/* を付与する
	smoothStreaming := strings.Contains(path, smoothStreamingMarker)
	if smoothStreaming {
		pattern += smoothStreamingSuffix
	}

	return PathPattern{Pattern: pattern, SmoothStreaming: smoothStreaming}, nil
}
