// Package mediapackage はMediaPackage VODのパッケージンググループから再生エンドポイントを収集する
package mediapackage

import (
	"context"
	"fmt"
	"strings"

	"empsync/internal/logging"
	"empsync/internal/service/common"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/mediapackagevod"
	"go.uber.org/zap"
)

// assetsPerGroup はパッケージンググループごとに取得するアセット数
// パスパターンの導出にはグループ内の1アセットで十分
const assetsPerGroup = 1

// ParsePackagingGroups はカンマ区切りのパッケージンググループIDを分割する
// 前後の空白は取り除き、空の要素は無視する
func ParsePackagingGroups(groups string) []string {
	var result []string
	for _, group := range strings.Split(groups, ",") {
		group = strings.TrimSpace(group)
		if group == "" {
			continue
		}
		result = append(result, group)
	}
	return result
}

// ListAssetIds は各パッケージンググループからアセットIDを取得します
// アセットが存在しないグループはスキップされます
func ListAssetIds(ctx context.Context, api AssetAPI, groups []string, logger *zap.Logger) ([]string, error) {
	logger = logging.OrNop(logger)
	var assetIds []string

	for _, group := range groups {
		resp, err := api.ListAssets(ctx, &mediapackagevod.ListAssetsInput{
			MaxResults:       aws.Int32(assetsPerGroup),
			PackagingGroupId: aws.String(group),
		})
		if err != nil {
			return nil, fmt.Errorf("パッケージンググループ '%s' のアセット一覧取得に失敗: %w", group, err)
		}

		if len(resp.Assets) == 0 {
			logger.Debug("アセットが見つからないためスキップします", zap.String("packagingGroup", group))
			continue
		}

		for _, asset := range resp.Assets {
			if asset.Id == nil {
				continue
			}
			assetIds = append(assetIds, *asset.Id)
		}
	}

	logger.Debug("アセットIDを取得しました", zap.Strings("assetIds", assetIds))
	return assetIds, nil
}

// GetPlayableEndpoints は各アセットのEgressEndpointのURLを取得します
// 結果はアセットIDの順序、アセット内ではエンドポイントの順序で並び、重複は除去しません
func GetPlayableEndpoints(ctx context.Context, api AssetAPI, assetIds []string, opts EndpointOptions, logger *zap.Logger) ([]string, error) {
	logger = logging.OrNop(logger)

	perAsset, err := common.MapOrdered(opts.Workers, assetIds, func(assetId string) ([]string, error) {
		urls, err := describeAssetEndpoints(ctx, api, assetId)
		if opts.OnAsset != nil {
			opts.OnAsset()
		}
		return urls, err
	})
	if err != nil {
		return nil, err
	}

	var endpoints []string
	for _, urls := range perAsset {
		endpoints = append(endpoints, urls...)
	}

	logger.Debug("再生エンドポイントを取得しました", zap.Strings("endpoints", endpoints))
	return endpoints, nil
}

// CollectEndpoints はパッケージンググループIDから再生エンドポイントまでを一括で取得します
func CollectEndpoints(ctx context.Context, api AssetAPI, groups []string, opts EndpointOptions, logger *zap.Logger) ([]string, error) {
	assetIds, err := ListAssetIds(ctx, api, groups, logger)
	if err != nil {
		return nil, err
	}
	return GetPlayableEndpoints(ctx, api, assetIds, opts, logger)
}

func describeAssetEndpoints(ctx context.Context, api AssetAPI, assetId string) ([]string, error) {
	resp, err := api.DescribeAsset(ctx, &mediapackagevod.DescribeAssetInput{
		Id: aws.String(assetId),
	})
	if err != nil {
		return nil, fmt.Errorf("アセット '%s' の詳細取得に失敗: %w", assetId, err)
	}

	var urls []string
	for _, endpoint := range resp.EgressEndpoints {
		if endpoint.Url == nil {
			continue
		}
		urls = append(urls, *endpoint.Url)
	}
	return urls, nil
}
