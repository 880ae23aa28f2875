package mediapackage

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/mediapackagevod"
)

// AssetAPI はエンドポイント収集に必要なMediaPackage VOD APIのサブセット
// *mediapackagevod.Client がそのまま満たす
type AssetAPI interface {
	ListAssets(ctx context.Context, params *mediapackagevod.ListAssetsInput, optFns ...func(*mediapackagevod.Options)) (*mediapackagevod.ListAssetsOutput, error)
	DescribeAsset(ctx context.Context, params *mediapackagevod.DescribeAssetInput, optFns ...func(*mediapackagevod.Options)) (*mediapackagevod.DescribeAssetOutput, error)
}

// EndpointOptions は再生エンドポイント取得のオプション
type EndpointOptions struct {
	Workers int    // DescribeAssetの同時実行数（1以下は逐次実行）
	OnAsset func() // アセット1件の取得が終わるたびに呼ばれる（進捗表示用、任意）。並列時は複数goroutineから呼ばれる
}
