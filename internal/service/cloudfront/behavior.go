package cloudfront

import (
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudfront/types"
)

const (
	// OriginIdPrefix は自動作成するオリジンIDの接頭辞
	OriginIdPrefix = "EMP-"

	// CachePolicyId は新規キャッシュビヘイビアに設定するマネージドキャッシュポリシー（Elemental-MediaPackage）
	CachePolicyId = "08627262-05a9-4f76-9ded-b50ca2e3a84f"
)

// streamingMethods はキャッシュビヘイビアで許可・キャッシュするHTTPメソッド
var streamingMethods = []types.Method{types.MethodHead, types.MethodGet, types.MethodOptions}

// sslProtocols はオリジンとの通信で許可するプロトコル
var sslProtocols = []types.SslProtocol{types.SslProtocolTLSv1, types.SslProtocolTLSv11, types.SslProtocolTLSv12}

// OriginIdFor はオリジンドメインから自動作成用のオリジンIDを生成します
// 例: abc.mediapackage.us-east-1.amazonaws.com -> EMP-abc
func OriginIdFor(domain string) string {
	label, _, _ := strings.Cut(domain, ".")
	return OriginIdPrefix + label
}

// OriginShieldRegion はOrigin Shieldのリージョン指定を正規化します
// 空白のみの場合は空文字（Origin Shield無効）を返します
func OriginShieldRegion(region string) string {
	return strings.TrimSpace(region)
}

// newOrigin はMediaPackage用のカスタムオリジンを作成します
func newOrigin(originId, domain, originShieldRegion string) types.Origin {
	origin := types.Origin{
		Id:         aws.String(originId),
		DomainName: aws.String(domain),
		OriginPath: aws.String(""),
		CustomHeaders: &types.CustomHeaders{
			Quantity: aws.Int32(0),
		},
		CustomOriginConfig: &types.CustomOriginConfig{
			HTTPPort:             aws.Int32(80),
			HTTPSPort:            aws.Int32(443),
			OriginProtocolPolicy: types.OriginProtocolPolicyHttpsOnly,
			OriginSslProtocols: &types.OriginSslProtocols{
				Quantity: aws.Int32(int32(len(sslProtocols))),
				Items:    append([]types.SslProtocol(nil), sslProtocols...),
			},
			OriginReadTimeout:      aws.Int32(30),
			OriginKeepaliveTimeout: aws.Int32(5),
		},
		ConnectionAttempts: aws.Int32(3),
		ConnectionTimeout:  aws.Int32(10),
	}

	// Origin Shieldはリージョンが指定された場合のみ設定する
	if originShieldRegion != "" {
		origin.OriginShield = &types.OriginShield{
			Enabled:            aws.Bool(true),
			OriginShieldRegion: aws.String(originShieldRegion),
		}
	}

	return origin
}

// newCacheBehavior はパスパターン用のキャッシュビヘイビアを作成します
func newCacheBehavior(pathPattern, originId string, smoothStreaming bool) types.CacheBehavior {
	return types.CacheBehavior{
		PathPattern:    aws.String(pathPattern),
		TargetOriginId: aws.String(originId),
		TrustedSigners: &types.TrustedSigners{
			Enabled:  aws.Bool(false),
			Quantity: aws.Int32(0),
		},
		ViewerProtocolPolicy: types.ViewerProtocolPolicyRedirectToHttps,
		AllowedMethods: &types.AllowedMethods{
			Quantity: aws.Int32(int32(len(streamingMethods))),
			Items:    append([]types.Method(nil), streamingMethods...),
			CachedMethods: &types.CachedMethods{
				Quantity: aws.Int32(int32(len(streamingMethods))),
				Items:    append([]types.Method(nil), streamingMethods...),
			},
		},
		SmoothStreaming: aws.Bool(smoothStreaming),
		Compress:        aws.Bool(false),
		LambdaFunctionAssociations: &types.LambdaFunctionAssociations{
			Quantity: aws.Int32(0),
		},
		FieldLevelEncryptionId: aws.String(""),
		CachePolicyId:          aws.String(CachePolicyId),
	}
}
