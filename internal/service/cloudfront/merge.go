package cloudfront

import (
	"empsync/internal/logging"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudfront/types"
	"go.uber.org/zap"
)

// MergeResult はディストリビューション設定へのマージ結果
type MergeResult struct {
	AddedBehaviors   []string // 追加したキャッシュビヘイビアのパスパターン（処理順）
	AddedOrigins     []string // 追加したオリジンのID（処理順）
	ExistingPatterns []string // 既に定義済みのためスキップしたパスパターン
}

// Changed は設定に変更があったかを返します
func (r MergeResult) Changed() bool {
	return len(r.AddedBehaviors) > 0 || len(r.AddedOrigins) > 0
}

// MergeDistributionConfig は導出したパスパターンをディストリビューション設定にマージします
//
// 既存のキャッシュビヘイビアとオリジンは変更・削除しません。未定義のパスパターンに対して
// キャッシュビヘイビアを先頭に追加し、未定義のオリジンドメインに対してオリジンを末尾に追加します。
// 各リストのQuantityは最終的な要素数で再計算されます。
func MergeDistributionConfig(cfg *types.DistributionConfig, patterns *PatternMap, originShieldRegion string, logger *zap.Logger) MergeResult {
	logger = logging.OrNop(logger)
	normalizeDistributionConfig(cfg)

	originShieldRegion = OriginShieldRegion(originShieldRegion)

	logger.Debug("マージ前の設定",
		zap.Int("cacheBehaviors", len(cfg.CacheBehaviors.Items)),
		zap.Int("origins", len(cfg.Origins.Items)),
		zap.Bool("originShield", originShieldRegion != ""))

	// ドメイン -> オリジンID
	origins := make(map[string]string, len(cfg.Origins.Items))
	for _, origin := range cfg.Origins.Items {
		origins[aws.ToString(origin.DomainName)] = aws.ToString(origin.Id)
	}

	existing := make(map[string]struct{}, len(cfg.CacheBehaviors.Items))
	for _, behavior := range cfg.CacheBehaviors.Items {
		existing[aws.ToString(behavior.PathPattern)] = struct{}{}
	}

	var result MergeResult
	for pattern, info := range patterns.All() {
		if _, ok := existing[pattern]; ok {
			logger.Debug("キャッシュビヘイビアは定義済みです", zap.String("pathPattern", pattern))
			result.ExistingPatterns = append(result.ExistingPatterns, pattern)
			continue
		}

		originId, known := origins[info.Domain]
		if !known {
			originId = OriginIdFor(info.Domain)
		}

		// 新しいビヘイビアは既存のものより優先させるため先頭に追加する
		behavior := newCacheBehavior(pattern, originId, info.SmoothStreaming)
		cfg.CacheBehaviors.Items = append([]types.CacheBehavior{behavior}, cfg.CacheBehaviors.Items...)
		existing[pattern] = struct{}{}
		result.AddedBehaviors = append(result.AddedBehaviors, pattern)
		logger.Info("キャッシュビヘイビアを追加します",
			zap.String("pathPattern", pattern),
			zap.String("originId", originId),
			zap.Bool("smoothStreaming", info.SmoothStreaming))

		if !known {
			cfg.Origins.Items = append(cfg.Origins.Items, newOrigin(originId, info.Domain, originShieldRegion))
			origins[info.Domain] = originId
			result.AddedOrigins = append(result.AddedOrigins, originId)
			logger.Info("オリジンを追加します", zap.String("originId", originId), zap.String("domain", info.Domain))
		}
	}

	cfg.CacheBehaviors.Quantity = aws.Int32(int32(len(cfg.CacheBehaviors.Items)))
	cfg.Origins.Quantity = aws.Int32(int32(len(cfg.Origins.Items)))

	logger.Debug("マージ後の設定",
		zap.Int("cacheBehaviors", len(cfg.CacheBehaviors.Items)),
		zap.Int("origins", len(cfg.Origins.Items)))

	return result
}

// normalizeDistributionConfig は存在しないキャッシュビヘイビア・オリジンのリストを空リストで初期化します
func normalizeDistributionConfig(cfg *types.DistributionConfig) {
	if cfg.CacheBehaviors == nil {
		cfg.CacheBehaviors = &types.CacheBehaviors{Quantity: aws.Int32(0)}
	}
	if cfg.CacheBehaviors.Items == nil {
		cfg.CacheBehaviors.Items = []types.CacheBehavior{}
	}
	if cfg.Origins == nil {
		cfg.Origins = &types.Origins{Quantity: aws.Int32(0)}
	}
	if cfg.Origins.Items == nil {
		cfg.Origins.Items = []types.Origin{}
	}
}
