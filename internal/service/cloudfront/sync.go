package cloudfront

import (
	"context"
	"errors"
	"fmt"

	"empsync/internal/logging"
	"empsync/internal/service/mediapackage"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudfront"
	"github.com/aws/aws-sdk-go-v2/service/cloudfront/types"
	"github.com/aws/smithy-go"
	"go.uber.org/zap"
)

var (
	// ErrConcurrentModification はETagが古く条件付き更新が拒否された場合のエラー
	ErrConcurrentModification = errors.New("ディストリビューション設定が他の処理によって更新されています")

	ErrMissingDistributionId  = errors.New("ディストリビューションIDが指定されていません")
	ErrMissingPackagingGroups = errors.New("パッケージンググループが指定されていません")
)

// consoleUrlFormat はディストリビューション設定画面のURL
const consoleUrlFormat = "https://console.aws.amazon.com/cloudfront/home?#distribution-settings:%s"

// DistributionAPI は同期処理に必要なCloudFront APIのサブセット
// *cloudfront.Client がそのまま満たす
type DistributionAPI interface {
	GetDistributionConfig(ctx context.Context, params *cloudfront.GetDistributionConfigInput, optFns ...func(*cloudfront.Options)) (*cloudfront.GetDistributionConfigOutput, error)
	UpdateDistribution(ctx context.Context, params *cloudfront.UpdateDistributionInput, optFns ...func(*cloudfront.Options)) (*cloudfront.UpdateDistributionOutput, error)
}

// GetDistributionConfig はディストリビューション設定とETagを取得します
func GetDistributionConfig(ctx context.Context, client DistributionAPI, distributionId string) (*types.DistributionConfig, string, error) {
	resp, err := client.GetDistributionConfig(ctx, &cloudfront.GetDistributionConfigInput{
		Id: aws.String(distributionId),
	})
	if err != nil {
		return nil, "", fmt.Errorf("ディストリビューション '%s' の設定取得に失敗: %w", distributionId, err)
	}
	if resp.DistributionConfig == nil {
		return nil, "", fmt.Errorf("ディストリビューション '%s' の設定が空です", distributionId)
	}
	return resp.DistributionConfig, aws.ToString(resp.ETag), nil
}

// UpdateDistributionConfig はETagを指定してディストリビューション設定を条件付きで更新します
// ETagが古い場合は ErrConcurrentModification を返し、再試行は行いません
func UpdateDistributionConfig(ctx context.Context, client DistributionAPI, distributionId, eTag string, cfg *types.DistributionConfig) (string, error) {
	resp, err := client.UpdateDistribution(ctx, &cloudfront.UpdateDistributionInput{
		Id:                 aws.String(distributionId),
		IfMatch:            aws.String(eTag),
		DistributionConfig: cfg,
	})
	if err != nil {
		if isConcurrentModification(err) {
			return "", fmt.Errorf("%w: %w", ErrConcurrentModification, err)
		}
		return "", fmt.Errorf("ディストリビューション '%s' の更新に失敗: %w", distributionId, err)
	}
	return aws.ToString(resp.ETag), nil
}

// SyncDistribution はパッケージンググループの再生エンドポイントに合わせて
// ディストリビューションのキャッシュビヘイビアとオリジンを追加します
//
// 追加対象がない場合は更新APIを呼び出しません。
func SyncDistribution(ctx context.Context, cfClient DistributionAPI, assetAPI mediapackage.AssetAPI, opts SyncOptions, logger *zap.Logger) (SyncResult, error) {
	logger = logging.OrNop(logger).With(zap.String("distributionId", opts.DistributionId))

	if opts.DistributionId == "" {
		return SyncResult{}, ErrMissingDistributionId
	}
	if len(opts.PackagingGroups) == 0 {
		return SyncResult{}, ErrMissingPackagingGroups
	}

	cfg, eTag, err := GetDistributionConfig(ctx, cfClient, opts.DistributionId)
	if err != nil {
		return SyncResult{}, err
	}
	logger.Debug("ディストリビューション設定を取得しました", zap.String("eTag", eTag))

	endpoints, err := mediapackage.CollectEndpoints(ctx, assetAPI, opts.PackagingGroups, opts.Endpoints, logger)
	if err != nil {
		return SyncResult{}, err
	}

	patterns, err := BuildPatternMap(endpoints, logger)
	if err != nil {
		return SyncResult{}, err
	}

	merge := MergeDistributionConfig(cfg, patterns, opts.OriginShieldRegion, logger)

	result := SyncResult{
		DistributionId: opts.DistributionId,
		ETag:           eTag,
		Endpoints:      endpoints,
		Patterns:       patterns,
		Merge:          merge,
		Config:         cfg,
	}

	if !merge.Changed() {
		logger.Info("追加するキャッシュビヘイビアはありません")
		return result, nil
	}

	if opts.DryRun {
		logger.Info("ドライランのため更新をスキップします",
			zap.Strings("addedBehaviors", merge.AddedBehaviors),
			zap.Strings("addedOrigins", merge.AddedOrigins))
		return result, nil
	}

	newETag, err := UpdateDistributionConfig(ctx, cfClient, opts.DistributionId, eTag, cfg)
	if err != nil {
		return SyncResult{}, err
	}

	result.Updated = true
	result.NewETag = newETag
	logger.Info("ディストリビューション設定を更新しました",
		zap.Int("addedBehaviors", len(merge.AddedBehaviors)),
		zap.Int("addedOrigins", len(merge.AddedOrigins)))

	return result, nil
}

// StatusMessage は同期完了時に表示するメッセージを返します
func StatusMessage(distributionId string) string {
	return fmt.Sprintf("Configuration complete.Please wait for the updates on the CloudFront distribution to finish.You can check the status here "+consoleUrlFormat, distributionId)
}

// ConsoleUrl はディストリビューション設定画面のURLを返します
func ConsoleUrl(distributionId string) string {
	return fmt.Sprintf(consoleUrlFormat, distributionId)
}

// isConcurrentModification はETag不一致による更新拒否かを判定します
func isConcurrentModification(err error) bool {
	var preconditionFailed *types.PreconditionFailed
	if errors.As(err, &preconditionFailed) {
		return true
	}
	var invalidIfMatch *types.InvalidIfMatchVersion
	if errors.As(err, &invalidIfMatch) {
		return true
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "PreconditionFailed", "InvalidIfMatchVersion":
			return true
		}
	}
	return false
}
