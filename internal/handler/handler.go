// Package handler はLambdaイベントを受け取り、ディストリビューションの同期を実行する
package handler

import (
	"context"
	"net/http"

	"empsync/internal/logging"
	cfsvc "empsync/internal/service/cloudfront"
	"empsync/internal/service/mediapackage"

	"go.uber.org/zap"
)

// Event はLambda関数の入力
type Event struct {
	DistributionId     string `json:"DistributionId"`
	PackagingGroups    string `json:"PackagingGroups"`    // カンマ区切り
	OriginShieldRegion string `json:"OriginShieldRegion"` // 空白の場合Origin Shieldは無効
}

// Response はLambda関数の出力
type Response struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}

// Handler は同期処理に必要なクライアントを保持する
type Handler struct {
	CloudFront cfsvc.DistributionAPI
	Assets     mediapackage.AssetAPI
	Logger     *zap.Logger
}

// Handle はLambda関数のメインエントリーポイント
// エラーは加工せずにLambdaランタイムへ返す
func (h *Handler) Handle(ctx context.Context, event Event) (Response, error) {
	logger := logging.OrNop(h.Logger)
	logger.Info("イベントを受信しました",
		zap.String("distributionId", event.DistributionId),
		zap.String("packagingGroups", event.PackagingGroups),
		zap.String("originShieldRegion", event.OriginShieldRegion))

	result, err := cfsvc.SyncDistribution(ctx, h.CloudFront, h.Assets, cfsvc.SyncOptions{
		DistributionId:     event.DistributionId,
		PackagingGroups:    mediapackage.ParsePackagingGroups(event.PackagingGroups),
		OriginShieldRegion: event.OriginShieldRegion,
	}, logger)
	if err != nil {
		logger.Error("同期に失敗しました", zap.Error(err))
		return Response{}, err
	}

	logger.Info("同期が完了しました",
		zap.Bool("updated", result.Updated),
		zap.Strings("addedBehaviors", result.Merge.AddedBehaviors),
		zap.Strings("addedOrigins", result.Merge.AddedOrigins))

	return Response{
		StatusCode: http.StatusOK,
		Body:       cfsvc.StatusMessage(event.DistributionId),
	}, nil
}
