// Package cloudfront はMediaPackageの再生エンドポイントからパスパターンを導出し、
// CloudFrontディストリビューションのキャッシュビヘイビアとオリジンを同期する
package cloudfront

import (
	"empsync/internal/service/mediapackage"

	"github.com/aws/aws-sdk-go-v2/service/cloudfront/types"
)

// DistributionInfo はCloudFrontディストリビューションの情報を保持する構造体
type DistributionInfo struct {
	Id         string
	DomainName string
	Comment    string
}

// SyncOptions は同期処理のオプション
type SyncOptions struct {
	DistributionId     string   // 必須: 対象ディストリビューションID
	PackagingGroups    []string // 必須: パッケージンググループID
	OriginShieldRegion string   // オプション: 空白の場合Origin Shieldは無効
	DryRun             bool     // オプション: 更新APIを呼ばずに結果のみ返す
	Endpoints          mediapackage.EndpointOptions
}

// SyncResult は同期処理の結果
type SyncResult struct {
	DistributionId string
	ETag           string // 取得時のETag
	NewETag        string // 更新後のETag（更新した場合のみ）
	Endpoints      []string
	Patterns       *PatternMap
	Merge          MergeResult
	Updated        bool
	Config         *types.DistributionConfig // マージ後の設定
}
