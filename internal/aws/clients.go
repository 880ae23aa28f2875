package aws

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	"github.com/aws/aws-sdk-go-v2/service/cloudfront"
	"github.com/aws/aws-sdk-go-v2/service/mediapackagevod"
)

// Clients はAWS設定と各サービスクライアントを管理
type Clients struct {
	cfg aws.Config

	// 遅延初期化されるクライアント群
	cloudfront      *cloudfront.Client
	mediaPackageVod *mediapackagevod.Client
	cfn             *cloudformation.Client
}

// NewAwsClients は認証情報からAWS設定を読み込んでクライアント管理構造体を作成
func NewAwsClients(ctx context.Context, awsCtx Context) (*Clients, error) {
	cfg, err := awsCtx.GetConfig(ctx)
	if err != nil {
		return nil, err
	}

	return NewAwsClientsFromConfig(cfg), nil
}

// NewAwsClientsFromConfig は読み込み済みのAWS設定からクライアント管理構造体を作成
func NewAwsClientsFromConfig(cfg aws.Config) *Clients {
	return &Clients{cfg: cfg}
}

// CloudFront は遅延初期化でCloudFrontクライアントを取得
func (c *Clients) CloudFront() *cloudfront.Client {
	if c.cloudfront == nil {
		c.cloudfront = cloudfront.NewFromConfig(c.cfg)
	}
	return c.cloudfront
}

// MediaPackageVod は遅延初期化でMediaPackage VODクライアントを取得
func (c *Clients) MediaPackageVod() *mediapackagevod.Client {
	if c.mediaPackageVod == nil {
		c.mediaPackageVod = mediapackagevod.NewFromConfig(c.cfg)
	}
	return c.mediaPackageVod
}

// Cfn は遅延初期化でCloudFormationクライアントを取得
func (c *Clients) Cfn() *cloudformation.Client {
	if c.cfn == nil {
		c.cfn = cloudformation.NewFromConfig(c.cfg)
	}
	return c.cfn
}
