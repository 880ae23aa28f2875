package cloudfront

import (
	"context"
	"fmt"
	"io"

	"empsync/internal/service/cfn"
)

// ResolveOptions はディストリビューションIDの解決に使用するパラメータ
type ResolveOptions struct {
	DistributionId string // オプション: 指定されていればそのまま使用
	StackName      string // オプション: DistributionId未指定時に使用
	Cfn            cfn.StackResourceAPI
	CloudFront     DistributionGetter
	In             io.Reader // 複数候補がある場合の選択入力
	Out            io.Writer
}

// ResolveDistributionId はディストリビューションIDを解決します
// IDが指定されていない場合はCloudFormationスタックから検出し、複数あれば対話的に選択させます
func ResolveDistributionId(ctx context.Context, opts ResolveOptions) (string, error) {
	// 既にディストリビューションIDが指定されている場合
	if opts.DistributionId != "" {
		return opts.DistributionId, nil
	}

	// スタック名が指定されていない場合
	if opts.StackName == "" {
		return "", fmt.Errorf("ディストリビューションID またはスタック名 (-S) を指定してください")
	}

	// スタックからCloudFrontディストリビューションを取得
	distributions, err := cfn.GetAllCloudFrontFromStack(ctx, opts.Cfn, opts.StackName, opts.Out)
	if err != nil {
		return "", fmt.Errorf("CloudFormationスタックからディストリビューションの取得に失敗: %w", err)
	}

	if len(distributions) == 0 {
		return "", fmt.Errorf("スタック '%s' にCloudFrontディストリビューションが見つかりませんでした", opts.StackName)
	}

	if len(distributions) == 1 {
		fmt.Fprintf(opts.Out, "✅ CloudFormationスタック '%s' からCloudFrontディストリビューション '%s' を検出しました\n", opts.StackName, distributions[0])
		return distributions[0], nil
	}

	// 複数のディストリビューションがある場合は選択
	return SelectDistribution(ctx, opts.CloudFront, distributions, opts.In, opts.Out)
}
