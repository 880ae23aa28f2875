package cmd

import (
	"context"
	"fmt"
	"os"

	"empsync/internal/aws"
	cfsvc "empsync/internal/service/cloudfront"
	"empsync/internal/service/mediapackage"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

// resolveStackName はコマンドライン引数または環境変数からスタック名を決定し、グローバル変数 stackName にセットする
func resolveStackName(cmd *cobra.Command) {
	if stackName != "" {
		cmd.Println("🔍 -Sオプションで指定されたスタック名 '" + stackName + "' を使用します")
		return
	}
	if settings.StackName != "" {
		cmd.Println("🔍 環境変数 AWS_STACK_NAME の値 '" + settings.StackName + "' を使用します")
		stackName = settings.StackName
	}
	// どちらもなければstackNameは空のまま
}

// resolvePackagingGroups はフラグまたは環境変数からパッケージンググループIDを決定する
func resolvePackagingGroups(flagValue string) ([]string, error) {
	value := flagValue
	if value == "" {
		value = settings.PackagingGroups
	}
	groups := mediapackage.ParsePackagingGroups(value)
	if len(groups) == 0 {
		return nil, fmt.Errorf("❌ エラー: パッケージンググループ (-g) または環境変数 EMPSYNC_PACKAGING_GROUPS を指定してください")
	}
	return groups, nil
}

// resolveDistribution は引数またはスタックから対象ディストリビューションIDを決定する
func resolveDistribution(ctx context.Context, cmd *cobra.Command, clients *aws.Clients, args []string) (string, error) {
	resolveStackName(cmd)

	var distributionId string
	if len(args) > 0 {
		distributionId = args[0]
	}

	id, err := cfsvc.ResolveDistributionId(ctx, cfsvc.ResolveOptions{
		DistributionId: distributionId,
		StackName:      stackName,
		Cfn:            clients.Cfn(),
		CloudFront:     clients.CloudFront(),
		In:             cmd.InOrStdin(),
		Out:            cmd.OutOrStdout(),
	})
	if err != nil {
		return "", fmt.Errorf("❌ %w", err)
	}
	return id, nil
}

// newAssetProgressBar はアセット詳細取得の進捗バーを作成する
// パッケージンググループごとに最大1アセットを取得するため、グループ数を上限とする
func newAssetProgressBar(total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowBytes(false),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("アセット取得中..."),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

// newClients はAWSクライアントを作成する
func newClients(ctx context.Context) (*aws.Clients, error) {
	clients, err := aws.NewAwsClients(ctx, awsCtx)
	if err != nil {
		return nil, fmt.Errorf("❌ AWS設定の読み込みエラー: %w", err)
	}
	return clients, nil
}
