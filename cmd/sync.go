package cmd

import (
	"errors"
	"fmt"
	"strconv"

	cfsvc "empsync/internal/service/cloudfront"
	"empsync/internal/service/common"
	"empsync/internal/service/mediapackage"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudfront/types"
	"github.com/spf13/cobra"
)

// syncCmd represents the sync command
var syncCmd = &cobra.Command{
	Use:   "sync [distribution-id]",
	Short: "再生エンドポイントに合わせてキャッシュビヘイビアとオリジンを追加するコマンド",
	Long: `MediaPackage VODのパッケージンググループから再生エンドポイントを取得し、
CloudFrontディストリビューションに不足しているキャッシュビヘイビアとオリジンを追加します。
ディストリビューションIDを直接指定するか、CloudFormationスタック名から自動検出できます。

【使い方】
  ` + AppName + ` sync E2ABC123DEF456 -g grp-hls,grp-dash          # ディストリビューションを同期
  ` + AppName + ` sync -S my-stack -g grp-hls -o us-east-1          # スタックから検出、Origin Shield有効
  ` + AppName + ` sync E2ABC123DEF456 -g grp-hls --dry-run           # 追加内容の確認のみ

【例】
  ` + AppName + ` sync E2ABC123DEF456 -g grp-hls,grp-mss
  → 不足しているパスパターン（例: /out/v1/*/<asset>/*）のキャッシュビヘイビアを先頭に追加します`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmdCobra *cobra.Command, args []string) error {
		groupsFlag, _ := cmdCobra.Flags().GetString("groups")
		originShieldRegion, _ := cmdCobra.Flags().GetString("origin-shield-region")
		dryRun, _ := cmdCobra.Flags().GetBool("dry-run")
		workers, _ := cmdCobra.Flags().GetInt("workers")

		groups, err := resolvePackagingGroups(groupsFlag)
		if err != nil {
			return err
		}
		if originShieldRegion == "" {
			originShieldRegion = settings.OriginShieldRegion
		}

		ctx := cmdCobra.Context()
		clients, err := newClients(ctx)
		if err != nil {
			return err
		}

		distributionId, err := resolveDistribution(ctx, cmdCobra, clients, args)
		if err != nil {
			return err
		}

		fmt.Printf("🚀 CloudFrontディストリビューション (%s) を同期します...\n", distributionId)
		fmt.Printf("   パッケージンググループ: %v\n", groups)
		if region := cfsvc.OriginShieldRegion(originShieldRegion); region != "" {
			fmt.Printf("   Origin Shield: %s\n", region)
		}

		bar := newAssetProgressBar(len(groups))
		result, err := cfsvc.SyncDistribution(ctx, clients.CloudFront(), clients.MediaPackageVod(), cfsvc.SyncOptions{
			DistributionId:     distributionId,
			PackagingGroups:    groups,
			OriginShieldRegion: originShieldRegion,
			DryRun:             dryRun,
			Endpoints: mediapackage.EndpointOptions{
				Workers: workers,
				OnAsset: func() { _ = bar.Add(1) },
			},
		}, logger)
		_ = bar.Finish()
		if err != nil {
			if errors.Is(err, cfsvc.ErrConcurrentModification) {
				fmt.Println("⚠️  設定を取得してから更新するまでの間に他の変更が入りました。再度実行してください")
			}
			return fmt.Errorf(common.UpdateErrorFormat, common.ErrorIcon, "ディストリビューション", err)
		}

		fmt.Printf("📋 再生エンドポイント: %d件、パスパターン: %d件\n", len(result.Endpoints), result.Patterns.Len())

		if !result.Merge.Changed() {
			fmt.Println("✅ 追加が必要なキャッシュビヘイビアはありません")
			return nil
		}

		displayAddedBehaviors(result.Config, result.Merge.AddedBehaviors)
		common.PrintSimpleList(common.ListOutput{
			Title:        "\n追加するオリジン",
			Items:        result.Merge.AddedOrigins,
			ResourceName: "オリジン",
		})

		if dryRun {
			fmt.Println("\n📋 ドライランのため更新は行いません")
			return nil
		}

		fmt.Printf("\n"+common.UpdateSuccessFormat+"\n", common.SuccessIcon, "ディストリビューション "+distributionId)
		fmt.Println(cfsvc.StatusMessage(distributionId))
		return nil
	},
	SilenceUsage: true,
}

// displayAddedBehaviors は追加したキャッシュビヘイビアを表示順（評価順）でテーブル表示する
func displayAddedBehaviors(cfg *types.DistributionConfig, added []string) {
	addedSet := make(map[string]struct{}, len(added))
	for _, pattern := range added {
		addedSet[pattern] = struct{}{}
	}

	var behaviors []types.CacheBehavior
	for _, behavior := range cfg.CacheBehaviors.Items {
		if _, ok := addedSet[aws.ToString(behavior.PathPattern)]; ok {
			behaviors = append(behaviors, behavior)
		}
	}

	common.DisplayList(behaviors, "追加するキャッシュビヘイビア", func(items []types.CacheBehavior) ([]common.TableColumn, [][]string) {
		columns := []common.TableColumn{{Header: "パスパターン"}, {Header: "オリジンID"}, {Header: "Smooth Streaming"}}
		data := make([][]string, len(items))
		for i, behavior := range items {
			data[i] = []string{
				aws.ToString(behavior.PathPattern),
				aws.ToString(behavior.TargetOriginId),
				strconv.FormatBool(aws.ToBool(behavior.SmoothStreaming)),
			}
		}
		return columns, data
	}, &common.DisplayOptions{ShowCount: true})
}

func init() {
	RootCmd.AddCommand(syncCmd)

	syncCmd.Flags().StringP("groups", "g", "", "パッケージンググループID（カンマ区切り）")
	syncCmd.Flags().StringP("origin-shield-region", "o", "", "Origin Shieldのリージョン（空の場合は無効）")
	syncCmd.Flags().Bool("dry-run", false, "更新を行わずに追加内容のみ表示")
	syncCmd.Flags().Int("workers", 1, "アセット詳細取得の同時実行数")
}
