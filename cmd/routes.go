package cmd

import (
	"fmt"
	"strconv"

	cfsvc "empsync/internal/service/cloudfront"
	"empsync/internal/service/common"
	"empsync/internal/service/mediapackage"

	"github.com/spf13/cobra"
)

// routesCmd represents the routes command
var routesCmd = &cobra.Command{
	Use:   "routes [distribution-id]",
	Short: "再生エンドポイントがどのキャッシュビヘイビアで処理されるか確認するコマンド",
	Long: `パッケージンググループの再生エンドポイントごとに、CloudFrontで一致するキャッシュビヘイビアとオリジンを表示します。
キャッシュビヘイビアは先頭から評価され、どれにも一致しない場合はデフォルトビヘイビアで処理されます。
--preview を指定すると、sync で追加される予定のキャッシュビヘイビアを反映した状態で確認します（更新は行いません）。

【使い方】
  ` + AppName + ` routes E2ABC123DEF456 -g grp-hls            # 現在の設定で確認
  ` + AppName + ` routes -S my-stack -g grp-hls --preview      # 同期後の状態を確認`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmdCobra *cobra.Command, args []string) error {
		groupsFlag, _ := cmdCobra.Flags().GetString("groups")
		preview, _ := cmdCobra.Flags().GetBool("preview")

		groups, err := resolvePackagingGroups(groupsFlag)
		if err != nil {
			return err
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

		cfg, _, err := cfsvc.GetDistributionConfig(ctx, clients.CloudFront(), distributionId)
		if err != nil {
			return fmt.Errorf(common.GetErrorFormat, common.ErrorIcon, "ディストリビューション設定", err)
		}

		bar := newAssetProgressBar(len(groups))
		endpoints, err := mediapackage.CollectEndpoints(ctx, clients.MediaPackageVod(), groups, mediapackage.EndpointOptions{
			OnAsset: func() { _ = bar.Add(1) },
		}, logger)
		_ = bar.Finish()
		if err != nil {
			return fmt.Errorf(common.ListErrorFormat, common.ErrorIcon, "再生エンドポイント", err)
		}

		if preview {
			patterns, err := cfsvc.BuildPatternMap(endpoints, logger)
			if err != nil {
				return fmt.Errorf("❌ %w", err)
			}
			merge := cfsvc.MergeDistributionConfig(cfg, patterns, settings.OriginShieldRegion, logger)
			fmt.Printf("📋 プレビュー: キャッシュビヘイビア %d件、オリジン %d件を追加した状態で確認します\n",
				len(merge.AddedBehaviors), len(merge.AddedOrigins))
		}

		checks, err := cfsvc.CheckRoutes(cfg, endpoints)
		if err != nil {
			return fmt.Errorf("❌ %w", err)
		}

		common.DisplayList(checks, "再生エンドポイントのルーティング ("+distributionId+")", func(items []cfsvc.RouteCheck) ([]common.TableColumn, [][]string) {
			columns := []common.TableColumn{{Header: "パス"}, {Header: "パスパターン"}, {Header: "オリジンID"}, {Header: "デフォルト"}}
			data := make([][]string, len(items))
			for i, check := range items {
				data[i] = []string{check.Path, check.PathPattern, check.OriginId, strconv.FormatBool(check.Default)}
			}
			return columns, data
		}, &common.DisplayOptions{ShowCount: true, EmptyMessage: "再生エンドポイントが見つかりませんでした"})

		defaults := 0
		for _, check := range checks {
			if check.Default {
				defaults++
			}
		}
		if defaults > 0 {
			fmt.Printf("\n⚠️  %d件のエンドポイントがデフォルトビヘイビアで処理されます。`%s sync` で追加できます\n", defaults, AppName)
		}
		return nil
	},
	SilenceUsage: true,
}

func init() {
	RootCmd.AddCommand(routesCmd)

	routesCmd.Flags().StringP("groups", "g", "", "パッケージンググループID（カンマ区切り）")
	routesCmd.Flags().Bool("preview", false, "同期で追加されるキャッシュビヘイビアを反映した状態で確認")
}
