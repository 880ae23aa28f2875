package cmd

import (
	"fmt"
	"strconv"

	cfsvc "empsync/internal/service/cloudfront"
	"empsync/internal/service/common"
	"empsync/internal/service/mediapackage"

	"github.com/spf13/cobra"
)

// patternsCmd represents the patterns command
var patternsCmd = &cobra.Command{
	Use:   "patterns",
	Short: "再生エンドポイントから導出されるパスパターンを表示するコマンド",
	Long: `パッケージンググループの再生エンドポイントを取得し、CloudFrontのパスパターンとオリジンドメインの対応を表示します。
CloudFrontディストリビューションにはアクセスしません。

【使い方】
  ` + AppName + ` patterns -g grp-hls,grp-dash

【例】
  https://abc.egress.mediapackage-vod.us-east-1.amazonaws.com/out/v1/grp1/asset1/index.m3u8
  → /out/v1/*/asset1/*  (abc.egress.mediapackage-vod.us-east-1.amazonaws.com)`,
	Args: cobra.NoArgs,
	RunE: func(cmdCobra *cobra.Command, args []string) error {
		groupsFlag, _ := cmdCobra.Flags().GetString("groups")
		workers, _ := cmdCobra.Flags().GetInt("workers")

		groups, err := resolvePackagingGroups(groupsFlag)
		if err != nil {
			return err
		}

		ctx := cmdCobra.Context()
		clients, err := newClients(ctx)
		if err != nil {
			return err
		}

		bar := newAssetProgressBar(len(groups))
		endpoints, err := mediapackage.CollectEndpoints(ctx, clients.MediaPackageVod(), groups, mediapackage.EndpointOptions{
			Workers: workers,
			OnAsset: func() { _ = bar.Add(1) },
		}, logger)
		_ = bar.Finish()
		if err != nil {
			return fmt.Errorf(common.ListErrorFormat, common.ErrorIcon, "再生エンドポイント", err)
		}

		patterns, err := cfsvc.BuildPatternMap(endpoints, logger)
		if err != nil {
			return fmt.Errorf("❌ %w", err)
		}

		type row struct {
			pattern string
			origin  cfsvc.PatternOrigin
		}
		var rows []row
		for pattern, origin := range patterns.All() {
			rows = append(rows, row{pattern: pattern, origin: origin})
		}

		fmt.Printf("📋 再生エンドポイント: %d件\n", len(endpoints))
		common.DisplayList(rows, "パスパターン一覧", func(items []row) ([]common.TableColumn, [][]string) {
			columns := []common.TableColumn{{Header: "パスパターン"}, {Header: "オリジンドメイン"}, {Header: "オリジンID"}, {Header: "Smooth Streaming"}}
			data := make([][]string, len(items))
			for i, r := range items {
				data[i] = []string{
					r.pattern,
					r.origin.Domain,
					cfsvc.OriginIdFor(r.origin.Domain),
					strconv.FormatBool(r.origin.SmoothStreaming),
				}
			}
			return columns, data
		}, &common.DisplayOptions{ShowCount: true, EmptyMessage: "パスパターンが見つかりませんでした"})
		return nil
	},
	SilenceUsage: true,
}

func init() {
	RootCmd.AddCommand(patternsCmd)

	patternsCmd.Flags().StringP("groups", "g", "", "パッケージンググループID（カンマ区切り）")
	patternsCmd.Flags().Int("workers", 1, "アセット詳細取得の同時実行数")
}
