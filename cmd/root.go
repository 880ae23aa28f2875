package cmd

import (
	"fmt"
	"os"

	"empsync/internal/aws"
	"empsync/internal/config"
	"empsync/internal/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// AppName はコマンド名
const AppName = "empsync"

var region string
var profile string
var stackName string
var logLevel string

// 実行時に初期化される共通状態
var (
	settings config.Settings
	awsCtx   aws.Context
	logger   = zap.NewNop()
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   AppName,
	Short: "MediaPackage VODの再生エンドポイントをCloudFrontディストリビューションに同期するツール",
	Long: `MediaPackage VODのパッケージンググループから再生エンドポイントを取得し、
CloudFrontディストリビューションに不足しているキャッシュビヘイビアとオリジンを追加します。
既存のキャッシュビヘイビアとオリジンは変更・削除しません。`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := RootCmd.Execute()
	_ = logger.Sync()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&region, "region", "R", "", "AWSリージョン")
	RootCmd.PersistentFlags().StringVarP(&profile, "profile", "P", "", "AWSプロファイル")
	RootCmd.PersistentFlags().StringVarP(&stackName, "stack", "S", "", "CloudFormationスタック名")
	RootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "ログレベル (debug, info, warn, error)")

	// コマンド実行前に共通で設定の読み込みを行う
	RootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		// ヘルプ・バージョン表示の場合はスキップ
		if cmd.Name() == "help" || cmd.Name() == "version" {
			return nil
		}
		return setup(cmd)
	}
}

// setup は.env・環境変数・フラグから実行設定を組み立てる
func setup(cmd *cobra.Command) error {
	var err error
	settings, err = config.Load(config.DefaultDotEnvFile)
	if err != nil {
		return fmt.Errorf("❌ .envファイルの読み込みに失敗: %w", err)
	}

	if logLevel == "" {
		logLevel = settings.LogLevel
	}
	logger = logging.NewConsoleLogger(logging.ParseLevel(logLevel, zapcore.WarnLevel), cmd.ErrOrStderr())

	resolveProfile(cmd)
	if region == "" {
		region = settings.Region
	}
	awsCtx = aws.Context{Profile: profile, Region: region}
	return nil
}

// resolveProfile はフラグまたは環境変数からプロファイルを決定する
// どちらもなければSDKのデフォルト認証情報チェーンに任せる
func resolveProfile(cmd *cobra.Command) {
	// プロファイルがすでに指定されている場合は何もしない
	if profile != "" {
		return
	}
	if settings.Profile == "" {
		return
	}
	profile = settings.Profile
	cmd.Println("🔍 環境変数 AWS_PROFILE の値 '" + profile + "' を使用します")
}
