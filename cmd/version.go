package cmd

import (
	"runtime/debug"

	"github.com/spf13/cobra"
)

var Version = "dev" // ビルド時に -ldflags で設定される

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "バージョン情報を表示",
	Long:  AppName + `のバージョン情報を表示します。`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("%s version %s\n", AppName, resolveVersion())
	},
}

// resolveVersion は -ldflags 未指定の場合に go install 時のモジュールバージョンを使う
func resolveVersion() string {
	if Version != "dev" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return Version
}

func init() {
	RootCmd.AddCommand(versionCmd)
}
