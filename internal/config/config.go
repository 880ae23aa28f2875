// Package config は環境変数と.envファイルから実行設定を読み込む
package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// 参照する環境変数名
const (
	EnvProfile            = "AWS_PROFILE"
	EnvRegion             = "AWS_REGION"
	EnvStackName          = "AWS_STACK_NAME"
	EnvPackagingGroups    = "EMPSYNC_PACKAGING_GROUPS"
	EnvOriginShieldRegion = "EMPSYNC_ORIGIN_SHIELD_REGION"
	EnvLogLevel           = "LOG_LEVEL"
)

// DefaultDotEnvFile はカレントディレクトリで読み込む.envファイル名
const DefaultDotEnvFile = ".env"

// Settings はフラグで指定されなかった場合に使用する設定値
type Settings struct {
	Profile            string
	Region             string
	StackName          string
	PackagingGroups    string
	OriginShieldRegion string
	LogLevel           string
}

// LoadDotEnv は.envファイルを読み込んで環境変数に反映する
// ファイルが存在しない場合は何もしない。既に設定済みの環境変数は上書きしない
func LoadDotEnv(path string) error {
	if path == "" {
		path = DefaultDotEnvFile
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	return godotenv.Load(path)
}

// FromEnv は環境変数から設定を読み込む
func FromEnv() Settings {
	return Settings{
		Profile:            os.Getenv(EnvProfile),
		Region:             os.Getenv(EnvRegion),
		StackName:          os.Getenv(EnvStackName),
		PackagingGroups:    os.Getenv(EnvPackagingGroups),
		OriginShieldRegion: os.Getenv(EnvOriginShieldRegion),
		LogLevel:           os.Getenv(EnvLogLevel),
	}
}

// Load は.envファイルを読み込んだ上で環境変数から設定を作成する
func Load(dotEnvPath string) (Settings, error) {
	if err := LoadDotEnv(dotEnvPath); err != nil {
		return Settings{}, err
	}
	return FromEnv(), nil
}
