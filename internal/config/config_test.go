package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDotEnv_MissingFileIsIgnored(t *testing.T) {
	err := LoadDotEnv(filepath.Join(t.TempDir(), "does-not-exist.env"))
	assert.NoError(t, err)
}

func TestLoad_ReadsDotEnvWithoutOverridingEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "EMPSYNC_PACKAGING_GROUPS=grp-a,grp-b\nEMPSYNC_ORIGIN_SHIELD_REGION=us-east-1\nLOG_LEVEL=debug\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	// t.Setenvで登録しておくとテスト終了時に元の値へ戻る
	t.Setenv(EnvPackagingGroups, "")
	t.Setenv(EnvOriginShieldRegion, "")
	t.Setenv(EnvLogLevel, "warn")
	require.NoError(t, os.Unsetenv(EnvPackagingGroups))
	require.NoError(t, os.Unsetenv(EnvOriginShieldRegion))

	settings, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "grp-a,grp-b", settings.PackagingGroups)
	assert.Equal(t, "us-east-1", settings.OriginShieldRegion)
	assert.Equal(t, "warn", settings.LogLevel)
}

func TestFromEnv(t *testing.T) {
	t.Setenv(EnvProfile, "dev")
	t.Setenv(EnvRegion, "ap-northeast-1")
	t.Setenv(EnvStackName, "video-stack")

	settings := FromEnv()
	assert.Equal(t, "dev", settings.Profile)
	assert.Equal(t, "ap-northeast-1", settings.Region)
	assert.Equal(t, "video-stack", settings.StackName)
}
