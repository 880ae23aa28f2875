package cmd

import (
	"testing"

	"empsync/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePackagingGroups(t *testing.T) {
	orig := settings
	t.Cleanup(func() { settings = orig })

	settings = config.Settings{PackagingGroups: "env-a, env-b"}

	groups, err := resolvePackagingGroups("flag-a,flag-b")
	require.NoError(t, err)
	assert.Equal(t, []string{"flag-a", "flag-b"}, groups)

	groups, err = resolvePackagingGroups("")
	require.NoError(t, err)
	assert.Equal(t, []string{"env-a", "env-b"}, groups)

	settings = config.Settings{}
	_, err = resolvePackagingGroups(" , ")
	assert.Error(t, err)
}

func TestRootCmd_RegistersCommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range RootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, name := range []string{"sync", "routes", "patterns", "version"} {
		assert.True(t, names[name], "%s コマンドが登録されていません", name)
	}
}
