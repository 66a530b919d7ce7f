package config

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"seguid/pkg/meta"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir 切到临时目录，避免读到开发机上的 config.yaml
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoad_Defaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	chdir(t, t.TempDir())
	t.Setenv("HOME", t.TempDir())

	require.NoError(t, Load("", io.Discard))

	db := Database()
	assert.Equal(t, meta.DriverSQLite, db.Driver)
	assert.Equal(t, filepath.Join(".seguid", "catalog.db"), db.Path)
	assert.Equal(t, 5432, db.Port)
	assert.False(t, db.LogSQL)
	assert.Equal(t, 0, Concurrency())
}

func TestLoad_FileAndEnv(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	cfgFile := filepath.Join(t.TempDir(), "config.yaml")
	content := "database:\n  driver: postgres\n  host: db.internal\n  port: 6543\ndigest:\n  concurrency: 4\n"
	require.NoError(t, os.WriteFile(cfgFile, []byte(content), 0644))

	// 环境变量优先于配置文件
	t.Setenv("SEGUID_DATABASE_HOST", "override.internal")

	require.NoError(t, Load(cfgFile, io.Discard))

	db := Database()
	assert.Equal(t, meta.DriverPostgres, db.Driver)
	assert.Equal(t, "override.internal", db.Host)
	assert.Equal(t, 6543, db.Port)
	assert.Equal(t, 4, Concurrency())
}

func TestLoad_BadFile(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	cfgFile := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("database: [unclosed"), 0644))

	err := Load(cfgFile, io.Discard)
	assert.Error(t, err)
}
