package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"seguid/pkg/meta"

	"github.com/spf13/viper"
)

// Load 初始化 Viper 配置
// cfgFile: 可选，用户显式指定的配置文件路径
// out: 提示信息输出位置 (通常是 stderr，避免污染 stdout 上的结果)
func Load(cfgFile string, out io.Writer) error {
	// 1. 设置默认值 (Defaults)
	setDefaults()

	// 2. 配置搜索路径
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// 搜索顺序：当前目录 -> ./.seguid -> ~/.seguid
		viper.AddConfigPath(".")
		viper.AddConfigPath(".seguid")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(filepath.Join(home, ".seguid"))
		}

		viper.SetConfigType("yaml")
		viper.SetConfigName("config") // 找 config.yaml
	}

	// 3. 读取环境变量 (SEGUID_DATABASE_DRIVER 等)
	viper.SetEnvPrefix("SEGUID")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// 4. 读取配置文件
	if err := viper.ReadInConfig(); err != nil {
		// 没找到配置文件不算错，默认值 + 环境变量足够用
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("fatal error config file: %w", err)
		}
	} else if viper.GetBool("log.verbose") {
		fmt.Fprintln(out, "Using config file:", viper.ConfigFileUsed())
	}

	return nil
}

func setDefaults() {
	// 目录数据库默认值
	viper.SetDefault("database.driver", meta.DriverSQLite)
	viper.SetDefault("database.path", filepath.Join(".seguid", "catalog.db"))
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.name", "seguid")
	viper.SetDefault("database.sslmode", "disable")

	// 0 表示使用 CPU 核数
	viper.SetDefault("digest.concurrency", 0)

	viper.SetDefault("log.sql", false)
	viper.SetDefault("log.verbose", false)
}

// Database 从 Viper 组装目录数据库配置
func Database() meta.Config {
	return meta.Config{
		Driver:   viper.GetString("database.driver"),
		Path:     viper.GetString("database.path"),
		Host:     viper.GetString("database.host"),
		Port:     viper.GetInt("database.port"),
		User:     viper.GetString("database.user"),
		Password: viper.GetString("database.password"),
		DBName:   viper.GetString("database.name"),
		SSLMode:  viper.GetString("database.sslmode"),
		LogSQL:   viper.GetBool("log.sql"),
	}
}

// Concurrency 批量计算的 worker 数
func Concurrency() int {
	return viper.GetInt("digest.concurrency")
}
