package commands

import (
	"fmt"
	"os"

	"seguid/pkg/app"
	"seguid/pkg/config"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// 标记需要目录数据库的子命令
const annotationCatalog = "catalog"

var (
	cfgFile string
	// 全局应用实例，只在需要目录的子命令里初始化
	TV *app.App
)

var rootCmd = &cobra.Command{
	Use:           "seguid",
	Short:         "SEGUID: sequence globally unique identifiers",
	SilenceUsage:  true,
	SilenceErrors: true,
	// 【关键】PersistentPreRunE 会在所有子命令执行前运行
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// 纯计算命令 (digest / fasta) 不碰数据库
		if cmd.Annotations[annotationCatalog] == "" {
			return nil
		}

		var err error
		TV, err = app.NewApp(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to initialize seguid: %w", err)
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if TV == nil {
			return nil
		}
		err := TV.Close()
		TV = nil
		return err
	},
}

// Execute 是入口
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// 在初始化时，加载配置
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml or $HOME/.seguid/config.yaml)")

	// --db 覆盖 database.path，yaml 和环境变量里同样可以配置
	rootCmd.PersistentFlags().String("db", "", "Path of the SQLite sequence catalog")
	if err := viper.BindPFlag("database.path", rootCmd.PersistentFlags().Lookup("db")); err != nil {
		fmt.Println("Failed to bind flag:", err)
		os.Exit(1)
	}
}

// initConfig 读取配置文件和环境变量
func initConfig() {
	if err := config.Load(cfgFile, rootCmd.ErrOrStderr()); err != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), "Config error:", err)
		os.Exit(1)
	}
}
