// pkg/app/app.go
package app

import (
	"context"
	"fmt"

	"seguid/pkg/config"
	"seguid/pkg/digester"
	"seguid/pkg/meta"
)

// App 是整个应用程序的依赖容器 (Dependency Container)
// 只有需要目录数据库的命令才会构造它
type App struct {
	DB         *meta.DB
	Repository *meta.Repository
	Digester   *digester.Digester
}

// NewApp 按 Viper 配置组装目录层，不知道具体的 CLI 命令
func NewApp(ctx context.Context) (*App, error) {
	db, err := meta.NewDB(ctx, config.Database())
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}

	return &App{
		DB:         db,
		Repository: meta.NewRepository(db),
		Digester:   digester.New(digester.WithConcurrency(config.Concurrency())),
	}, nil
}

// Close 释放数据库连接
func (a *App) Close() error {
	if a.DB == nil {
		return nil
	}
	return a.DB.Close()
}
