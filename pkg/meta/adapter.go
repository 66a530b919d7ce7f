package meta

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config 数据库配置
type Config struct {
	Driver string // "sqlite" (默认) 或 "postgres"

	// sqlite
	Path string

	// postgres
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string // "disable" for local

	// LogSQL 打开 GORM 的 SQL 日志
	LogSQL bool
}

// DB 封装了 GORM 实例，作为目录层的入口
type DB struct {
	conn *gorm.DB
}

// NewDB 初始化数据库连接并迁移表结构
func NewDB(ctx context.Context, cfg Config) (*DB, error) {
	dialector, err := openDialector(cfg)
	if err != nil {
		return nil, err
	}

	logLevel := logger.Silent
	if cfg.LogSQL {
		logLevel = logger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// 获取底层 sql.DB 以配置连接池
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if cfg.Driver == DriverPostgres {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetConnMaxLifetime(time.Hour)
	} else {
		// SQLite 只允许一个写者
		sqlDB.SetMaxOpenConns(1)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	if err := db.AutoMigrate(&SequenceModel{}); err != nil {
		return nil, fmt.Errorf("auto migration failed: %w", err)
	}

	return &DB{conn: db}, nil
}

func openDialector(cfg Config) (gorm.Dialector, error) {
	switch cfg.Driver {
	case DriverSQLite, "":
		if cfg.Path == "" {
			return nil, fmt.Errorf("sqlite path not set")
		}
		if dir := filepath.Dir(cfg.Path); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create catalog dir: %w", err)
			}
		}
		return sqlite.Open(cfg.Path), nil
	case DriverPostgres:
		dsn := fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%d sslmode=%s TimeZone=UTC",
			cfg.Host, cfg.User, cfg.Password, cfg.DBName, cfg.Port, cfg.SSLMode,
		)
		return postgres.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}
}

// NewWithConn 允许使用现有的 GORM 连接初始化 DB (单元测试用)
func NewWithConn(conn *gorm.DB) *DB {
	return &DB{conn: conn}
}

func (d *DB) AutoMigrate(models ...any) error {
	return d.conn.AutoMigrate(models...)
}

func (d *DB) GetConn() *gorm.DB {
	return d.conn
}

// Close 关闭底层连接池
func (d *DB) Close() error {
	sqlDB, err := d.conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
