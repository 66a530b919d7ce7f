package meta

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"seguid/pkg/types"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrSequenceNotFound = errors.New("sequence not found in catalog")

// Repository 封装所有对 SQL 数据库的操作
type Repository struct {
	db *DB
}

func NewRepository(db *DB) *Repository {
	return &Repository{db: db}
}

// IndexSequence 把一条序列登记到目录 (幂等)
// 已存在时只追加新的头部，重复头部忽略
func (r *Repository) IndexSequence(ctx context.Context, sum types.Checksum, header string, length int) error {
	return r.db.GetConn().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing SequenceModel
		err := tx.Where("checksum = ?", sum).First(&existing).Error

		// 场景 A: 第一次出现
		if errors.Is(err, gorm.ErrRecordNotFound) {
			headers, err := encodeHeaders(appendHeader(nil, header))
			if err != nil {
				return err
			}
			model := SequenceModel{
				Checksum: sum,
				Length:   length,
				Headers:  headers,
			}
			// 并发写入时另一个事务可能抢先插入，忽略即可
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "checksum"}},
				DoNothing: true,
			}).Create(&model).Error; err != nil {
				return fmt.Errorf("failed to index sequence: %w", err)
			}
			return nil
		}
		if err != nil {
			return err
		}

		// 场景 B: 已存在，合并头部
		current, err := Headers(&existing)
		if err != nil {
			return err
		}
		merged := appendHeader(current, header)
		if len(merged) == len(current) {
			return nil
		}
		headers, err := encodeHeaders(merged)
		if err != nil {
			return err
		}
		return tx.Model(&SequenceModel{}).
			Where("checksum = ?", sum).
			Update("headers", headers).Error
	})
}

// GetSequence 按 SEGUID 查询 (主键查找)
func (r *Repository) GetSequence(ctx context.Context, sum types.Checksum) (*SequenceModel, error) {
	var model SequenceModel
	err := r.db.GetConn().WithContext(ctx).
		Where("checksum = ?", sum).
		First(&model).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSequenceNotFound
	}
	if err != nil {
		return nil, err
	}
	return &model, nil
}

// ListSequences 按 SEGUID 字节序升序分页 (keyset pagination)
// after 为零值时从头开始
func (r *Repository) ListSequences(ctx context.Context, after types.Checksum, limit int) ([]SequenceModel, error) {
	conn := r.db.GetConn().WithContext(ctx)
	col := r.checksumColumn()

	q := conn.Order(col + " ASC")
	if !after.IsZero() {
		q = q.Where(col+" > ?", after)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	var models []SequenceModel
	err := q.Find(&models).Error
	return models, err
}

func (r *Repository) CountSequences(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.GetConn().WithContext(ctx).Model(&SequenceModel{}).Count(&count).Error
	return count, err
}

// checksumColumn 返回按字节序比较的列表达式
// SQLite 默认 BINARY 排序；Postgres 的排序规则跟 locale 走，需要显式指定 "C"
func (r *Repository) checksumColumn() string {
	if r.db.GetConn().Dialector.Name() == DriverPostgres {
		return `checksum COLLATE "C"`
	}
	return "checksum"
}

// Headers 解码 JSON 头部列表
func Headers(m *SequenceModel) ([]string, error) {
	if len(m.Headers) == 0 {
		return nil, nil
	}
	var out []string
	if err := json.Unmarshal(m.Headers, &out); err != nil {
		return nil, fmt.Errorf("failed to decode headers: %w", err)
	}
	return out, nil
}

func appendHeader(headers []string, header string) []string {
	if header == "" || slices.Contains(headers, header) {
		return headers
	}
	return append(headers, header)
}

func encodeHeaders(headers []string) (datatypes.JSON, error) {
	if headers == nil {
		headers = []string{}
	}
	data, err := json.Marshal(headers)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal headers: %w", err)
	}
	return datatypes.JSON(data), nil
}
