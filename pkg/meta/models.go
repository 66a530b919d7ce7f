package meta

import (
	"time"

	"seguid/pkg/types"

	"gorm.io/datatypes"
)

// SequenceModel 是序列目录中的一行
// SEGUID 本身就是主键：相同序列 (忽略大小写) 只会有一行
type SequenceModel struct {
	// Checksum 主键，27 个 base64 字符
	Checksum types.Checksum `gorm:"primaryKey;type:char(27)"`

	// Length 归一化后的序列长度
	Length int `gorm:"not null"`

	// Headers 见过这条序列的所有 FASTA 头部 (去重)
	// 同一条序列经常以不同 accession 出现在多个数据库里
	Headers datatypes.JSON

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName 强制指定表名
func (SequenceModel) TableName() string {
	return "sequences"
}
