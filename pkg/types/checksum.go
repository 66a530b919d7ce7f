// pkg/types/checksum.go
package types

import (
	"bytes"
	"database/sql/driver"
	"errors"
	"fmt"
	"strconv"
	"unicode/utf8"
)

// ChecksumSize 是 SEGUID 的固定长度
// SHA-1 (20 字节) -> base64 (28 字符，含 1 个 '=') -> 去掉填充 = 27
const ChecksumSize = 27

var (
	// ErrInvalidTextEncoding 底层字节不是合法 UTF-8，无法渲染为文本
	ErrInvalidTextEncoding = errors.New("checksum is not valid utf-8 text")

	// ErrMalformedChecksum 长度不对或包含 base64 字母表以外的字符
	ErrMalformedChecksum = errors.New("malformed checksum")
)

// Checksum 代表一条生物序列的 SEGUID 指纹
// 这是一个“值对象”：定长数组，可直接用 == 比较，可以作为 map key
type Checksum [ChecksumSize]byte

// New 直接包装调用方提供的 27 字节，不做任何校验。
// 这是信任边界：来自存储层的旧标识符原样接收，非法字节只会在 Display 时暴露。
// 需要校验请使用 Parse。
func New(arr [ChecksumSize]byte) Checksum {
	return Checksum(arr)
}

// FromBytes 从切片构造，只检查长度
func FromBytes(b []byte) (Checksum, error) {
	var c Checksum
	if len(b) != ChecksumSize {
		return c, fmt.Errorf("%w: expected %d bytes, got %d", ErrMalformedChecksum, ChecksumSize, len(b))
	}
	copy(c[:], b)
	return c, nil
}

// Parse 是严格的构造方式：长度必须是 27，且每个字符都在 [A-Za-z0-9+/] 内
func Parse(s string) (Checksum, error) {
	c, err := FromBytes([]byte(s))
	if err != nil {
		return Checksum{}, err
	}
	if i := c.invalidIndex(); i >= 0 {
		return Checksum{}, fmt.Errorf("%w: invalid character %q at offset %d", ErrMalformedChecksum, s[i], i)
	}
	return c, nil
}

// MustParse 用于常量和测试，失败直接 panic
func MustParse(s string) Checksum {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Display 将 27 字节解释为 UTF-8 文本。
// 只有绕过哈希流程 (New/FromBytes) 构造的值才可能失败。
func (c Checksum) Display() (string, error) {
	if !utf8.Valid(c[:]) {
		return "", ErrInvalidTextEncoding
	}
	return string(c[:]), nil
}

// String 实现 fmt.Stringer，永不 panic
// 非法字节时退化为带引号的转义形式，方便日志排查
func (c Checksum) String() string {
	s, err := c.Display()
	if err != nil {
		return strconv.Quote(string(c[:]))
	}
	return s
}

// Bytes 返回底层字节的副本
func (c Checksum) Bytes() []byte {
	return bytes.Clone(c[:])
}

// Compare 按字节字典序比较，返回 -1 / 0 / +1
func (c Checksum) Compare(other Checksum) int {
	return bytes.Compare(c[:], other[:])
}

func (c Checksum) Less(other Checksum) bool { return c.Compare(other) < 0 }

func (c Checksum) IsZero() bool { return c == Checksum{} }

// IsValid 检查是否全部由 base64 字母表构成 (不含 '=')
func (c Checksum) IsValid() bool { return c.invalidIndex() < 0 }

func (c Checksum) invalidIndex() int {
	for i, b := range c {
		if !isBase64Char(b) {
			return i
		}
	}
	return -1
}

func isBase64Char(b byte) bool {
	switch {
	case b >= 'A' && b <= 'Z', b >= 'a' && b <= 'z', b >= '0' && b <= '9':
		return true
	case b == '+' || b == '/':
		return true
	}
	return false
}

// -----------------------------------------------------------------------------
// 编码接口 (JSON / YAML / SQL)
// -----------------------------------------------------------------------------

// MarshalText 实现 encoding.TextMarshaler
func (c Checksum) MarshalText() ([]byte, error) {
	s, err := c.Display()
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

// UnmarshalText 实现 encoding.TextUnmarshaler，走严格校验
func (c *Checksum) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Value 实现 driver.Valuer，让 Checksum 可以直接作为数据库主键
func (c Checksum) Value() (driver.Value, error) {
	return c.Display()
}

// Scan 实现 sql.Scanner
// 数据库里已有的值视为可信数据，只检查长度
func (c *Checksum) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	case nil:
		*c = Checksum{}
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Checksum", src)
	}
	parsed, err := FromBytes(raw)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
