package core

import (
	"crypto/sha1"
	"encoding/base64"
	"strings"

	"seguid/pkg/types"
)

// 编码选项：标准字母表 + '=' 填充 (RFC 4648 §4)
// 20 字节输入固定输出 28 个字符，末尾恰好一个 '='
var enc = base64.StdEncoding

// Digest 计算序列的 SEGUID
// 流程：大写归一化 -> SHA-1 -> base64 -> 去掉 '=' -> 定长数组
// 对任意输入 (含空切片) 都有定义，不会失败
//
// SHA-1 是 SEGUID 约定的一部分，换算法会和其他工具算出的标识符不兼容
func Digest(seq []byte) types.Checksum {
	// 1. 归一化
	hash := sha1.Sum(Normalize(seq))

	// 2. 编码并去掉填充
	encoded := strings.TrimRight(enc.EncodeToString(hash[:]), "=")

	// 3. 装入定长数组
	var sum types.Checksum
	copy(sum[:], encoded)
	return sum
}

// DigestString 是 Digest 的字符串版本
func DigestString(seq string) types.Checksum {
	return Digest([]byte(seq))
}

// Normalize 把 a-z 映射为 A-Z，其他字节保持不变
// 返回新切片，不修改输入
func Normalize(seq []byte) []byte {
	out := make([]byte, len(seq))
	for i, b := range seq {
		if 'a' <= b && b <= 'z' {
			b -= 'a' - 'A'
		}
		out[i] = b
	}
	return out
}
