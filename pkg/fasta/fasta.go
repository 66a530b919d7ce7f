package fasta

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
)

// 单行最大长度：未换行的基因组序列可能非常长
const maxLineSize = 64 << 20

var ErrMissingHeader = errors.New("sequence data before first '>' header")

// Record 一条 FASTA 记录 (头部 + 序列)
type Record struct {
	Header   string
	Sequence string
}

// ID 返回头部的第一个 token (通常是 accession)
func (r Record) ID() string {
	fields := strings.Fields(r.Header)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// Parse 读取所有 FASTA 记录
// '>' 开头的行是头部，后续行拼接成序列；空行和 ';' 注释行跳过。
// 不校验序列字母表。
func Parse(r io.Reader) ([]Record, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var (
		records []Record
		current *Record
		seq     strings.Builder
		lineNo  int
	)

	flush := func() {
		if current != nil {
			current.Sequence = seq.String()
			records = append(records, *current)
			seq.Reset()
		}
	}

	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 || line[0] == ';' {
			continue
		}
		if line[0] == '>' {
			flush()
			current = &Record{Header: strings.TrimSpace(string(line[1:]))}
			continue
		}
		if current == nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, ErrMissingHeader)
		}
		seq.Write(line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read fasta: %w", err)
	}
	flush()

	return records, nil
}
