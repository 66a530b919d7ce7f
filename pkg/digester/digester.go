package digester

import (
	"context"
	"runtime"

	"seguid/pkg/core"
	"seguid/pkg/fasta"
	"seguid/pkg/types"

	"golang.org/x/sync/errgroup"
)

// Result 一条记录及其 SEGUID
type Result struct {
	Record   fasta.Record
	Checksum types.Checksum
}

// Digester 并行计算一批记录的 SEGUID
// core.Digest 是纯函数，每个 worker 只读自己的输入，不需要加锁
type Digester struct {
	concurrency int
}

type Option func(*Digester)

// WithConcurrency 设置 worker 数量，<= 0 时使用 CPU 核数
func WithConcurrency(n int) Option {
	return func(d *Digester) {
		if n <= 0 {
			n = runtime.NumCPU()
		}
		d.concurrency = n
	}
}

func New(opts ...Option) *Digester {
	d := &Digester{concurrency: runtime.NumCPU()}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Digester) Concurrency() int { return d.concurrency }

// Run 计算所有记录的 SEGUID，结果顺序与输入一致
func (d *Digester) Run(ctx context.Context, records []fasta.Record) ([]Result, error) {
	results := make([]Result, len(records))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.concurrency)

	for i, rec := range records {
		i, rec := i, rec // go 1.21 下保持每次迭代独立的循环变量
		// 提前退出：context 被取消后不再派发新任务
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			// 每个 goroutine 只写自己的下标，无竞争
			results[i] = Result{
				Record:   rec,
				Checksum: core.DigestString(rec.Sequence),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	// 派发阶段被取消时 g.Wait 可能返回 nil，以调用方的 ctx 为准
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
