package meta

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"seguid/pkg/core"
	"seguid/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestRepo 构建隔离的测试环境
func setupTestRepo(t *testing.T) *Repository {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	metaDB := NewWithConn(db)
	require.NoError(t, metaDB.AutoMigrate(&SequenceModel{}))

	return NewRepository(metaDB)
}

// mustIndex 登记序列，失败则终止
func mustIndex(t *testing.T, repo *Repository, seq, header string, msgAndArgs ...any) types.Checksum {
	t.Helper()
	sum := core.DigestString(seq)
	err := repo.IndexSequence(context.Background(), sum, header, len(seq))
	require.NoError(t, err, msgAndArgs...)
	return sum
}

func TestRepository_SequenceLifecycle(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	sum := mustIndex(t, repo, "ACGTACGTACGT", "seq1 test")

	stored, err := repo.GetSequence(ctx, sum)
	require.NoError(t, err)
	assert.Equal(t, sum, stored.Checksum)
	assert.Equal(t, "If6HIvcnRSQDVNiAoefAzySc6i4", stored.Checksum.String())
	assert.Equal(t, 12, stored.Length)
	assert.JSONEq(t, `["seq1 test"]`, string(stored.Headers))
}

func TestRepository_IndexSequence_MergesHeaders(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	// 大小写不同的同一条序列 -> 同一个 SEGUID
	sum := mustIndex(t, repo, "ACGTACGTACGT", "a")
	mustIndex(t, repo, "acgtacgtacgt", "b")
	mustIndex(t, repo, "ACGTACGTACGT", "a", "duplicate header should be a no-op")

	stored, err := repo.GetSequence(ctx, sum)
	require.NoError(t, err)
	headers, err := Headers(stored)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, headers)

	count, err := repo.CountSequences(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count, "Should have exactly 1 record after duplicate inserts")
}

func TestRepository_IndexSequence_EmptyHeader(t *testing.T) {
	repo := setupTestRepo(t)
	sum := mustIndex(t, repo, "", "")

	stored, err := repo.GetSequence(context.Background(), sum)
	require.NoError(t, err)
	headers, err := Headers(stored)
	require.NoError(t, err)
	assert.Empty(t, headers)
	assert.Equal(t, "2jmj7l5rSw0yVb/vlWAYkK/YBwk", stored.Checksum.String())
}

func TestRepository_GetSequence_NotFound(t *testing.T) {
	repo := setupTestRepo(t)
	_, err := repo.GetSequence(context.Background(), core.DigestString("MISSING"))
	assert.ErrorIs(t, err, ErrSequenceNotFound)
}

func TestRepository_ListSequences_ByteOrder(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	var sums []types.Checksum
	for i := 0; i < 20; i++ {
		sums = append(sums, mustIndex(t, repo, fmt.Sprintf("SEQ%02d", i), fmt.Sprintf("h%d", i)))
	}

	// 1. 一次取全部：必须严格按字节序升序
	all, err := repo.ListSequences(ctx, types.Checksum{}, 0)
	require.NoError(t, err)
	require.Len(t, all, 20)
	for i := 1; i < len(all); i++ {
		assert.True(t, all[i-1].Checksum.Less(all[i].Checksum), "rows %d/%d out of order", i-1, i)
	}

	// 2. 分页遍历结果应与一次取全部相同
	var paged []types.Checksum
	var after types.Checksum
	for {
		page, err := repo.ListSequences(ctx, after, 7)
		require.NoError(t, err)
		if len(page) == 0 {
			break
		}
		for _, m := range page {
			paged = append(paged, m.Checksum)
		}
		after = page[len(page)-1].Checksum
	}
	require.Len(t, paged, 20)
	for i, m := range all {
		assert.Equal(t, m.Checksum, paged[i])
	}
	assert.ElementsMatch(t, sums, paged)
}

func TestNewDB_SQLiteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "catalog.db")
	db, err := NewDB(context.Background(), Config{Driver: DriverSQLite, Path: path})
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	sum := mustIndex(t, repo, "MKQRST", "prot")

	stored, err := repo.GetSequence(context.Background(), sum)
	require.NoError(t, err)
	assert.Equal(t, 6, stored.Length)
	assert.FileExists(t, path)
}

func TestNewDB_InvalidConfig(t *testing.T) {
	_, err := NewDB(context.Background(), Config{Driver: "oracle"})
	assert.Error(t, err)

	_, err = NewDB(context.Background(), Config{Driver: DriverSQLite})
	assert.Error(t, err)
}
