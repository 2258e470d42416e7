//go:build integration
// +build integration

package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/MGTheTrain/textbook-rsa/internal/domain/keys"
	"github.com/MGTheTrain/textbook-rsa/internal/infrastructure/persistence/models"
	"github.com/MGTheTrain/textbook-rsa/internal/pkg/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyPairSqliteRepository_Create(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)
	record := CreateTestKeyPairRecord(t, TestKeySize16, time.Now())

	require.NoError(t, ctx.KeyPairRepo.Create(context.Background(), record))

	var model models.KeyPairModel
	require.NoError(t, ctx.DB.First(&model, "id = ?", record.ID).Error)
	assert.Equal(t, record.KeyPair.Modulus.String(), model.Modulus)
	assert.Equal(t, "65537", model.PublicExponent)
}

func TestKeyPairSqliteRepository_GetByID(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)
	record := CreateTestKeyPairRecord(t, TestKeySize32, time.Now())
	require.NoError(t, ctx.KeyPairRepo.Create(context.Background(), record))

	fetched, err := ctx.KeyPairRepo.GetByID(context.Background(), record.ID)
	require.NoError(t, err)

	assert.Equal(t, record.ID, fetched.ID)
	assert.Equal(t, TestKeySize32, fetched.BitLength)
	assert.Zero(t, record.KeyPair.Modulus.Cmp(fetched.KeyPair.Modulus))
	assert.Zero(t, record.KeyPair.PrivateExponent.Cmp(fetched.KeyPair.PrivateExponent))
}

func TestKeyPairSqliteRepository_GetByID_NotFound(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	_, err := ctx.KeyPairRepo.GetByID(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, keys.ErrKeyPairNotFound)
}

func TestKeyPairSqliteRepository_Create_ValidationError(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	err := ctx.KeyPairRepo.Create(context.Background(), &keys.KeyPairRecord{})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation")

	record := CreateTestKeyPairRecord(t, TestKeySize16, time.Now())
	record.BitLength = TestKeySize32
	assert.Error(t, ctx.KeyPairRepo.Create(context.Background(), record))
}

func TestKeyPairSqliteRepository_List(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)
	now := time.Now()

	oldest := CreateTestKeyPairRecord(t, TestKeySize16, now.Add(-2*time.Hour))
	middle := CreateTestKeyPairRecord(t, TestKeySize32, now.Add(-time.Hour))
	newest := CreateTestKeyPairRecord(t, TestKeySize16, now)
	for _, r := range []*keys.KeyPairRecord{oldest, middle, newest} {
		require.NoError(t, ctx.KeyPairRepo.Create(context.Background(), r))
	}

	all, err := ctx.KeyPairRepo.List(context.Background(), keys.NewKeyPairQuery())
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{newest.ID, middle.ID, oldest.ID}, []string{all[0].ID, all[1].ID, all[2].ID})

	filtered, err := ctx.KeyPairRepo.List(context.Background(), &keys.KeyPairQuery{BitLength: TestKeySize16})
	require.NoError(t, err)
	assert.Len(t, filtered, 2)

	page, err := ctx.KeyPairRepo.List(context.Background(), &keys.KeyPairQuery{
		SortBy:    "date_time_created",
		SortOrder: "asc",
		Limit:     1,
		Offset:    1,
	})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, middle.ID, page[0].ID)

	all, err = ctx.KeyPairRepo.List(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestKeyPairSqliteRepository_List_InvalidQuery(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	_, err := ctx.KeyPairRepo.List(context.Background(), &keys.KeyPairQuery{SortBy: "modulus; DROP TABLE key_pairs"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid query parameters")
}

func TestKeyPairSqliteRepository_DeleteByID(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)
	record := CreateTestKeyPairRecord(t, TestKeySize16, time.Now())
	require.NoError(t, ctx.KeyPairRepo.Create(context.Background(), record))

	require.NoError(t, ctx.KeyPairRepo.DeleteByID(context.Background(), record.ID))

	_, err := ctx.KeyPairRepo.GetByID(context.Background(), record.ID)
	assert.ErrorIs(t, err, keys.ErrKeyPairNotFound)

	err = ctx.KeyPairRepo.DeleteByID(context.Background(), record.ID)
	assert.ErrorIs(t, err, keys.ErrKeyPairNotFound)
}

func TestOpenCatalog_SqliteFile(t *testing.T) {
	dsn := t.TempDir() + "/catalog/keys.db"

	db, err := OpenCatalog(config.DatabaseSettings{Type: config.SqliteDbType, DSN: dsn})
	require.NoError(t, err)
	t.Cleanup(func() { _ = CloseDB(db) })

	assert.True(t, db.Migrator().HasTable(&models.KeyPairModel{}))
}

func TestNewDBConnection_UnsupportedType(t *testing.T) {
	_, err := NewDBConnection(config.DatabaseSettings{Type: "oracle"})
	assert.Error(t, err)
}
