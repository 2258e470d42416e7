//go:build integration
// +build integration

package persistence

import (
	"math/big"
	"strings"
	"testing"
	"time"

	"github.com/MGTheTrain/textbook-rsa/internal/domain/cryptoalg"
	"github.com/MGTheTrain/textbook-rsa/internal/domain/keys"
	"github.com/MGTheTrain/textbook-rsa/internal/pkg/config"
	"github.com/MGTheTrain/textbook-rsa/internal/pkg/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Test constants
const (
	TestKeySize16 = 16
	TestKeySize32 = 32
)

// TestContext holds test database and repositories
type TestContext struct {
	DB          *gorm.DB
	KeyPairRepo keys.KeyPairRepository
}

// SetupTestDB initializes test database with automatic cleanup
func SetupTestDB(t *testing.T, dbType string) *TestContext {
	t.Helper()

	var settings config.DatabaseSettings
	cleanupFunc := func() {}

	switch dbType {
	case config.SqliteDbType:
		settings = config.DatabaseSettings{
			Type: config.SqliteDbType,
			DSN:  ":memory:",
		}

	case config.PostgresDbType:
		uniqueDBName := "test_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
		settings = config.DatabaseSettings{
			Type: config.PostgresDbType,
			DSN:  "user=postgres password=postgres host=localhost port=5432 sslmode=disable",
			Name: uniqueDBName,
		}
		cleanupFunc = func() {
			adminDSN := "user=postgres password=postgres host=localhost port=5432 dbname=postgres sslmode=disable"
			_ = DropDatabase(adminDSN, uniqueDBName)
		}

	default:
		t.Fatalf("Unsupported database type: %s", dbType)
	}

	db, err := OpenCatalog(settings)
	require.NoError(t, err, "Failed to open key pair catalog")

	t.Cleanup(func() {
		_ = CloseDB(db)
		cleanupFunc()
	})

	repo, err := NewGormKeyPairRepository(db, testutil.SetupTestLogger(t))
	require.NoError(t, err, "Failed to create key pair repository")

	return &TestContext{
		DB:          db,
		KeyPairRepo: repo,
	}
}

// CreateTestKeyPairRecord creates a catalog record around fixed small-prime key material.
// The private exponent is not meaningful; repositories do not check it.
func CreateTestKeyPairRecord(t *testing.T, bitLength int, created time.Time) *keys.KeyPairRecord {
	t.Helper()

	// the smallest prime of bitLength/2+1 bits, squared, always fits the block widths
	p := new(big.Int).Lsh(big.NewInt(1), uint(bitLength/2))
	for !p.ProbablyPrime(20) {
		p.Add(p, big.NewInt(1))
	}
	n := new(big.Int).Mul(p, p)

	return &keys.KeyPairRecord{
		ID:        uuid.NewString(),
		BitLength: bitLength,
		KeyPair: &cryptoalg.KeyPair{
			PublicExponent:  big.NewInt(cryptoalg.PublicExponent),
			PrivateExponent: big.NewInt(12345),
			Modulus:         n,
			BitLength:       bitLength,
		},
		DateTimeCreated: created,
	}
}
