//go:build integration
// +build integration

package app

import (
	"testing"
	"time"

	"github.com/MGTheTrain/textbook-rsa/internal/domain/keys"
	"github.com/MGTheTrain/textbook-rsa/internal/infrastructure/persistence"
	"github.com/MGTheTrain/textbook-rsa/internal/pkg/config"
	"github.com/MGTheTrain/textbook-rsa/internal/pkg/testutil"

	"github.com/stretchr/testify/require"
)

// TestServices holds all application services and dependencies for testing
type TestServices struct {
	KeyPairService keys.KeyPairService
	CipherService  keys.CipherService

	// Infrastructure
	DBContext *persistence.TestContext
}

// TestKeySettings keeps generated keys small so integration tests stay fast
func TestKeySettings() config.KeySettings {
	settings := config.DefaultKeySettings()
	settings.DefaultBitLength = 256
	settings.MaxBitLength = 1024
	settings.GenerationTimeout = 30 * time.Second
	return settings
}

// SetupTestServices initializes all application services for integration tests
func SetupTestServices(t *testing.T, dbType string) *TestServices {
	t.Helper()

	logger := testutil.SetupTestLogger(t)
	dbContext := persistence.SetupTestDB(t, dbType)
	settings := TestKeySettings()

	engine, err := NewEngine(settings, logger)
	require.NoError(t, err, "Failed to create engine")

	keyPairService, err := NewKeyPairService(engine.Keys, dbContext.KeyPairRepo, settings, logger)
	require.NoError(t, err, "Failed to create KeyPairService")

	cipherService, err := NewCipherService(engine.Cipher, dbContext.KeyPairRepo, logger)
	require.NoError(t, err, "Failed to create CipherService")

	return &TestServices{
		KeyPairService: keyPairService,
		CipherService:  cipherService,
		DBContext:      dbContext,
	}
}
