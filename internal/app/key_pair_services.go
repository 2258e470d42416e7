package app

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/MGTheTrain/textbook-rsa/internal/domain/cryptoalg"
	"github.com/MGTheTrain/textbook-rsa/internal/domain/keys"
	"github.com/MGTheTrain/textbook-rsa/internal/infrastructure/keyfile"
	"github.com/MGTheTrain/textbook-rsa/internal/pkg/config"
	"github.com/MGTheTrain/textbook-rsa/internal/pkg/logger"

	"github.com/google/uuid"
)

// keyPairService implements the KeyPairService interface on top of a key generator and the catalog
type keyPairService struct {
	generator cryptoalg.KeyGenerator
	repo      keys.KeyPairRepository
	settings  config.KeySettings
	logger    logger.Logger
}

// NewKeyPairService creates a new keyPairService instance
func NewKeyPairService(generator cryptoalg.KeyGenerator, repo keys.KeyPairRepository, settings config.KeySettings, logger logger.Logger) (keys.KeyPairService, error) {
	if generator == nil || repo == nil {
		return nil, fmt.Errorf("key generator and repository are required")
	}

	return &keyPairService{
		generator: generator,
		repo:      repo,
		settings:  settings,
		logger:    logger,
	}, nil
}

// Generate derives a key pair of bitLength bits, or of the configured default when bitLength is 0,
// within the configured generation timeout and stores it in the catalog.
func (s *keyPairService) Generate(ctx context.Context, bitLength int) (*keys.KeyPairRecord, error) {
	if bitLength == 0 {
		bitLength = s.settings.DefaultBitLength
	}
	if s.settings.MaxBitLength > 0 && bitLength > s.settings.MaxBitLength {
		return nil, fmt.Errorf("%w: %d bits exceeds the configured maximum of %d", cryptoalg.ErrInvalidBitLength, bitLength, s.settings.MaxBitLength)
	}

	if s.settings.GenerationTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.settings.GenerationTimeout)
		defer cancel()
	}

	started := time.Now()
	pair, err := s.generator.GenerateKeyPair(ctx, bitLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate key pair: %w", err)
	}

	record := &keys.KeyPairRecord{
		ID:              uuid.NewString(),
		BitLength:       bitLength,
		KeyPair:         pair,
		DateTimeCreated: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to store key pair: %w", err)
	}

	s.logger.Info(fmt.Sprintf("Generated %d-bit key pair %s in %s", bitLength, record.ID, time.Since(started).Round(time.Millisecond)))
	return record, nil
}

// List retrieves catalog entries matching query
func (s *keyPairService) List(ctx context.Context, query *keys.KeyPairQuery) ([]*keys.KeyPairRecord, error) {
	records, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	return records, nil
}

// GetByID retrieves one catalog entry
func (s *keyPairService) GetByID(ctx context.Context, keyPairID string) (*keys.KeyPairRecord, error) {
	record, err := s.repo.GetByID(ctx, keyPairID)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	return record, nil
}

// DeleteByID removes one catalog entry
func (s *keyPairService) DeleteByID(ctx context.Context, keyPairID string) error {
	if err := s.repo.DeleteByID(ctx, keyPairID); err != nil {
		return fmt.Errorf("failed to delete key pair: %w", err)
	}
	return nil
}

// PublicKeyFile renders the public half of a key pair in key file format
func (s *keyPairService) PublicKeyFile(ctx context.Context, keyPairID string) ([]byte, error) {
	record, err := s.repo.GetByID(ctx, keyPairID)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	var buf bytes.Buffer
	if err := keyfile.Encode(&buf, record.KeyPair.Public()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
