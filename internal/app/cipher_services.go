package app

import (
	"context"
	"fmt"
	"io"

	"github.com/MGTheTrain/textbook-rsa/internal/domain/cryptoalg"
	"github.com/MGTheTrain/textbook-rsa/internal/domain/keys"
	"github.com/MGTheTrain/textbook-rsa/internal/pkg/logger"
)

// cipherService implements the CipherService interface with catalog key pairs
type cipherService struct {
	cipher cryptoalg.StreamCipher
	repo   keys.KeyPairRepository
	logger logger.Logger
}

// NewCipherService creates a new cipherService instance
func NewCipherService(cipher cryptoalg.StreamCipher, repo keys.KeyPairRepository, logger logger.Logger) (keys.CipherService, error) {
	if cipher == nil || repo == nil {
		return nil, fmt.Errorf("stream cipher and repository are required")
	}

	return &cipherService{
		cipher: cipher,
		repo:   repo,
		logger: logger,
	}, nil
}

// Encrypt encrypts in into out with the public half of the key pair
func (s *cipherService) Encrypt(ctx context.Context, keyPairID string, in io.Reader, out io.Writer) (*cryptoalg.StreamStats, error) {
	record, err := s.repo.GetByID(ctx, keyPairID)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	stats, err := s.cipher.Encrypt(ctx, in, record.KeyPair.Public(), out)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt with key pair %s: %w", keyPairID, err)
	}

	s.logger.Info(fmt.Sprintf("Encrypted %d bytes with key pair %s", stats.BytesIn, keyPairID))
	return stats, nil
}

// Decrypt decrypts in into out with the private half of the key pair
func (s *cipherService) Decrypt(ctx context.Context, keyPairID string, in io.Reader, out io.Writer) (*cryptoalg.StreamStats, error) {
	record, err := s.repo.GetByID(ctx, keyPairID)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	stats, err := s.cipher.Decrypt(ctx, in, record.KeyPair.Private(), out)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt with key pair %s: %w", keyPairID, err)
	}

	s.logger.Info(fmt.Sprintf("Decrypted %d bytes with key pair %s", stats.BytesOut, keyPairID))
	return stats, nil
}
