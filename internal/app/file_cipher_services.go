package app

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/MGTheTrain/textbook-rsa/internal/domain/cryptoalg"
	"github.com/MGTheTrain/textbook-rsa/internal/domain/keys"
	"github.com/MGTheTrain/textbook-rsa/internal/pkg/logger"
)

// fileCipherService implements the FileCipherService interface over key directories
type fileCipherService struct {
	engine *Engine
	store  cryptoalg.KeyStore
	logger logger.Logger
}

// NewFileCipherService creates a new fileCipherService instance
func NewFileCipherService(engine *Engine, store cryptoalg.KeyStore, logger logger.Logger) (keys.FileCipherService, error) {
	if engine == nil || store == nil {
		return nil, fmt.Errorf("engine and key store are required")
	}

	return &fileCipherService{
		engine: engine,
		store:  store,
		logger: logger,
	}, nil
}

// GenerateToDir generates a key pair and writes both key files into keyDir
func (s *fileCipherService) GenerateToDir(ctx context.Context, bitLength int, keyDir string) (*cryptoalg.KeyPair, error) {
	pair, err := s.engine.Keys.GenerateKeyPair(ctx, bitLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate key pair: %w", err)
	}

	if err := s.store.WriteKeyPair(pair, keyDir); err != nil {
		return nil, err
	}
	return pair, nil
}

// EncryptFile encrypts inputPath into outputPath with the public key of keyDir
func (s *fileCipherService) EncryptFile(ctx context.Context, inputPath, outputPath, keyDir string) (*cryptoalg.StreamStats, error) {
	key, err := s.store.ReadPublicKey(keyDir)
	if err != nil {
		return nil, err
	}
	return s.transformFile(ctx, inputPath, outputPath, key, s.engine.Cipher.Encrypt)
}

// DecryptFile decrypts inputPath into outputPath with the private key of keyDir
func (s *fileCipherService) DecryptFile(ctx context.Context, inputPath, outputPath, keyDir string) (*cryptoalg.StreamStats, error) {
	key, err := s.store.ReadPrivateKey(keyDir)
	if err != nil {
		return nil, err
	}
	return s.transformFile(ctx, inputPath, outputPath, key, s.engine.Cipher.Decrypt)
}

// transformFile streams inputPath through transform into outputPath. A failed run removes the
// partial output; an outputPath naming the input file is rejected.
func (s *fileCipherService) transformFile(
	ctx context.Context,
	inputPath, outputPath string,
	key *cryptoalg.KeyHalf,
	transform func(context.Context, io.Reader, *cryptoalg.KeyHalf, io.Writer) (*cryptoalg.StreamStats, error),
) (*cryptoalg.StreamStats, error) {
	in, err := os.Open(filepath.Clean(inputPath))
	if err != nil {
		return nil, fmt.Errorf("unable to open input file: %w", err)
	}
	defer func() {
		if err := in.Close(); err != nil {
			log.Printf("warning: failed to close file: %v\n", err)
		}
	}()

	inInfo, err := in.Stat()
	if err != nil {
		return nil, fmt.Errorf("unable to stat input file: %w", err)
	}
	// creating the output would truncate the input before it is read
	if outInfo, err := os.Stat(filepath.Clean(outputPath)); err == nil && os.SameFile(inInfo, outInfo) {
		return nil, fmt.Errorf("%w: %s", keys.ErrOutputIsInput, outputPath)
	}

	out, err := os.Create(filepath.Clean(outputPath))
	if err != nil {
		return nil, fmt.Errorf("unable to create output file: %w", err)
	}

	stats, err := transform(ctx, in, key, out)
	if closeErr := out.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("failed to close output file: %w", closeErr)
	}
	if err != nil {
		if removeErr := os.Remove(filepath.Clean(outputPath)); removeErr != nil {
			s.logger.Warn("Failed to remove partial output ", outputPath, ": ", removeErr)
		}
		return nil, err
	}

	s.logger.Debug(fmt.Sprintf("Wrote %d bytes to %s in %d blocks", stats.BytesOut, outputPath, stats.Blocks))
	return stats, nil
}
