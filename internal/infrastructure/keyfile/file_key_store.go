package keyfile

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/MGTheTrain/textbook-rsa/internal/domain/cryptoalg"
	"github.com/MGTheTrain/textbook-rsa/internal/pkg/logger"
)

const (
	// PublicKeyFileName holds e, n and the bit length (d under KeyNamingLegacy).
	PublicKeyFileName = "key_public.txt"
	// PrivateKeyFileName holds d, n and the bit length (e under KeyNamingLegacy).
	PrivateKeyFileName = "key_private.txt"
)

// KeyNaming selects which key file holds which exponent.
type KeyNaming int

const (
	// KeyNamingConventional stores e in key_public.txt and d in key_private.txt.
	KeyNamingConventional KeyNaming = iota
	// KeyNamingLegacy stores e in key_private.txt and d in key_public.txt, the layout of key
	// directories written by earlier versions of the tool.
	KeyNamingLegacy
)

// String returns the flag name of the naming.
func (n KeyNaming) String() string {
	switch n {
	case KeyNamingConventional:
		return "conventional"
	case KeyNamingLegacy:
		return "legacy"
	default:
		return fmt.Sprintf("KeyNaming(%d)", int(n))
	}
}

var _ cryptoalg.KeyStore = (*FileKeyStore)(nil)

// FileKeyStore implements cryptoalg.KeyStore on the local file system.
type FileKeyStore struct {
	naming KeyNaming
	logger logger.Logger
}

// NewFileKeyStore creates and returns a new instance of FileKeyStore
func NewFileKeyStore(naming KeyNaming, logger logger.Logger) (*FileKeyStore, error) {
	if naming != KeyNamingConventional && naming != KeyNamingLegacy {
		return nil, fmt.Errorf("unsupported key naming %v", naming)
	}

	return &FileKeyStore{
		naming: naming,
		logger: logger,
	}, nil
}

// EncryptionKeyPath returns the path of the file holding e inside dir.
func (s *FileKeyStore) EncryptionKeyPath(dir string) string {
	if s.naming == KeyNamingLegacy {
		return PrivateKeyPath(dir)
	}
	return PublicKeyPath(dir)
}

// DecryptionKeyPath returns the path of the file holding d inside dir.
func (s *FileKeyStore) DecryptionKeyPath(dir string) string {
	if s.naming == KeyNamingLegacy {
		return PublicKeyPath(dir)
	}
	return PrivateKeyPath(dir)
}

// PublicKeyPath returns the public key file path inside dir.
func PublicKeyPath(dir string) string {
	return filepath.Join(dir, PublicKeyFileName)
}

// PrivateKeyPath returns the private key file path inside dir.
func PrivateKeyPath(dir string) string {
	return filepath.Join(dir, PrivateKeyFileName)
}

// WriteKeyPair creates dir when missing and writes both key files, overwriting existing ones.
func (s *FileKeyStore) WriteKeyPair(pair *cryptoalg.KeyPair, dir string) error {
	if pair == nil {
		return fmt.Errorf("%w: key pair cannot be nil", cryptoalg.ErrInvalidKeyMaterial)
	}

	if err := os.MkdirAll(filepath.Clean(dir), 0700); err != nil {
		return fmt.Errorf("failed to create key directory: %w", err)
	}

	if err := s.writeKeyHalf(pair.Public(), s.EncryptionKeyPath(dir)); err != nil {
		return fmt.Errorf("failed to write public key: %w", err)
	}
	if err := s.writeKeyHalf(pair.Private(), s.DecryptionKeyPath(dir)); err != nil {
		return fmt.Errorf("failed to write private key: %w", err)
	}
	return nil
}

func (s *FileKeyStore) writeKeyHalf(half *cryptoalg.KeyHalf, path string) error {
	file, err := os.OpenFile(filepath.Clean(path), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create key file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.Printf("warning: failed to close file: %v\n", err)
		}
	}()

	if err := Encode(file, half); err != nil {
		return err
	}

	s.logger.Debug("Saved key file ", path)
	return nil
}

// ReadKeyHalf reads one key file.
func (s *FileKeyStore) ReadKeyHalf(path string) (*cryptoalg.KeyHalf, error) {
	file, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("unable to read key file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.Printf("warning: failed to close file: %v\n", err)
		}
	}()

	half, err := Decode(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return half, nil
}

// ReadPublicKey reads the half holding e from dir.
func (s *FileKeyStore) ReadPublicKey(dir string) (*cryptoalg.KeyHalf, error) {
	return s.ReadKeyHalf(s.EncryptionKeyPath(dir))
}

// ReadPrivateKey reads the half holding d from dir.
func (s *FileKeyStore) ReadPrivateKey(dir string) (*cryptoalg.KeyHalf, error) {
	return s.ReadKeyHalf(s.DecryptionKeyPath(dir))
}
