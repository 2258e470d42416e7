package keys

import (
	"context"
	"io"

	"github.com/MGTheTrain/textbook-rsa/internal/domain/cryptoalg"
)

// KeyPairRepository defines the interface for catalog persistence
type KeyPairRepository interface {
	Create(ctx context.Context, record *KeyPairRecord) error
	List(ctx context.Context, query *KeyPairQuery) ([]*KeyPairRecord, error)
	GetByID(ctx context.Context, keyPairID string) (*KeyPairRecord, error)
	DeleteByID(ctx context.Context, keyPairID string) error
}

// KeyPairService generates key pairs into the catalog and manages them.
type KeyPairService interface {
	// Generate derives a new key pair of bitLength bits and stores it.
	// Generation is bounded by the configured timeout.
	Generate(ctx context.Context, bitLength int) (*KeyPairRecord, error)

	// List retrieves catalog entries matching query.
	List(ctx context.Context, query *KeyPairQuery) ([]*KeyPairRecord, error)

	// GetByID retrieves one catalog entry.
	GetByID(ctx context.Context, keyPairID string) (*KeyPairRecord, error)

	// DeleteByID removes one catalog entry.
	DeleteByID(ctx context.Context, keyPairID string) error

	// PublicKeyFile renders the public half of a key pair in key file format.
	PublicKeyFile(ctx context.Context, keyPairID string) ([]byte, error)
}

// CipherService encrypts and decrypts streams with catalog key pairs.
type CipherService interface {
	Encrypt(ctx context.Context, keyPairID string, in io.Reader, out io.Writer) (*cryptoalg.StreamStats, error)
	Decrypt(ctx context.Context, keyPairID string, in io.Reader, out io.Writer) (*cryptoalg.StreamStats, error)
}

// FileCipherService drives the engine over key directories and files, as the CLI does.
type FileCipherService interface {
	// GenerateToDir generates a key pair of bitLength bits and writes both key files into keyDir.
	GenerateToDir(ctx context.Context, bitLength int, keyDir string) (*cryptoalg.KeyPair, error)

	// EncryptFile encrypts inputPath into outputPath with the public key of keyDir.
	EncryptFile(ctx context.Context, inputPath, outputPath, keyDir string) (*cryptoalg.StreamStats, error)

	// DecryptFile decrypts inputPath into outputPath with the private key of keyDir.
	DecryptFile(ctx context.Context, inputPath, outputPath, keyDir string) (*cryptoalg.StreamStats, error)
}
