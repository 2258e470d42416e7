//go:build unit
// +build unit

package v1

import (
	"context"
	"io"

	"github.com/MGTheTrain/textbook-rsa/internal/domain/cryptoalg"
	"github.com/MGTheTrain/textbook-rsa/internal/domain/keys"

	"github.com/stretchr/testify/mock"
)

// MockKeyPairService is a mock implementation of KeyPairService
type MockKeyPairService struct {
	mock.Mock
}

func (m *MockKeyPairService) Generate(ctx context.Context, bitLength int) (*keys.KeyPairRecord, error) {
	args := m.Called(ctx, bitLength)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*keys.KeyPairRecord), args.Error(1)
}

func (m *MockKeyPairService) List(ctx context.Context, query *keys.KeyPairQuery) ([]*keys.KeyPairRecord, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*keys.KeyPairRecord), args.Error(1)
}

func (m *MockKeyPairService) GetByID(ctx context.Context, keyPairID string) (*keys.KeyPairRecord, error) {
	args := m.Called(ctx, keyPairID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*keys.KeyPairRecord), args.Error(1)
}

func (m *MockKeyPairService) DeleteByID(ctx context.Context, keyPairID string) error {
	args := m.Called(ctx, keyPairID)
	return args.Error(0)
}

func (m *MockKeyPairService) PublicKeyFile(ctx context.Context, keyPairID string) ([]byte, error) {
	args := m.Called(ctx, keyPairID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// MockCipherService is a mock implementation of CipherService. The configured output is written to out.
type MockCipherService struct {
	mock.Mock
}

func (m *MockCipherService) Encrypt(ctx context.Context, keyPairID string, in io.Reader, out io.Writer) (*cryptoalg.StreamStats, error) {
	return m.run(m.Called(ctx, keyPairID, in, out), in, out)
}

func (m *MockCipherService) Decrypt(ctx context.Context, keyPairID string, in io.Reader, out io.Writer) (*cryptoalg.StreamStats, error) {
	return m.run(m.Called(ctx, keyPairID, in, out), in, out)
}

func (m *MockCipherService) run(args mock.Arguments, in io.Reader, out io.Writer) (*cryptoalg.StreamStats, error) {
	read, err := io.ReadAll(in)
	if err != nil {
		return nil, err
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	if _, err := out.Write(args.Get(0).([]byte)); err != nil {
		return nil, err
	}
	return &cryptoalg.StreamStats{Blocks: 1, BytesIn: int64(len(read)), BytesOut: int64(len(args.Get(0).([]byte)))}, args.Error(1)
}
