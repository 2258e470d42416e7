//go:build unit
// +build unit

package app

import (
	"context"

	"github.com/MGTheTrain/textbook-rsa/internal/domain/cryptoalg"
	"github.com/MGTheTrain/textbook-rsa/internal/domain/keys"

	"github.com/stretchr/testify/mock"
)

// MockKeyGenerator is a mock implementation of cryptoalg.KeyGenerator
type MockKeyGenerator struct {
	mock.Mock
}

func (m *MockKeyGenerator) GenerateKeyPair(ctx context.Context, totalBits int) (*cryptoalg.KeyPair, error) {
	args := m.Called(ctx, totalBits)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cryptoalg.KeyPair), args.Error(1)
}

// MockKeyPairRepository is a mock implementation of keys.KeyPairRepository
type MockKeyPairRepository struct {
	mock.Mock
}

func (m *MockKeyPairRepository) Create(ctx context.Context, record *keys.KeyPairRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockKeyPairRepository) List(ctx context.Context, query *keys.KeyPairQuery) ([]*keys.KeyPairRecord, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*keys.KeyPairRecord), args.Error(1)
}

func (m *MockKeyPairRepository) GetByID(ctx context.Context, keyPairID string) (*keys.KeyPairRecord, error) {
	args := m.Called(ctx, keyPairID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*keys.KeyPairRecord), args.Error(1)
}

func (m *MockKeyPairRepository) DeleteByID(ctx context.Context, keyPairID string) error {
	args := m.Called(ctx, keyPairID)
	return args.Error(0)
}
