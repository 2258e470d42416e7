//go:build unit
// +build unit

package app

import (
	"bytes"
	"context"
	"testing"

	"github.com/MGTheTrain/textbook-rsa/internal/domain/cryptoalg"
	"github.com/MGTheTrain/textbook-rsa/internal/domain/keys"
	"github.com/MGTheTrain/textbook-rsa/internal/infrastructure/cryptography"
	"github.com/MGTheTrain/textbook-rsa/internal/pkg/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupCipherService(t *testing.T) (keys.CipherService, *MockKeyPairRepository) {
	t.Helper()

	logger := testutil.SetupTestLogger(t)
	cipher, err := cryptography.NewStreamCipher(cryptoalg.FramingMarker, logger)
	require.NoError(t, err)

	repo := new(MockKeyPairRepository)
	service, err := NewCipherService(cipher, repo, logger)
	require.NoError(t, err)
	return service, repo
}

func TestCipherService_EncryptDecrypt(t *testing.T) {
	service, repo := setupCipherService(t)
	record := smallRecord()
	repo.On("GetByID", mock.Anything, record.ID).Return(record, nil)

	plaintext := []byte("two-byte blocks with a 17-bit modulus")

	var ciphertext bytes.Buffer
	stats, err := service.Encrypt(context.Background(), record.ID, bytes.NewReader(plaintext), &ciphertext)
	require.NoError(t, err)
	assert.Equal(t, int64(len(plaintext)), stats.BytesIn)
	assert.Equal(t, 0, ciphertext.Len()%3)

	var decrypted bytes.Buffer
	_, err = service.Decrypt(context.Background(), record.ID, &ciphertext, &decrypted)
	require.NoError(t, err)
	assert.Equal(t, plaintext, decrypted.Bytes())
}

func TestCipherService_UnknownKeyPair(t *testing.T) {
	service, repo := setupCipherService(t)
	repo.On("GetByID", mock.Anything, "missing").Return(nil, keys.ErrKeyPairNotFound)

	var out bytes.Buffer
	_, err := service.Encrypt(context.Background(), "missing", bytes.NewReader([]byte("x")), &out)
	assert.ErrorIs(t, err, keys.ErrKeyPairNotFound)

	_, err = service.Decrypt(context.Background(), "missing", bytes.NewReader(make([]byte, 3)), &out)
	assert.ErrorIs(t, err, keys.ErrKeyPairNotFound)
}

func TestCipherService_TruncatedCiphertext(t *testing.T) {
	service, repo := setupCipherService(t)
	record := smallRecord()
	repo.On("GetByID", mock.Anything, record.ID).Return(record, nil)

	var out bytes.Buffer
	_, err := service.Decrypt(context.Background(), record.ID, bytes.NewReader([]byte{1, 2}), &out)
	assert.ErrorIs(t, err, cryptoalg.ErrStreamTruncated)
}
