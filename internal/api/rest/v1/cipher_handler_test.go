//go:build unit
// +build unit

package v1

import (
	"bytes"
	"fmt"
	"net/http"
	"testing"

	"github.com/MGTheTrain/textbook-rsa/internal/domain/cryptoalg"
	"github.com/MGTheTrain/textbook-rsa/internal/domain/keys"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCipherHandler_Encrypt_Success(t *testing.T) {
	mockService := new(MockCipherService)
	handler := NewCipherHandler(mockService, 1024)

	mockService.On("Encrypt", mock.Anything, "abc", mock.Anything, mock.Anything).Return([]byte{1, 2, 3}, nil)

	c, w := newTestContext("POST", "/keys/abc/encrypt", []byte("hello"))
	c.Params = gin.Params{{Key: "id", Value: "abc"}}
	handler.Encrypt(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []byte{1, 2, 3}, w.Body.Bytes())
	assert.Equal(t, "application/octet-stream", w.Header().Get("Content-Type"))
	assert.Equal(t, "5", w.Header().Get(HeaderBytesIn))
	assert.Equal(t, "3", w.Header().Get(HeaderBytesOut))
	assert.Equal(t, "1", w.Header().Get(HeaderBlocks))
}

func TestCipherHandler_Decrypt_ErrorMapping(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{fmt.Errorf("block 3: %w", cryptoalg.ErrMalformedBlock), http.StatusBadRequest},
		{fmt.Errorf("read: %w", cryptoalg.ErrStreamTruncated), http.StatusBadRequest},
		{fmt.Errorf("lookup: %w", keys.ErrKeyPairNotFound), http.StatusNotFound},
	}

	for _, tt := range tests {
		mockService := new(MockCipherService)
		handler := NewCipherHandler(mockService, 1024)
		mockService.On("Decrypt", mock.Anything, "abc", mock.Anything, mock.Anything).Return(nil, tt.err)

		c, w := newTestContext("POST", "/keys/abc/decrypt", []byte{9, 9, 9})
		c.Params = gin.Params{{Key: "id", Value: "abc"}}
		handler.Decrypt(c)

		assert.Equal(t, tt.status, w.Code, tt.err.Error())
	}
}

func TestCipherHandler_PayloadTooLarge(t *testing.T) {
	mockService := new(MockCipherService)
	handler := NewCipherHandler(mockService, 4)
	mockService.On("Encrypt", mock.Anything, "abc", mock.Anything, mock.Anything).Return([]byte{}, nil)

	c, w := newTestContext("POST", "/keys/abc/encrypt", bytes.Repeat([]byte{7}, 16))
	c.Params = gin.Params{{Key: "id", Value: "abc"}}
	handler.Encrypt(c)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}
