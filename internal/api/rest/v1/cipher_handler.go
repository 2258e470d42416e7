package v1

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strconv"

	"github.com/MGTheTrain/textbook-rsa/internal/domain/cryptoalg"
	"github.com/MGTheTrain/textbook-rsa/internal/domain/keys"
	"github.com/gin-gonic/gin"
)

// Response headers carrying StreamStats
const (
	HeaderBlocks   = "X-Rsa-Blocks"
	HeaderBytesIn  = "X-Rsa-Bytes-In"
	HeaderBytesOut = "X-Rsa-Bytes-Out"
)

// CipherHandler defines the interface for encrypting and decrypting request bodies
type CipherHandler interface {
	Encrypt(ctx *gin.Context)
	Decrypt(ctx *gin.Context)
}

type cipherHandler struct {
	cipherService   keys.CipherService
	maxPayloadBytes int64
}

// NewCipherHandler creates a new CipherHandler accepting bodies of up to maxPayloadBytes
func NewCipherHandler(cipherService keys.CipherService, maxPayloadBytes int64) CipherHandler {
	return &cipherHandler{
		cipherService:   cipherService,
		maxPayloadBytes: maxPayloadBytes,
	}
}

// Encrypt handles the POST request to encrypt the raw request body
// @Summary Encrypt with the public key of a key pair
// @Tags Cipher
// @Accept application/octet-stream
// @Produce application/octet-stream
// @Param id path string true "Key pair ID"
// @Success 200 {file} file "ciphertext blocks"
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 413 {object} ErrorResponse
// @Router /keys/{id}/encrypt [post]
func (handler *cipherHandler) Encrypt(ctx *gin.Context) {
	handler.transform(ctx, handler.cipherService.Encrypt)
}

// Decrypt handles the POST request to decrypt the raw request body
// @Summary Decrypt with the private key of a key pair
// @Tags Cipher
// @Accept application/octet-stream
// @Produce application/octet-stream
// @Param id path string true "Key pair ID"
// @Success 200 {file} file "plaintext"
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 413 {object} ErrorResponse
// @Router /keys/{id}/decrypt [post]
func (handler *cipherHandler) Decrypt(ctx *gin.Context) {
	handler.transform(ctx, handler.cipherService.Decrypt)
}

// transform buffers the whole result so that a failing block still yields an error status
func (handler *cipherHandler) transform(
	ctx *gin.Context,
	run func(context.Context, string, io.Reader, io.Writer) (*cryptoalg.StreamStats, error),
) {
	var body io.Reader = http.NoBody
	if ctx.Request.Body != nil {
		body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, handler.maxPayloadBytes)
	}

	var out bytes.Buffer
	stats, err := run(ctx.Request.Context(), ctx.Param("id"), body, &out)
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.Header(HeaderBlocks, strconv.Itoa(stats.Blocks))
	ctx.Header(HeaderBytesIn, strconv.FormatInt(stats.BytesIn, 10))
	ctx.Header(HeaderBytesOut, strconv.FormatInt(stats.BytesOut, 10))
	ctx.Data(http.StatusOK, "application/octet-stream", out.Bytes())
}
