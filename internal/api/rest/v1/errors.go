package v1

import (
	"context"
	"errors"
	"net/http"

	"github.com/MGTheTrain/textbook-rsa/internal/domain/cryptoalg"
	"github.com/MGTheTrain/textbook-rsa/internal/domain/keys"
	"github.com/gin-gonic/gin"
)

// statusFor maps service errors to HTTP status codes
func statusFor(err error) int {
	var maxBytesErr *http.MaxBytesError
	switch {
	case errors.Is(err, keys.ErrKeyPairNotFound):
		return http.StatusNotFound
	case errors.As(err, &maxBytesErr):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, cryptoalg.ErrInvalidKeyMaterial),
		errors.Is(err, cryptoalg.ErrMalformedBlock),
		errors.Is(err, cryptoalg.ErrStreamTruncated),
		errors.Is(err, cryptoalg.ErrInvalidBitLength):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func abortWithError(ctx *gin.Context, err error) {
	ctx.JSON(statusFor(err), ErrorResponse{Message: err.Error()})
}
