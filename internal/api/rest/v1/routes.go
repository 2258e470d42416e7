package v1

import (
	"github.com/MGTheTrain/textbook-rsa/internal/domain/keys"

	"github.com/gin-gonic/gin"
)

// SetupRoutes sets up all the API routes for version 1.
func SetupRoutes(r *gin.Engine,
	keyPairService keys.KeyPairService,
	cipherService keys.CipherService,
	maxPayloadBytes int64) {

	v1 := r.Group(BasePath) // lookup in version file

	// Keys Routes
	keyHandler := NewKeyHandler(keyPairService)
	v1.POST("/keys", keyHandler.Generate)
	v1.GET("/keys", keyHandler.List)
	v1.GET("/keys/:id", keyHandler.GetByID)
	v1.GET("/keys/:id/public", keyHandler.DownloadPublicKey)
	v1.DELETE("/keys/:id", keyHandler.DeleteByID)

	// Cipher Routes
	cipherHandler := NewCipherHandler(cipherService, maxPayloadBytes)
	v1.POST("/keys/:id/encrypt", cipherHandler.Encrypt)
	v1.POST("/keys/:id/decrypt", cipherHandler.Decrypt)
}
