package v1

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/MGTheTrain/textbook-rsa/internal/domain/keys"
	"github.com/gin-gonic/gin"
)

// KeyHandler defines the interface for handling key pair operations
type KeyHandler interface {
	Generate(ctx *gin.Context)
	List(ctx *gin.Context)
	GetByID(ctx *gin.Context)
	DownloadPublicKey(ctx *gin.Context)
	DeleteByID(ctx *gin.Context)
}

// keyHandler struct holds the services
type keyHandler struct {
	keyPairService keys.KeyPairService
}

// NewKeyHandler creates a new KeyHandler
func NewKeyHandler(keyPairService keys.KeyPairService) KeyHandler {
	return &keyHandler{
		keyPairService: keyPairService,
	}
}

// Generate handles the POST request to generate a key pair into the catalog
// @Summary Generate a textbook RSA key pair
// @Description Generate a key pair with public exponent 65537 and store it in the key catalog.
// @Tags Key
// @Accept json
// @Produce json
// @Param requestBody body CreateKeyPairRequest false "Key size"
// @Success 201 {object} KeyPairResponse
// @Failure 400 {object} ErrorResponse
// @Failure 504 {object} ErrorResponse
// @Router /keys [post]
func (handler *keyHandler) Generate(ctx *gin.Context) {
	var request CreateKeyPairRequest

	if ctx.Request.ContentLength != 0 {
		if err := ctx.ShouldBindJSON(&request); err != nil {
			ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: fmt.Sprintf("invalid key data: %v", err)})
			return
		}
	}

	if err := request.Validate(); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
		return
	}

	record, err := handler.keyPairService.Generate(ctx.Request.Context(), request.BitLength)
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, NewKeyPairResponse(record))
}

// List handles the GET request to list catalog key pairs
// @Summary List key pairs
// @Description Fetch catalog key pairs, optionally filtered by bit length, with pagination and sorting options.
// @Tags Key
// @Produce json
// @Param bitLength query int false "Key size in bits"
// @Param limit query int false "Limit the number of results"
// @Param offset query int false "Offset the results"
// @Param sortBy query string false "date_time_created or bit_length"
// @Param sortOrder query string false "Sort order (asc/desc)"
// @Success 200 {array} KeyPairResponse
// @Failure 400 {object} ErrorResponse
// @Router /keys [get]
func (handler *keyHandler) List(ctx *gin.Context) {
	query := keys.NewKeyPairQuery()

	for param, target := range map[string]*int{
		"bitLength": &query.BitLength,
		"limit":     &query.Limit,
		"offset":    &query.Offset,
	} {
		value := ctx.Query(param)
		if value == "" {
			continue
		}
		parsed, err := strconv.Atoi(value)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: fmt.Sprintf("invalid %s: %q", param, value)})
			return
		}
		*target = parsed
	}

	if sortBy := ctx.Query("sortBy"); len(sortBy) > 0 {
		query.SortBy = sortBy
	}

	if sortOrder := ctx.Query("sortOrder"); len(sortOrder) > 0 {
		query.SortOrder = sortOrder
	}

	if err := query.Validate(); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
		return
	}

	records, err := handler.keyPairService.List(ctx.Request.Context(), query)
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	listResponse := make([]KeyPairResponse, 0, len(records))
	for _, record := range records {
		listResponse = append(listResponse, NewKeyPairResponse(record))
	}

	ctx.JSON(http.StatusOK, listResponse)
}

// GetByID handles the GET request to retrieve a key pair by ID
// @Summary Retrieve a key pair by ID
// @Tags Key
// @Produce json
// @Param id path string true "Key pair ID"
// @Success 200 {object} KeyPairResponse
// @Failure 404 {object} ErrorResponse
// @Router /keys/{id} [get]
func (handler *keyHandler) GetByID(ctx *gin.Context) {
	record, err := handler.keyPairService.GetByID(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, NewKeyPairResponse(record))
}

// DownloadPublicKey handles the GET request to download the public key file of a key pair
// @Summary Download the public key file
// @Description Download exponent, modulus and bit length as three decimal lines.
// @Tags Key
// @Produce text/plain
// @Param id path string true "Key pair ID"
// @Success 200 {file} file "key_public.txt"
// @Failure 404 {object} ErrorResponse
// @Router /keys/{id}/public [get]
func (handler *keyHandler) DownloadPublicKey(ctx *gin.Context) {
	keyPairID := ctx.Param("id")

	content, err := handler.keyPairService.PublicKeyFile(ctx.Request.Context(), keyPairID)
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s-key_public.txt", keyPairID))
	ctx.Data(http.StatusOK, "text/plain; charset=utf-8", content)
}

// DeleteByID handles the DELETE request to delete a key pair by ID
// @Summary Delete a key pair by ID
// @Tags Key
// @Param id path string true "Key pair ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /keys/{id} [delete]
func (handler *keyHandler) DeleteByID(ctx *gin.Context) {
	if err := handler.keyPairService.DeleteByID(ctx.Request.Context(), ctx.Param("id")); err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
