package v1

import (
	"fmt"
	"time"

	"github.com/MGTheTrain/textbook-rsa/internal/domain/keys"
	"github.com/MGTheTrain/textbook-rsa/internal/pkg/validators"
	"github.com/go-playground/validator/v10"
)

// CreateKeyPairRequest requests a new key pair; a zero bit length selects the configured default
type CreateKeyPairRequest struct {
	BitLength int `json:"bit_length" validate:"omitempty,keyBitLength"`
}

// Validate for validating CreateKeyPairRequest struct
func (r *CreateKeyPairRequest) Validate() error {
	validate := validator.New()

	if err := validate.RegisterValidation("keyBitLength", validators.KeyBitLengthValidation); err != nil {
		return fmt.Errorf("failed to register custom validator: %w", err)
	}

	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

// KeyPairResponse describes a catalog key pair. The private exponent is never returned.
type KeyPairResponse struct {
	ID              string    `json:"id"`
	BitLength       int       `json:"bit_length"`
	ModulusBits     int       `json:"modulus_bits"`
	PublicExponent  string    `json:"public_exponent"`
	Modulus         string    `json:"modulus"`
	PlainBlockSize  int       `json:"plain_block_size"`
	CipherBlockSize int       `json:"cipher_block_size"`
	DateTimeCreated time.Time `json:"date_time_created"`
}

// NewKeyPairResponse maps a catalog record to its response
func NewKeyPairResponse(record *keys.KeyPairRecord) KeyPairResponse {
	public := record.KeyPair.Public()
	return KeyPairResponse{
		ID:              record.ID,
		BitLength:       record.BitLength,
		ModulusBits:     record.ModulusBits(),
		PublicExponent:  public.Exponent.String(),
		Modulus:         public.Modulus.String(),
		PlainBlockSize:  public.PlainBlockSize(),
		CipherBlockSize: public.CipherBlockSize(),
		DateTimeCreated: record.DateTimeCreated,
	}
}

// ErrorResponse represents an error message
type ErrorResponse struct {
	Message string `json:"message"`
}
