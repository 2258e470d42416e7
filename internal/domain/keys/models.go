package keys

import (
	"errors"
	"fmt"
	"time"

	"github.com/MGTheTrain/textbook-rsa/internal/domain/cryptoalg"
	"github.com/MGTheTrain/textbook-rsa/internal/pkg/validators"
	"github.com/go-playground/validator/v10"
)

// ErrKeyPairNotFound reports a lookup of an unknown key pair ID.
var ErrKeyPairNotFound = errors.New("key pair not found")

// ErrOutputIsInput reports a file transformation whose output path names its input file.
var ErrOutputIsInput = errors.New("output file is the input file")

// KeyPairRecord is a key pair stored in the catalog
type KeyPairRecord struct {
	ID              string             `validate:"required,uuid4"`
	BitLength       int                `validate:"keyBitLength"`
	KeyPair         *cryptoalg.KeyPair `validate:"required"`
	DateTimeCreated time.Time          `validate:"required"`
}

// ModulusBits returns the bit length of the stored modulus.
func (r *KeyPairRecord) ModulusBits() int {
	if r.KeyPair == nil || r.KeyPair.Modulus == nil {
		return 0
	}
	return r.KeyPair.Modulus.BitLen()
}

// Validate for validating KeyPairRecord struct and its key material
func (r *KeyPairRecord) Validate() error {
	if err := validateStruct(r); err != nil {
		return err
	}
	if r.KeyPair.BitLength != r.BitLength {
		return fmt.Errorf("validation failed: bit length %d does not match key pair bit length %d", r.BitLength, r.KeyPair.BitLength)
	}
	if err := r.KeyPair.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

// KeyPairQuery filters, sorts and pages catalog listings
type KeyPairQuery struct {
	BitLength int    `validate:"omitempty,keyBitLength"`
	Limit     int    `validate:"omitempty,gt=0"`
	Offset    int    `validate:"omitempty,gte=0"`
	SortBy    string `validate:"omitempty,oneof=date_time_created bit_length"`
	SortOrder string `validate:"omitempty,oneof=asc desc"`
}

// NewKeyPairQuery returns a query listing everything, newest first
func NewKeyPairQuery() *KeyPairQuery {
	return &KeyPairQuery{
		SortBy:    "date_time_created",
		SortOrder: "desc",
	}
}

// Validate for validating KeyPairQuery struct
func (q *KeyPairQuery) Validate() error {
	return validateStruct(q)
}

func validateStruct(s interface{}) error {
	validate := validator.New()

	if err := validate.RegisterValidation("keyBitLength", validators.KeyBitLengthValidation); err != nil {
		return fmt.Errorf("failed to register custom validator: %w", err)
	}

	err := validate.Struct(s)
	if err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			var messages []string
			for _, fieldErr := range validationErrors {
				messages = append(messages, fmt.Sprintf("Field: %s, Tag: %s", fieldErr.Field(), fieldErr.Tag()))
			}
			return fmt.Errorf("validation failed: %v", messages)
		}
		return fmt.Errorf("validation error: %w", err)
	}

	return nil
}
