package config

import (
	"fmt"
	"time"

	"github.com/MGTheTrain/textbook-rsa/internal/pkg/validators"
	"github.com/go-playground/validator/v10"
)

// Framing modes of the block cipher
const (
	FramingMarker = "marker"
	FramingLegacy = "legacy"
)

// KeySettings configures key generation and the block cipher
type KeySettings struct {
	DefaultBitLength  int           `mapstructure:"default_bit_length" validate:"required,keyBitLength"`
	MaxBitLength      int           `mapstructure:"max_bit_length" validate:"required,keyBitLength,gtefield=DefaultBitLength"`
	GenerationTimeout time.Duration `mapstructure:"generation_timeout" validate:"required,min=1s"`
	MillerRabinRounds int           `mapstructure:"miller_rabin_rounds" validate:"required,min=1,max=128"`
	SmallPrimeBound   uint64        `mapstructure:"small_prime_bound" validate:"required,min=541,max=100000"`
	Framing           string        `mapstructure:"framing" validate:"required,oneof=marker legacy"`
	MaxPayloadBytes   int64         `mapstructure:"max_payload_bytes" validate:"required,min=1"`
}

// DefaultKeySettings returns the settings used when nothing is configured
func DefaultKeySettings() KeySettings {
	return KeySettings{
		DefaultBitLength:  2048,
		MaxBitLength:      8192,
		GenerationTimeout: 2 * time.Minute,
		MillerRabinRounds: 20,
		SmallPrimeBound:   541,
		Framing:           FramingMarker,
		MaxPayloadBytes:   32 << 20,
	}
}

// Validate checks that all fields in KeySettings are valid
func (s *KeySettings) Validate() error {
	validate := validator.New()

	if err := validate.RegisterValidation("keyBitLength", validators.KeyBitLengthValidation); err != nil {
		return fmt.Errorf("failed to register custom validator: %w", err)
	}

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for KeySettings: %w", err)
	}

	return nil
}
