package validators

import (
	"github.com/go-playground/validator/v10"
)

// Bounds of a textbook RSA key size in bits. Below MinKeyBitLength a plaintext block would be
// narrower than two bytes.
const (
	MinKeyBitLength = 16
	MaxKeyBitLength = 16384
)

// KeyBitLengthValidation validates a requested total key size in bits.
func KeyBitLengthValidation(fl validator.FieldLevel) bool {
	return ValidKeyBitLength(fl.Field().Int())
}

// ValidKeyBitLength reports whether bits is an acceptable total key size.
func ValidKeyBitLength(bits int64) bool {
	return bits >= MinKeyBitLength && bits <= MaxKeyBitLength
}
