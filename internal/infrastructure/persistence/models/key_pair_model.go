package models

import (
	"fmt"
	"math/big"
	"time"

	"github.com/MGTheTrain/textbook-rsa/internal/domain/cryptoalg"
	"github.com/MGTheTrain/textbook-rsa/internal/domain/keys"
)

// KeyPairModel is the GORM database model for catalog key pairs (infrastructure concern).
// Exponents and modulus are stored as decimal text, the same representation as key files.
type KeyPairModel struct {
	ID              string    `gorm:"primaryKey;type:uuid"`
	BitLength       int       `gorm:"not null;index"`
	PublicExponent  string    `gorm:"type:text;not null"`
	PrivateExponent string    `gorm:"type:text;not null"`
	Modulus         string    `gorm:"type:text;not null"`
	DateTimeCreated time.Time `gorm:"not null;index"`
}

// TableName specifies the table name for GORM
func (KeyPairModel) TableName() string {
	return "key_pairs"
}

// ToDomain converts GORM model to domain entity
func (m *KeyPairModel) ToDomain() (*keys.KeyPairRecord, error) {
	e, err := parseDecimal("public exponent", m.PublicExponent)
	if err != nil {
		return nil, err
	}
	d, err := parseDecimal("private exponent", m.PrivateExponent)
	if err != nil {
		return nil, err
	}
	n, err := parseDecimal("modulus", m.Modulus)
	if err != nil {
		return nil, err
	}

	return &keys.KeyPairRecord{
		ID:        m.ID,
		BitLength: m.BitLength,
		KeyPair: &cryptoalg.KeyPair{
			PublicExponent:  e,
			PrivateExponent: d,
			Modulus:         n,
			BitLength:       m.BitLength,
		},
		DateTimeCreated: m.DateTimeCreated,
	}, nil
}

// FromDomain converts domain entity to GORM model
func (m *KeyPairModel) FromDomain(r *keys.KeyPairRecord) {
	m.ID = r.ID
	m.BitLength = r.BitLength
	m.PublicExponent = r.KeyPair.PublicExponent.String()
	m.PrivateExponent = r.KeyPair.PrivateExponent.String()
	m.Modulus = r.KeyPair.Modulus.String()
	m.DateTimeCreated = r.DateTimeCreated
}

func parseDecimal(column, value string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(value, 10)
	if !ok {
		return nil, fmt.Errorf("%w: stored %s is not a decimal integer", cryptoalg.ErrInvalidKeyMaterial, column)
	}
	return v, nil
}
