package app

import (
	"fmt"

	"github.com/MGTheTrain/textbook-rsa/internal/domain/cryptoalg"
	"github.com/MGTheTrain/textbook-rsa/internal/infrastructure/cryptography"
	"github.com/MGTheTrain/textbook-rsa/internal/pkg/config"
	"github.com/MGTheTrain/textbook-rsa/internal/pkg/logger"
)

// Engine bundles the key generator and stream cipher built from one KeySettings
type Engine struct {
	Keys   cryptoalg.KeyGenerator
	Cipher cryptoalg.StreamCipher
}

// NewEngine wires small prime table, primality tester, prime generator, key generator and cipher
func NewEngine(settings config.KeySettings, logger logger.Logger) (*Engine, error) {
	framing, err := cryptoalg.ParseFraming(settings.Framing)
	if err != nil {
		return nil, err
	}

	table := cryptography.NewSmallPrimeTable(settings.SmallPrimeBound)
	tester, err := cryptography.NewPrimalityTester(table, settings.MillerRabinRounds, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create primality tester: %w", err)
	}

	primes, err := cryptography.NewPrimeGenerator(tester, nil, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create prime generator: %w", err)
	}

	keyGenerator, err := cryptography.NewKeyGenerator(primes, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create key generator: %w", err)
	}

	cipher, err := cryptography.NewStreamCipher(framing, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create stream cipher: %w", err)
	}

	logger.Debug(fmt.Sprintf("Engine ready: %d tabled primes up to %d, %d Miller-Rabin rounds, %s framing",
		table.Len(), table.Largest(), settings.MillerRabinRounds, framing))

	return &Engine{
		Keys:   keyGenerator,
		Cipher: cipher,
	}, nil
}
