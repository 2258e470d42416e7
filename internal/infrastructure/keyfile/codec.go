package keyfile

import (
	"bufio"
	"fmt"
	"io"
	"math/big"
	"strconv"
	"strings"

	"github.com/MGTheTrain/textbook-rsa/internal/domain/cryptoalg"
)

// Encode writes half as three newline-terminated decimal lines.
func Encode(w io.Writer, half *cryptoalg.KeyHalf) error {
	if half == nil || half.Exponent == nil || half.Modulus == nil {
		return fmt.Errorf("%w: missing exponent or modulus", cryptoalg.ErrInvalidKeyMaterial)
	}

	_, err := fmt.Fprintf(w, "%s\n%s\n%d\n", half.Exponent.String(), half.Modulus.String(), half.BitLength)
	if err != nil {
		return fmt.Errorf("failed to encode key: %w", err)
	}
	return nil
}

// Decode parses the exponent, modulus and bit length lines written by Encode. Surrounding
// whitespace is ignored; anything after the third line other than blank lines is rejected.
func Decode(r io.Reader) (*cryptoalg.KeyHalf, error) {
	scanner := bufio.NewScanner(r)
	// a 16384-bit modulus takes about 4933 decimal digits
	scanner.Buffer(make([]byte, 0, 8192), 1<<20)

	var lines []string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if len(lines) == 3 {
			if line != "" {
				return nil, fmt.Errorf("%w: unexpected content after bit length", cryptoalg.ErrMalformedKeyFile)
			}
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", cryptoalg.ErrMalformedKeyFile, err)
	}
	if len(lines) < 3 {
		return nil, fmt.Errorf("%w: expected 3 lines, got %d", cryptoalg.ErrMalformedKeyFile, len(lines))
	}

	exponent, err := parseDecimal("exponent", lines[0])
	if err != nil {
		return nil, err
	}
	modulus, err := parseDecimal("modulus", lines[1])
	if err != nil {
		return nil, err
	}
	bits, err := strconv.Atoi(lines[2])
	if err != nil || bits <= 0 {
		return nil, fmt.Errorf("%w: invalid bit length %q", cryptoalg.ErrMalformedKeyFile, lines[2])
	}

	return &cryptoalg.KeyHalf{
		Exponent:  exponent,
		Modulus:   modulus,
		BitLength: bits,
	}, nil
}

func parseDecimal(name, line string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(line, 10)
	if !ok {
		return nil, fmt.Errorf("%w: invalid %s %q", cryptoalg.ErrMalformedKeyFile, name, abbreviate(line))
	}
	if v.Sign() < 0 {
		return nil, fmt.Errorf("%w: negative %s", cryptoalg.ErrMalformedKeyFile, name)
	}
	return v, nil
}

func abbreviate(s string) string {
	if len(s) <= 32 {
		return s
	}
	return s[:32] + "..."
}
