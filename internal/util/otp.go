package util

import (
	"crypto/rand"
	"math/big"
	"strings"
)

// GenerateNumericOTP returns a uniformly random string of decimal digits.
// Leading zeros are kept.
func GenerateNumericOTP(digits int) (string, error) {
	if digits <= 0 {
		digits = 6
	}
	var builder strings.Builder
	builder.Grow(digits)
	ten := big.NewInt(10)
	for i := 0; i < digits; i++ {
		n, err := rand.Int(rand.Reader, ten)
		if err != nil {
			return "", err
		}
		builder.WriteByte(byte('0' + n.Int64()))
	}
	return builder.String(), nil
}
