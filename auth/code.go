package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// GenerateAccessCode returns a 6-digit one-time code. crypto/rand keeps the
// codes unpredictable; leading zeros are preserved.
func GenerateAccessCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
