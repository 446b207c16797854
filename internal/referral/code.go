package referral

import (
	"crypto/rand"
	"math/big"
)

const (
	codePrefix   = "REF-"
	codeLength   = 6
	codeAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// NewCode returns "REF-" followed by six random base-36 uppercase characters.
// Uniqueness is left to the store's unique index.
func NewCode() (string, error) {
	buf := make([]byte, 0, len(codePrefix)+codeLength)
	buf = append(buf, codePrefix...)
	base := big.NewInt(int64(len(codeAlphabet)))
	for i := 0; i < codeLength; i++ {
		n, err := rand.Int(rand.Reader, base)
		if err != nil {
			return "", err
		}
		buf = append(buf, codeAlphabet[n.Int64()])
	}
	return string(buf), nil
}
