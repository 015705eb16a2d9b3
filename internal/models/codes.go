package models

import (
	"crypto/rand"
	"math/big"
)

// Invite codes never contain the digit 0, so a code can't be mistaken for the
// letter O when shared verbally.
const codeDigits = "123456789"

func randomCode(n int) string {
	b := make([]byte, n)
	max := big.NewInt(int64(len(codeDigits)))
	for i := range b {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			panic(err)
		}
		b[i] = codeDigits[idx.Int64()]
	}
	return string(b)
}

// NewReferID returns a fresh 6-digit invite code. Uniqueness is probabilistic,
// not enforced.
func NewReferID() string {
	return randomCode(6)
}

// NewAffiliateID returns a prefixed affiliate label.
func NewAffiliateID() string {
	return "XAF " + randomCode(5)
}
