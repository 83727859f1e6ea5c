package booking

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	lrSuffixLength   = 6
	lrSuffixAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// FormatLRNumber builds LR-<FROM>-<TYPE>-<SUFFIX>.
func FormatLRNumber(fromCode, typeCode, suffix string) string {
	return fmt.Sprintf("LR-%s-%s-%s", fromCode, typeCode, suffix)
}

// RandomSuffix draws lrSuffixLength characters uniformly from [A-Z0-9].
func RandomSuffix() (string, error) {
	max := big.NewInt(int64(len(lrSuffixAlphabet)))
	buf := make([]byte, lrSuffixLength)
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("lr suffix: %w", err)
		}
		buf[i] = lrSuffixAlphabet[n.Int64()]
	}
	return string(buf), nil
}
