package reference

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

const randomChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// randomSuffix builds an uppercase alphanumeric string of the given length
// using crypto/rand
func randomSuffix(length int) (string, error) {
	buf := make([]byte, length)
	for i := range buf {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(randomChars))))
		if err != nil {
			return "", err
		}
		buf[i] = randomChars[n.Int64()]
	}
	return string(buf), nil
}

// ForLoan builds a loan reference of the form LN-<millis>-<RAND6>
func ForLoan() (string, error) {
	suffix, err := randomSuffix(6)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("LN-%d-%s", time.Now().UnixMilli(), suffix), nil
}

// ForSavings builds a savings reference of the form SAV-<millis>-<RAND6>
func ForSavings() (string, error) {
	suffix, err := randomSuffix(6)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("SAV-%d-%s", time.Now().UnixMilli(), suffix), nil
}

// GenerateOTP returns a random numeric code of the given length
func GenerateOTP(length int) (string, error) {
	result := ""
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		result += fmt.Sprintf("%d", n.Int64())
	}
	return result, nil
}
