package reference

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForLoan(t *testing.T) {
	ref, err := ForLoan()

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ref, "LN-"))

	parts := strings.Split(ref, "-")
	require.Len(t, parts, 3)
	assert.Len(t, parts[2], 6)
}

func TestForSavings(t *testing.T) {
	ref, err := ForSavings()

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ref, "SAV-"))
}

func TestGenerateOTP(t *testing.T) {
	otp, err := GenerateOTP(6)

	require.NoError(t, err)
	require.Len(t, otp, 6)
	for _, r := range otp {
		assert.True(t, r >= '0' && r <= '9', "OTP contains non-digit %q", r)
	}
}
