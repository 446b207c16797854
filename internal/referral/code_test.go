package referral

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewCodeFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^REF-[0-9A-Z]{6}$`)
	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		code, err := NewCode()
		require.NoError(t, err)
		require.Regexp(t, pattern, code)
		seen[code] = true
	}
	// 36^6 possibilities; 200 draws colliding more than once would mean a broken source
	require.Greater(t, len(seen), 198)
}
