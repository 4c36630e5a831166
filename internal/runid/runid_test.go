package runid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatAndParse(t *testing.T) {
	id := Format(2026, 8, 1)
	assert.Equal(t, "2026-08-001", id)

	year, month, seq, err := Parse(id)
	require.NoError(t, err)
	assert.Equal(t, 2026, year)
	assert.Equal(t, 8, month)
	assert.Equal(t, 1, seq)
}

func TestParseInvalid(t *testing.T) {
	for _, id := range []string{"", "2026", "2026-08", "yyyy-08-001", "2026-mm-001", "2026-08-sss"} {
		_, _, _, err := Parse(id)
		assert.Error(t, err, "id %q", id)
	}
}

func TestNext(t *testing.T) {
	assert.Equal(t, "2026-08-001", Next("", 2026, 8))
	assert.Equal(t, "2026-08-002", Next("2026-08-001", 2026, 8))
	assert.Equal(t, "2026-09-001", Next("2026-08-017", 2026, 9), "sequence resets each month")
	assert.Equal(t, "2026-08-001", Next("garbage", 2026, 8))
}
