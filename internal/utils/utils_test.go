package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Hello World", "hello-world"},
		{"  Go 1.23: what's new?  ", "go-123-whats-new"},
		{"multiple   spaces -- and dashes", "multiple-spaces-and-dashes"},
		{"Tiếng Việt có dấu đẹp", "tieng-viet-co-dau-dep"},
		{"Crème brûlée", "creme-brulee"},
		{"!!!", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Slugify(tc.in), tc.in)
	}
}

func TestReadTime_CeilingDivision(t *testing.T) {
	words225 := strings.TrimSpace(strings.Repeat("word ", 225))
	words226 := words225 + " extra"

	require.Equal(t, 225, WordCount(words225))
	require.Equal(t, 226, WordCount(words226))

	assert.Equal(t, 1, ReadTime(WordCount(words225), 225))
	assert.Equal(t, 2, ReadTime(WordCount(words226), 225))
	assert.Equal(t, 0, ReadTime(0, 225))
}

func TestWordCount_Whitespace(t *testing.T) {
	assert.Equal(t, 3, WordCount("  one\ttwo\n\nthree "))
	assert.Equal(t, 0, WordCount("   "))
}

func TestTruncate_Runes(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abcdef", 3))
	assert.Equal(t, "при", Truncate("привет", 3))
	assert.Equal(t, "short", Truncate("short", 10))
}

func TestToken_RoundTrip(t *testing.T) {
	tok, err := GenerateToken("secret", "u-1", "admin", time.Minute)
	require.NoError(t, err)

	claims, err := ParseToken("secret", tok)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "admin", claims.Role)

	_, err = ParseToken("other", tok)
	assert.Error(t, err)
}

func TestToken_Expired(t *testing.T) {
	tok, err := GenerateToken("secret", "u-1", "admin", -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken("secret", tok)
	assert.Error(t, err)
}

func TestPasswordHash(t *testing.T) {
	h, err := HashPassword("s3cret")
	require.NoError(t, err)
	assert.True(t, CheckPasswordHash("s3cret", h))
	assert.False(t, CheckPasswordHash("wrong", h))
}
