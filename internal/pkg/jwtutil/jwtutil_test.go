package jwtutil

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestIssueVerify_RoundTrip(t *testing.T) {
	t.Parallel()

	iss := NewIssuer("super-secret", time.Hour)
	for _, id := range []uint{1, 42, 1 << 31} {
		tok, err := iss.Issue(id)
		require.NoError(t, err)

		got, err := iss.Verify(tok)
		require.NoError(t, err)
		assert.Equal(t, id, got)
	}
}

func TestNewIssuer_DefaultTTL(t *testing.T) {
	t.Parallel()

	iss := NewIssuer("k", 0)
	assert.Equal(t, 36000*time.Second, iss.TTL())
}

func TestVerify_Expired(t *testing.T) {
	t.Parallel()

	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	iss := NewIssuer("secret", DefaultTTL).WithClock(fixedClock(start))

	tok, err := iss.Issue(7)
	require.NoError(t, err)

	_, err = iss.WithClock(fixedClock(start.Add(DefaultTTL - time.Second))).Verify(tok)
	require.NoError(t, err)

	_, err = iss.WithClock(fixedClock(start.Add(DefaultTTL + time.Second))).Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := NewIssuer("right-secret", time.Hour).Issue(3)
	require.NoError(t, err)

	_, err = NewIssuer("wrong-secret", time.Hour).Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_Malformed(t *testing.T) {
	t.Parallel()

	iss := NewIssuer("k", time.Hour)
	for _, raw := range []string{"", "not.a.jwt", "abc", "a.b.c.d"} {
		_, err := iss.Verify(raw)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", raw)
	}
}

func TestVerify_AnySingleByteTamperFails(t *testing.T) {
	t.Parallel()

	iss := NewIssuer("tamper-secret", time.Hour)
	tok, err := iss.Issue(9)
	require.NoError(t, err)

	for i := 0; i < len(tok); i++ {
		replacement := byte('A')
		if tok[i] == 'A' {
			replacement = 'B'
		}
		tampered := tok[:i] + string(replacement) + tok[i+1:]

		_, err := iss.Verify(tampered)
		assert.ErrorIs(t, err, ErrInvalidToken, "tampered at %d", i)
	}
}

func TestVerify_RejectsNoneAlgorithm(t *testing.T) {
	t.Parallel()

	iss := NewIssuer("k", time.Hour)
	tok, err := iss.Issue(5)
	require.NoError(t, err)

	parts := strings.Split(tok, ".")
	require.Len(t, parts, 3)
	// {"alg":"none","typ":"JWT"}
	unsigned := "eyJhbGciOiJub25lIiwidHlwIjoiSldUIn0." + parts[1] + "."

	_, err = iss.Verify(unsigned)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestIssue_RejectsZeroUser(t *testing.T) {
	t.Parallel()

	_, err := NewIssuer("k", time.Hour).Issue(0)
	assert.Error(t, err)
}
