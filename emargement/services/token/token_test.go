package token

import (
	"strings"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"

	"github.com/Sorolassina/mca-api/emargement/types"
)

var testSecret = []byte("test-secret")

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func TestTokenRoundTrip(t *testing.T) {
	req := require.New(t)

	svc, err := NewTokenService(testSecret, DefaultTTL)
	req.NoError(err)

	tok, expiresAt, err := svc.Issue(42, "a@x.com", 10, types.ModeRemote)
	req.NoError(err)
	req.WithinDuration(time.Now().Add(30*time.Minute), expiresAt, 5*time.Second)

	claims, err := svc.Verify(tok, types.ModeRemote)
	req.NoError(err)
	req.Equal(uint64(42), claims.RecordID)
	req.Equal(uint64(10), claims.EventID)
	req.Equal("a@x.com", claims.Email)

	_, err = svc.Verify(tok, types.ModeInPerson)
	req.True(types.IsKind(err, types.KindAuthorization))
	req.Contains(err.Error(), "invalid mode: expected in-person")

	claims, err = svc.Verify(tok, "")
	req.NoError(err)
	req.Equal(types.ModeRemote, claims.Mode)
}

func TestTokenExpiry(t *testing.T) {
	req := require.New(t)
	clock := &fakeClock{now: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}

	svc, err := NewTokenService(testSecret, DefaultTTL, WithClock(clock.Now))
	req.NoError(err)

	tok, _, err := svc.Issue(42, "a@x.com", 10, types.ModeRemote)
	req.NoError(err)

	clock.now = clock.now.Add(29 * time.Minute)
	_, err = svc.Verify(tok, types.ModeRemote)
	req.NoError(err)

	clock.now = clock.now.Add(2 * time.Minute)
	_, err = svc.Verify(tok, types.ModeRemote)
	req.True(types.IsKind(err, types.KindAuthorization))
	req.Contains(err.Error(), "token expired")
}

func TestTokenRejectsTampering(t *testing.T) {
	req := require.New(t)

	svc, err := NewTokenService(testSecret, DefaultTTL)
	req.NoError(err)
	other, err := NewTokenService([]byte("other-secret"), DefaultTTL)
	req.NoError(err)

	tok, _, err := other.Issue(42, "a@x.com", 10, types.ModeRemote)
	req.NoError(err)

	for _, bad := range []string{"", "not-a-token", tok, tok[:strings.LastIndex(tok, ".")] + ".AAAA"} {
		_, err = svc.Verify(bad, types.ModeRemote)
		req.True(types.IsKind(err, types.KindAuthorization), bad)
	}

	_, err = NewTokenService(nil, DefaultTTL)
	req.Error(err)
}

func TestTokenProperties(t *testing.T) {
	svc, err := NewTokenService(testSecret, DefaultTTL)
	require.NoError(t, err)

	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("verify returns the issued binding", prop.ForAll(
		func(recordID, eventID uint64, local string, mode types.Mode) bool {
			email := strings.ToLower(local) + "@x.com"
			tok, _, err := svc.Issue(recordID, email, eventID, mode)
			if err != nil {
				return false
			}
			claims, err := svc.Verify(tok, mode)
			if err != nil {
				return false
			}
			return claims.RecordID == recordID &&
				claims.EventID == eventID &&
				claims.Email == email &&
				claims.Mode == mode
		},
		gen.UInt64(),
		gen.UInt64Range(1, 1<<32),
		gen.Identifier(),
		gen.OneConstOf(types.ModeRemote, types.ModeInPerson),
	))

	properties.Property("a token never verifies for the other mode", prop.ForAll(
		func(recordID uint64, mode types.Mode) bool {
			tok, _, err := svc.Issue(recordID, "a@x.com", 1, mode)
			if err != nil {
				return false
			}
			other := types.ModeInPerson
			if mode == types.ModeInPerson {
				other = types.ModeRemote
			}
			_, err = svc.Verify(tok, other)
			return types.IsKind(err, types.KindAuthorization)
		},
		gen.UInt64(),
		gen.OneConstOf(types.ModeRemote, types.ModeInPerson),
	))

	properties.TestingRun(t)
}
