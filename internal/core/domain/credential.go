package domain

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Credential proves the current user's authentication to the backend.
type Credential struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken,omitempty"`
}

func (c Credential) IsZero() bool {
	return c.AccessToken == ""
}

// ExpiresAt returns the exp claim when the access token is a JWT carrying
// one. The signature is not verified: the client holds no key, the value
// only lets it skip a round trip for a token the server would reject.
func (c Credential) ExpiresAt() (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(c.AccessToken, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// Expired reports whether the token carries an exp claim before now.
// Opaque tokens never expire client-side.
func (c Credential) Expired(now time.Time) bool {
	exp, ok := c.ExpiresAt()
	return ok && !now.Before(exp)
}
