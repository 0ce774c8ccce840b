package reward

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dictgate/dictgate/ports"
)

// RewardAudience marks tokens issued by the gate.
const RewardAudience = "dictgate:reward"

// RewardClaims are the claims carried by a JWT reward token.
type RewardClaims struct {
	jwt.RegisteredClaims
	Flag string `json:"flag"`
}

// JWTIssuer issues the reward as a signed HS256 token embedding the
// flag, so downstream systems can verify who earned it and when.
type JWTIssuer struct {
	key    []byte
	secret string
}

// NewJWTIssuer creates a JWT reward issuer signing with key.
func NewJWTIssuer(key []byte, secret string) ports.RewardIssuer {
	return &JWTIssuer{key: key, secret: secret}
}

// Issue signs a reward token for clientID.
func (i *JWTIssuer) Issue(clientID string) (string, error) {
	now := time.Now()
	claims := &RewardClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  clientID,
			Audience: jwt.ClaimStrings{RewardAudience},
			IssuedAt: jwt.NewNumericDate(now),
			ID:       uuid.New().String(),
		},
		Flag: fmt.Sprintf("flag{%s}", i.secret),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.key)
	if err != nil {
		return "", fmt.Errorf("failed to sign reward token: %w", err)
	}
	return token + "\n", nil
}

// ParseReward verifies a reward token against key and returns its claims.
func ParseReward(tokenString string, key []byte) (*RewardClaims, error) {
	claims := &RewardClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return key, nil
	}, jwt.WithAudience(RewardAudience))
	if err != nil {
		return nil, fmt.Errorf("invalid reward token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid reward token")
	}
	return claims, nil
}
