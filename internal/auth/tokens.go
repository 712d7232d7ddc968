package auth

import (
	"fmt"
	"strconv"
	"time"

	"github.com/M-a-K-s-1-M/neshopify-sub001/config"
	"github.com/M-a-K-s-1-M/neshopify-sub001/internal/domain/apperr"
	"github.com/M-a-K-s-1-M/neshopify-sub001/internal/domain/customers"
	"github.com/M-a-K-s-1-M/neshopify-sub001/internal/domain/users"

	"github.com/golang-jwt/jwt/v5"
)

/*
	Token scopes
	------------
	Two disjoint JWT audiences, signed with SEPARATE secrets:

	  platform   -> dashboard users (no site binding)
	  storefront -> per-site customers (site_id claim is mandatory)

	Verification picks the key by the EXPECTED audience, never by anything
	inside the token, so a platform token can never pass a storefront check
	even if both secrets were misconfigured to the same value the audience
	pin still rejects it.
*/

const (
	AudiencePlatform   = "platform"
	AudienceStorefront = "storefront"

	TypeAccess  = "access"
	TypeRefresh = "refresh"

	AccessTTL  = 15 * time.Minute
	RefreshTTL = 30 * 24 * time.Hour
)

type Claims struct {
	jwt.RegisteredClaims
	TokenType string `json:"typ"`
	Email     string `json:"email,omitempty"`
	Role      string `json:"role,omitempty"`
	SiteID    uint   `json:"site_id,omitempty"`
}

// SubjectID decodes the numeric principal id from the sub claim.
func (c *Claims) SubjectID() uint {
	id, err := strconv.ParseUint(c.Subject, 10, 32)
	if err != nil {
		return 0
	}
	return uint(id)
}

func ttlFor(tokenType string) (time.Duration, error) {
	switch tokenType {
	case TypeAccess:
		return AccessTTL, nil
	case TypeRefresh:
		return RefreshTTL, nil
	}
	return 0, fmt.Errorf("unknown token type %q", tokenType)
}

// MintPlatform issues a platform-scoped token for a dashboard user.
func MintPlatform(u users.User, tokenType string) (string, error) {
	ttl, err := ttlFor(tokenType)
	if err != nil {
		return "", err
	}
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(u.ID), 10),
			Audience:  jwt.ClaimStrings{AudiencePlatform},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		TokenType: tokenType,
		Email:     u.Email,
		Role:      u.Role,
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(config.JWT_PLATFORM_SECRET))
}

// MintCustomer issues a site-scoped token bound to exactly one site.
func MintCustomer(cu customers.Customer, tokenType string) (string, error) {
	ttl, err := ttlFor(tokenType)
	if err != nil {
		return "", err
	}
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(cu.ID), 10),
			Audience:  jwt.ClaimStrings{AudienceStorefront},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		TokenType: tokenType,
		Email:     cu.Email,
		SiteID:    cu.SiteID,
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(config.JWT_STOREFRONT_SECRET))
}

// VerifyPlatform validates a platform-scoped token of the given type.
func VerifyPlatform(tokenString, tokenType string) (*Claims, error) {
	return verify(tokenString, tokenType, AudiencePlatform, []byte(config.JWT_PLATFORM_SECRET))
}

// VerifyCustomer validates a site-scoped token of the given type. Callers
// must still compare claims.SiteID against the site the request targets.
func VerifyCustomer(tokenString, tokenType string) (*Claims, error) {
	claims, err := verify(tokenString, tokenType, AudienceStorefront, []byte(config.JWT_STOREFRONT_SECRET))
	if err != nil {
		return nil, err
	}
	if claims.SiteID == 0 {
		return nil, apperr.ErrWrongScope
	}
	return claims, nil
}

func verify(tokenString, tokenType, audience string, key []byte) (*Claims, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return key, nil
	}, jwt.WithAudience(audience), jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return nil, apperr.ErrUnauthenticated
	}
	if claims.TokenType != tokenType {
		return nil, apperr.ErrUnauthenticated
	}
	return &claims, nil
}
