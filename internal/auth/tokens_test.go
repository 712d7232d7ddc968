package auth

import (
	"testing"

	"github.com/M-a-K-s-1-M/neshopify-sub001/config"
	"github.com/M-a-K-s-1-M/neshopify-sub001/internal/domain/customers"
	"github.com/M-a-K-s-1-M/neshopify-sub001/internal/domain/users"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setTestSecrets(t *testing.T) {
	t.Helper()
	config.JWT_PLATFORM_SECRET = "platform-test-secret"
	config.JWT_STOREFRONT_SECRET = "storefront-test-secret"
}

func TestPlatformTokenRoundTrip(t *testing.T) {
	setTestSecrets(t)
	u := users.User{ID: 12, Email: "owner@example.com", Role: "user"}

	token, err := MintPlatform(u, TypeAccess)
	require.NoError(t, err)

	claims, err := VerifyPlatform(token, TypeAccess)
	require.NoError(t, err)
	assert.Equal(t, uint(12), claims.SubjectID())
	assert.Equal(t, "owner@example.com", claims.Email)
	assert.Equal(t, "user", claims.Role)
}

func TestCustomerTokenRoundTrip(t *testing.T) {
	setTestSecrets(t)
	cu := customers.Customer{ID: 5, SiteID: 3, Email: "buyer@example.com"}

	token, err := MintCustomer(cu, TypeAccess)
	require.NoError(t, err)

	claims, err := VerifyCustomer(token, TypeAccess)
	require.NoError(t, err)
	assert.Equal(t, uint(5), claims.SubjectID())
	assert.Equal(t, uint(3), claims.SiteID)
}

// A token from one scope must never verify in the other, in either
// direction: different audience AND different signing key.
func TestCrossScopeRejection(t *testing.T) {
	setTestSecrets(t)

	platform, err := MintPlatform(users.User{ID: 1, Email: "o@x.y"}, TypeAccess)
	require.NoError(t, err)
	customer, err := MintCustomer(customers.Customer{ID: 1, SiteID: 2, Email: "c@x.y"}, TypeAccess)
	require.NoError(t, err)

	_, err = VerifyCustomer(platform, TypeAccess)
	assert.Error(t, err, "platform token must not pass a storefront check")

	_, err = VerifyPlatform(customer, TypeAccess)
	assert.Error(t, err, "storefront token must not pass a platform check")
}

// Even with the secrets misconfigured to the same value the audience pin
// still separates the scopes.
func TestCrossScopeRejectionSameSecret(t *testing.T) {
	config.JWT_PLATFORM_SECRET = "same"
	config.JWT_STOREFRONT_SECRET = "same"
	defer setTestSecrets(t)

	platform, err := MintPlatform(users.User{ID: 1, Email: "o@x.y"}, TypeAccess)
	require.NoError(t, err)

	_, err = VerifyCustomer(platform, TypeAccess)
	assert.Error(t, err)
}

func TestTokenTypeMismatchRejected(t *testing.T) {
	setTestSecrets(t)

	refresh, err := MintPlatform(users.User{ID: 1}, TypeRefresh)
	require.NoError(t, err)

	_, err = VerifyPlatform(refresh, TypeAccess)
	assert.Error(t, err, "a refresh token must not act as an access token")

	access, err := MintPlatform(users.User{ID: 1}, TypeAccess)
	require.NoError(t, err)
	_, err = VerifyPlatform(access, TypeRefresh)
	assert.Error(t, err)
}

func TestGarbageTokenRejected(t *testing.T) {
	setTestSecrets(t)

	_, err := VerifyPlatform("not-a-token", TypeAccess)
	assert.Error(t, err)
	_, err = VerifyCustomer("", TypeAccess)
	assert.Error(t, err)
}

func TestUnknownTokenType(t *testing.T) {
	setTestSecrets(t)
	_, err := MintPlatform(users.User{ID: 1}, "session")
	assert.Error(t, err)
}
