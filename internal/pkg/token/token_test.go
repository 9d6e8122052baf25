package token

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestMasterTokenRoundTrip(t *testing.T) {
	userID := uuid.New()

	tok, expireAt, err := GenerateMaster("secret", userID, 24)
	assert.NoError(t, err)
	assert.False(t, expireAt.IsZero())

	claims, err := Parse("secret", tok)
	assert.NoError(t, err)
	assert.Equal(t, RoleMaster, claims.Role)
	assert.NotNil(t, claims.UserID)
	assert.Equal(t, userID, *claims.UserID)
	assert.Nil(t, claims.ProjectID)
}

func TestSiteTokenRoundTrip(t *testing.T) {
	projectID := uuid.New()

	tok, _, err := GenerateSite("secret", projectID, 24)
	assert.NoError(t, err)

	claims, err := Parse("secret", tok)
	assert.NoError(t, err)
	assert.Equal(t, RoleSite, claims.Role)
	assert.Nil(t, claims.UserID)
	assert.NotNil(t, claims.ProjectID)
	assert.Equal(t, projectID, *claims.ProjectID)
}

func TestParse_WrongSecret(t *testing.T) {
	tok, _, err := GenerateMaster("secret", uuid.New(), 24)
	assert.NoError(t, err)

	_, err = Parse("other-secret", tok)
	assert.Error(t, err)
}

func TestParse_Garbage(t *testing.T) {
	_, err := Parse("secret", "not-a-token")
	assert.Error(t, err)
}
