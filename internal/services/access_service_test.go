package services

import (
	"testing"

	"hanabi_backend/internal/models"
	"hanabi_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessGateUnverified(t *testing.T) {
	env := newTestEnv()
	user := env.addUser(models.NationalityKorea)

	chat, err := env.accessService.CanAccessChat(user.ID)
	require.NoError(t, err)
	assert.False(t, chat)

	recs, err := env.accessService.CanAccessRecommendations(user.ID)
	require.NoError(t, err)
	assert.False(t, recs)
}

// While an identity submission awaits review the two surfaces diverge:
// browsing opens up, chat stays closed.
func TestAccessGateOutstandingSubmission(t *testing.T) {
	env := newTestEnv()
	user := env.addUser(models.NationalityKorea)
	env.submitIdentity(user, models.DocumentTypePassport)

	chat, err := env.accessService.CanAccessChat(user.ID)
	require.NoError(t, err)
	assert.False(t, chat)

	recs, err := env.accessService.CanAccessRecommendations(user.ID)
	require.NoError(t, err)
	assert.True(t, recs)

	err = env.accessService.RequireChat(user.ID)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeNotVerified, appErr.Code)

	assert.NoError(t, env.accessService.RequireRecommendations(user.ID))
}

func TestAccessGateVerified(t *testing.T) {
	env := newTestEnv()
	user := env.addUser(models.NationalityJapan, asVerified)

	assert.NoError(t, env.accessService.RequireChat(user.ID))
	assert.NoError(t, env.accessService.RequireRecommendations(user.ID))
}

func TestAccessGateClosesAfterRejection(t *testing.T) {
	env := newTestEnv()
	admin := env.addAdmin()
	user := env.addUser(models.NationalityKorea)
	submission := env.submitIdentity(user, models.DocumentTypePassport)

	recs, _ := env.accessService.CanAccessRecommendations(user.ID)
	assert.True(t, recs)

	_, err := env.reviewService.RejectIdentity(admin.ID, submission.ID, "unreadable")
	require.NoError(t, err)

	// No verified flag and nothing outstanding: both surfaces closed again.
	recs, _ = env.accessService.CanAccessRecommendations(user.ID)
	assert.False(t, recs)
	chat, _ := env.accessService.CanAccessChat(user.ID)
	assert.False(t, chat)
}
