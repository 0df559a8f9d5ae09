package services

import (
	"testing"

	"hanabi_backend/internal/models"
	"hanabi_backend/internal/services/dto"
	"hanabi_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendMessageDelivers(t *testing.T) {
	env := newTestEnv()
	sender, receiver, matchID := env.matchedPair(t)
	env.broadcaster.pushes = nil // drop the match fan-out pushes

	msg, err := env.chatService.SendMessage(sender.ID, matchID, &dto.SendMessageRequest{Content: "안녕하세요!"})
	require.NoError(t, err)
	assert.Equal(t, "안녕하세요!", msg.Content)
	assert.Empty(t, msg.TranslatedContent)

	// The partner gets both a stored notification and a live push.
	notifications := env.notifications.byUser(receiver.ID)
	require.Len(t, notifications, 1)
	assert.Equal(t, models.NotificationNewMessage, notifications[0].Type)
	assert.Contains(t, env.broadcaster.pushes, receiver.ID+":message")
}

func TestSendMessageRequiresStrictVerification(t *testing.T) {
	env := newTestEnv()
	sender, _, matchID := env.matchedPair(t)

	// An outstanding submission opens browsing but never chat; a sender
	// whose verified flag is gone is refused.
	env.users.setVerified(sender.ID, false)
	env.submitIdentity(sender, models.DocumentTypePassport)

	_, err := env.chatService.SendMessage(sender.ID, matchID, &dto.SendMessageRequest{Content: "hi"})
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeNotVerified, appErr.Code)
}

func TestSendMessageTranslatesForPartner(t *testing.T) {
	env := newTestEnv()
	sender, _, matchID := env.matchedPair(t)

	// The partner is Japanese, so the stub translator targets Japanese.
	msg, err := env.chatService.SendMessage(sender.ID, matchID, &dto.SendMessageRequest{
		Content:   "만나서 반가워요",
		Translate: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "(翻訳) 만나서 반가워요", msg.TranslatedContent)
}

func TestSendMessageOutsiderRefused(t *testing.T) {
	env := newTestEnv()
	_, _, matchID := env.matchedPair(t)
	outsider := env.addUser(models.NationalityKorea, asVerified)

	_, err := env.chatService.SendMessage(outsider.ID, matchID, &dto.SendMessageRequest{Content: "hi"})
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeForbidden, appErr.Code)

	_, err = env.chatService.GetMessages(outsider.ID, matchID, 50, 0)
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeForbidden, appErr.Code)
}

func TestMatchListCarriesLastMessage(t *testing.T) {
	env := newTestEnv()
	sender, receiver, matchID := env.matchedPair(t)

	matches, err := env.matchService.ListMatches(receiver.ID)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Nil(t, matches[0].LastMessage)

	_, err = env.chatService.SendMessage(sender.ID, matchID, &dto.SendMessageRequest{Content: "first"})
	require.NoError(t, err)
	_, err = env.chatService.SendMessage(sender.ID, matchID, &dto.SendMessageRequest{Content: "latest"})
	require.NoError(t, err)

	matches, err = env.matchService.ListMatches(receiver.ID)
	require.NoError(t, err)
	require.NotNil(t, matches[0].LastMessage)
	assert.Equal(t, "latest", matches[0].LastMessage.Content)
}

func TestReadStateAcrossMatch(t *testing.T) {
	env := newTestEnv()
	sender, receiver, matchID := env.matchedPair(t)

	_, err := env.chatService.SendMessage(sender.ID, matchID, &dto.SendMessageRequest{Content: "one"})
	require.NoError(t, err)
	_, err = env.chatService.SendMessage(sender.ID, matchID, &dto.SendMessageRequest{Content: "two"})
	require.NoError(t, err)

	count, err := env.chatService.GetUnreadCount(receiver.ID, matchID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	// The sender's own messages never count against the sender.
	count, err = env.chatService.GetUnreadCount(sender.ID, matchID)
	require.NoError(t, err)
	assert.Zero(t, count)

	require.NoError(t, env.chatService.MarkMessagesRead(receiver.ID, matchID))

	count, _ = env.chatService.GetUnreadCount(receiver.ID, matchID)
	assert.Zero(t, count)

	list, err := env.chatService.GetMessages(receiver.ID, matchID, 50, 0)
	require.NoError(t, err)
	require.Len(t, list.Messages, 2)
	assert.True(t, list.Messages[0].IsRead)
}
