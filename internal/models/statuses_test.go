package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMinAgePerNationality(t *testing.T) {
	assert.Equal(t, 19, NationalityKorea.MinAge())
	assert.Equal(t, 18, NationalityJapan.MinAge())
}

func TestOppositeNationality(t *testing.T) {
	assert.Equal(t, NationalityJapan, NationalityKorea.Opposite())
	assert.Equal(t, NationalityKorea, NationalityJapan.Opposite())
}

func TestAllowedDocumentTypes(t *testing.T) {
	assert.True(t, NationalityKorea.AllowsDocumentType(DocumentTypeResidentCard))
	assert.False(t, NationalityKorea.AllowsDocumentType(DocumentTypeMyNumberCard))

	assert.True(t, NationalityJapan.AllowsDocumentType(DocumentTypeMyNumberCard))
	assert.False(t, NationalityJapan.AllowsDocumentType(DocumentTypeResidentCard))

	// Shared documents.
	for _, n := range []Nationality{NationalityKorea, NationalityJapan} {
		assert.True(t, n.AllowsDocumentType(DocumentTypePassport))
		assert.True(t, n.AllowsDocumentType(DocumentTypeDriverLicense))
	}
}

func TestAgeAtBirthdayBoundary(t *testing.T) {
	birthdate := time.Date(2000, 6, 15, 0, 0, 0, 0, time.UTC)

	dayBefore := time.Date(2019, 6, 14, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, 18, AgeAt(birthdate, dayBefore))

	onBirthday := time.Date(2019, 6, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 19, AgeAt(birthdate, onBirthday))

	earlierMonth := time.Date(2019, 5, 20, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 18, AgeAt(birthdate, earlierMonth))
}

func TestNotificationTypeClosedSet(t *testing.T) {
	valid := []NotificationType{
		NotificationMatchAccepted, NotificationMatchRejected, NotificationMatchRequest,
		NotificationNewMessage, NotificationVerifyPassed, NotificationVerifyRejected,
		NotificationProfilePhotoApproved, NotificationProfilePhotoRejected,
		NotificationProfilePhotoRequest,
	}
	for _, nt := range valid {
		assert.True(t, IsValidNotificationType(nt), string(nt))
	}
	assert.False(t, IsValidNotificationType(NotificationType("bio_approved")))
	assert.False(t, IsValidNotificationType(NotificationType("")))
}
