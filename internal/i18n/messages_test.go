package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDefaultsToKorean(t *testing.T) {
	assert.Equal(t, LanguageJapanese, Normalize("ja"))
	assert.Equal(t, LanguageKorean, Normalize("ko"))
	assert.Equal(t, LanguageKorean, Normalize(""))
	assert.Equal(t, LanguageKorean, Normalize("en"))
}

func TestForNationality(t *testing.T) {
	assert.Equal(t, LanguageJapanese, ForNationality(true))
	assert.Equal(t, LanguageKorean, ForNationality(false))
}

func TestTranslationFallback(t *testing.T) {
	assert.Equal(t, messages[LanguageKorean][KeyVerifyPassedTitle], T(LanguageKorean, KeyVerifyPassedTitle))
	assert.Equal(t, messages[LanguageJapanese][KeyVerifyPassedTitle], T(LanguageJapanese, KeyVerifyPassedTitle))

	// Unknown keys resolve to the generic error instead of leaking the key.
	assert.Equal(t, messages[LanguageKorean][KeyGenericError], T(LanguageKorean, "no_such_key"))
	assert.Equal(t, messages[LanguageKorean][KeyGenericError], T(Language("en"), KeyGenericError))
}

func TestEveryKeyPresentInBothLanguages(t *testing.T) {
	for key := range messages[LanguageKorean] {
		_, ok := messages[LanguageJapanese][key]
		assert.True(t, ok, "missing Japanese translation for %s", key)
	}
	for key := range messages[LanguageJapanese] {
		_, ok := messages[LanguageKorean][key]
		assert.True(t, ok, "missing Korean translation for %s", key)
	}
}
