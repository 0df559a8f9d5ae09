package services

import "hanabi_backend/internal/i18n"

// Translator converts a message between Korean and Japanese. The real
// engine lives outside this service; the stub below stands in until the
// translation backend is wired up.
type Translator interface {
	Translate(text string, target i18n.Language) (string, error)
}

type stubTranslator struct{}

func NewStubTranslator() Translator {
	return stubTranslator{}
}

// Translate marks the text with the target language instead of actually
// translating it, so clients can exercise the full message flow.
func (stubTranslator) Translate(text string, target i18n.Language) (string, error) {
	if target == i18n.LanguageJapanese {
		return "(翻訳) " + text, nil
	}
	return "(번역) " + text, nil
}
