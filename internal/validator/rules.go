package validator

import (
	"log"

	"hanabi_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules installs the domain vocabulary checks. Empty values
// pass here; 'required' handles presence separately.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("is-nationality", validateNationality)
	mustRegister("is-gender", validateGender)
	mustRegister("is-doc-type", validateDocumentType)
	mustRegister("is-education", validateEducation)
	mustRegister("is-lang-level", validateLanguageLevel)
}

func validateNationality(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.Nationality(value) {
	case models.NationalityKorea, models.NationalityJapan:
		return true
	default:
		return false
	}
}

func validateGender(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.Gender(value) {
	case models.GenderMale, models.GenderFemale:
		return true
	default:
		return false
	}
}

func validateDocumentType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.DocumentType(value) {
	case models.DocumentTypeResidentCard, models.DocumentTypeDriverLicense,
		models.DocumentTypePassport, models.DocumentTypeMyNumberCard:
		return true
	default:
		return false
	}
}

func validateEducation(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.EducationLevel(value) {
	case models.EducationHighSchool, models.EducationCollege,
		models.EducationBachelor, models.EducationGraduate:
		return true
	default:
		return false
	}
}

func validateLanguageLevel(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.LanguageLevel(value) {
	case models.LanguageLevelNone, models.LanguageLevelBeginner,
		models.LanguageLevelIntermediate, models.LanguageLevelAdvanced,
		models.LanguageLevelNative:
		return true
	default:
		return false
	}
}
