package models

type UserRole string
type Nationality string
type Gender string
type VerificationStatus string
type RequestStatus string
type RequestType string
type DocumentType string
type EducationLevel string
type LanguageLevel string
type LikeStatus string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"

	NationalityKorea Nationality = "KR"
	NationalityJapan Nationality = "JP"

	GenderMale   Gender = "male"
	GenderFemale Gender = "female"

	// identity verification lifecycle: submitted -> approved | rejected
	VerificationStatusSubmitted VerificationStatus = "submitted"
	VerificationStatusApproved  VerificationStatus = "approved"
	VerificationStatusRejected  VerificationStatus = "rejected"

	// profile-photo / bio review lifecycle
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusApproved RequestStatus = "approved"
	RequestStatusRejected RequestStatus = "rejected"

	RequestTypeProfilePhoto RequestType = "profile_photo"
	RequestTypeBioUpdate    RequestType = "bio_update"

	DocumentTypeResidentCard  DocumentType = "resident_card"
	DocumentTypeDriverLicense DocumentType = "driver_license"
	DocumentTypePassport      DocumentType = "passport"
	DocumentTypeMyNumberCard  DocumentType = "my_number_card"

	EducationHighSchool EducationLevel = "high_school"
	EducationCollege    EducationLevel = "college"
	EducationBachelor   EducationLevel = "bachelor"
	EducationGraduate   EducationLevel = "graduate"

	LanguageLevelNone         LanguageLevel = "none"
	LanguageLevelBeginner     LanguageLevel = "beginner"
	LanguageLevelIntermediate LanguageLevel = "intermediate"
	LanguageLevelAdvanced     LanguageLevel = "advanced"
	LanguageLevelNative       LanguageLevel = "native"

	LikeStatusPending  LikeStatus = "pending"
	LikeStatusAccepted LikeStatus = "accepted"
	LikeStatusRejected LikeStatus = "rejected"
)

// MinAge returns the legal-adulthood minimum for a nationality.
// Korea counts 19, Japan 18; the rule follows the chosen nationality,
// never the interface language.
func (n Nationality) MinAge() int {
	if n == NationalityKorea {
		return 19
	}
	return 18
}

// OppositeNationality is the candidate pool for recommendations.
func (n Nationality) Opposite() Nationality {
	if n == NationalityKorea {
		return NationalityJapan
	}
	return NationalityKorea
}

// AllowedDocumentTypes lists the identity documents a nationality may submit.
func (n Nationality) AllowedDocumentTypes() []DocumentType {
	if n == NationalityKorea {
		return []DocumentType{DocumentTypeResidentCard, DocumentTypeDriverLicense, DocumentTypePassport}
	}
	return []DocumentType{DocumentTypeMyNumberCard, DocumentTypeDriverLicense, DocumentTypePassport}
}

func (n Nationality) AllowsDocumentType(dt DocumentType) bool {
	for _, allowed := range n.AllowedDocumentTypes() {
		if allowed == dt {
			return true
		}
	}
	return false
}
