package apperrors

import "net/http"

// Domain-specific factories. Handlers translate these to localized
// messages via the i18n package; the Message here is the log-facing text.

func UserNotFound() *AppError {
	return New(CodeNotFound, "user", "User not found", http.StatusNotFound)
}

func VerificationNotFound() *AppError {
	return New(CodeNotFound, "verification", "Verification request not found", http.StatusNotFound)
}

// VerificationAlreadyDecided covers the two-admins race: the row exists
// but a decision already landed, so the second decision is a no-op error.
func VerificationAlreadyDecided() *AppError {
	return New(CodeInvalidStatus, "verification", "Verification request already decided", http.StatusConflict)
}

func VerificationOutstanding() *AppError {
	return New(CodeConflict, "verification", "An identity verification is already under review", http.StatusConflict).
		WithMessageKey("verify_outstanding")
}

func RejectionReasonRequired() *AppError {
	return New(CodeValidationFailed, "verification", "Rejection reason must not be empty", http.StatusBadRequest).
		WithMessageKey("rejection_reason_required")
}

func AgeRestricted(minAge int) *AppError {
	return New(CodeAgeRestricted, "onboarding", "Below the minimum age for the selected nationality", http.StatusBadRequest).
		WithDetails(map[string]int{"min_age": minAge}).
		WithMessageKey("age_restricted")
}

func InvalidDocumentType() *AppError {
	return New(CodeValidationFailed, "onboarding", "Document type not accepted for the selected nationality", http.StatusBadRequest).
		WithMessageKey("invalid_doc_type")
}

func PhotosRequired(min int) *AppError {
	return New(CodeValidationFailed, "onboarding", "Not enough profile photos", http.StatusBadRequest).
		WithDetails(map[string]int{"min_photos": min}).
		WithMessageKey("photos_required")
}

func UnsupportedFileType(contentType string) *AppError {
	return New(CodeValidationFailed, "upload", "Unsupported file type", http.StatusBadRequest).
		WithDetails(map[string]string{"content_type": contentType})
}

func FileTooLarge(maxBytes int64) *AppError {
	return New(CodeValidationFailed, "upload", "File exceeds the maximum size", http.StatusBadRequest).
		WithDetails(map[string]int64{"max_bytes": maxBytes})
}

func ChatNotAllowed() *AppError {
	return New(CodeNotVerified, "access", "Identity verification required for chat", http.StatusForbidden).
		WithMessageKey("chat_requires_verify")
}

func RecommendationsNotAllowed() *AppError {
	return New(CodeNotVerified, "access", "Identity verification required for recommendations", http.StatusForbidden).
		WithMessageKey("recommendations_require_verify")
}
