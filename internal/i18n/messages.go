package i18n

// User-facing messages for the two supported interface languages.
// The backend picks the language from the X-App-Language header so error
// toasts render localized without a client-side lookup.

type Language string

const (
	LanguageKorean   Language = "ko"
	LanguageJapanese Language = "ja"
)

const (
	KeyGenericError            = "generic_error"
	KeyAgeRestricted           = "age_restricted"
	KeyRejectionReasonRequired = "rejection_reason_required"
	KeyChatRequiresVerify      = "chat_requires_verify"
	KeyRecsRequireVerify       = "recommendations_require_verify"
	KeyPhotosRequired          = "photos_required"
	KeyInvalidDocType          = "invalid_doc_type"
	KeyVerifyOutstanding       = "verify_outstanding"
	KeyVerifyPassedTitle       = "verify_passed_title"
	KeyVerifyPassedBody        = "verify_passed_body"
	KeyVerifyRejectedTitle     = "verify_rejected_title"
	KeyPhotoApprovedTitle      = "photo_approved_title"
	KeyPhotoRejectedTitle      = "photo_rejected_title"
	KeyBioApprovedTitle        = "bio_approved_title"
	KeyBioRejectedTitle        = "bio_rejected_title"
	KeyMatchRequestTitle       = "match_request_title"
	KeyMatchAcceptedTitle      = "match_accepted_title"
	KeyMatchRejectedTitle      = "match_rejected_title"
	KeyNewMessageTitle         = "new_message_title"
)

var messages = map[Language]map[string]string{
	LanguageKorean: {
		KeyGenericError:            "오류가 발생했습니다. 다시 시도해 주세요.",
		KeyAgeRestricted:           "가입 가능한 연령이 아닙니다.",
		KeyRejectionReasonRequired: "거절 사유를 입력해 주세요.",
		KeyChatRequiresVerify:      "채팅은 본인 인증 후 이용할 수 있습니다.",
		KeyRecsRequireVerify:       "추천은 본인 인증 후 이용할 수 있습니다.",
		KeyPhotosRequired:          "사진을 최소 1장 등록해 주세요.",
		KeyInvalidDocType:          "선택한 국적에서 사용할 수 없는 서류입니다.",
		KeyVerifyOutstanding:       "이미 심사 중인 인증 요청이 있습니다.",
		KeyVerifyPassedTitle:       "본인 인증 완료",
		KeyVerifyPassedBody:        "본인 인증이 승인되었습니다. 모든 기능을 이용할 수 있습니다.",
		KeyVerifyRejectedTitle:     "본인 인증 거절",
		KeyPhotoApprovedTitle:      "프로필 사진 승인",
		KeyPhotoRejectedTitle:      "프로필 사진 거절",
		KeyBioApprovedTitle:        "자기소개 승인",
		KeyBioRejectedTitle:        "자기소개 거절",
		KeyMatchRequestTitle:       "새로운 매칭 요청",
		KeyMatchAcceptedTitle:      "매칭 성사",
		KeyMatchRejectedTitle:      "매칭 거절",
		KeyNewMessageTitle:         "새 메시지",
	},
	LanguageJapanese: {
		KeyGenericError:            "エラーが発生しました。もう一度お試しください。",
		KeyAgeRestricted:           "ご利用いただける年齢ではありません。",
		KeyRejectionReasonRequired: "却下理由を入力してください。",
		KeyChatRequiresVerify:      "チャットは本人確認後にご利用いただけます。",
		KeyRecsRequireVerify:       "おすすめは本人確認後にご利用いただけます。",
		KeyPhotosRequired:          "写真を1枚以上登録してください。",
		KeyInvalidDocType:          "選択した国籍では使用できない書類です。",
		KeyVerifyOutstanding:       "すでに審査中の認証リクエストがあります。",
		KeyVerifyPassedTitle:       "本人確認完了",
		KeyVerifyPassedBody:        "本人確認が承認されました。すべての機能をご利用いただけます。",
		KeyVerifyRejectedTitle:     "本人確認却下",
		KeyPhotoApprovedTitle:      "プロフィール写真承認",
		KeyPhotoRejectedTitle:      "プロフィール写真却下",
		KeyBioApprovedTitle:        "自己紹介承認",
		KeyBioRejectedTitle:        "自己紹介却下",
		KeyMatchRequestTitle:       "新しいマッチリクエスト",
		KeyMatchAcceptedTitle:      "マッチ成立",
		KeyMatchRejectedTitle:      "マッチ却下",
		KeyNewMessageTitle:         "新着メッセージ",
	},
}

// Normalize maps arbitrary header values onto a supported language.
// Korean is the default, matching the app's primary market.
func Normalize(lang string) Language {
	switch Language(lang) {
	case LanguageJapanese:
		return LanguageJapanese
	default:
		return LanguageKorean
	}
}

// ForNationality picks the notification language for a recipient.
func ForNationality(isJapanese bool) Language {
	if isJapanese {
		return LanguageJapanese
	}
	return LanguageKorean
}

// T resolves a message key; unknown keys fall back to the generic error.
func T(lang Language, key string) string {
	table, ok := messages[lang]
	if !ok {
		table = messages[LanguageKorean]
	}
	if msg, ok := table[key]; ok {
		return msg
	}
	return table[KeyGenericError]
}
