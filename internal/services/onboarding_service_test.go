package services

import (
	"strings"
	"testing"
	"time"

	"hanabi_backend/internal/models"
	"hanabi_backend/internal/services/dto"
	"hanabi_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func freshUser(env *testEnv) *models.User {
	return env.users.add(&models.User{
		Email:          "fresh@example.com",
		PasswordHash:   "x",
		Role:           models.UserRoleUser,
		OnboardingStep: StepNationality,
	})
}

func birthdateYearsAgo(years int) string {
	return time.Now().AddDate(-years, 0, -1).Format("2006-01-02")
}

func TestSetNationalityAdvancesStep(t *testing.T) {
	env := newTestEnv()
	user := freshUser(env)

	state, err := env.onboardingService.SetNationality(user.ID, &dto.NationalityRequest{Nationality: "KR"})
	require.NoError(t, err)

	assert.Equal(t, "KR", state.Nationality)
	assert.Equal(t, StepPhotos, state.Step)
}

func TestUploadPhotosRejectsNonImage(t *testing.T) {
	env := newTestEnv()
	user := freshUser(env)
	require.NoError(t, env.users.UpdateFields(user.ID, map[string]interface{}{"nationality": models.NationalityKorea}))

	files := []dto.FileInput{
		imageUpload("ok.jpg"),
		{Filename: "cv.pdf", ContentType: "application/pdf", Size: 100, Reader: strings.NewReader("%PDF")},
	}
	_, err := env.onboardingService.UploadPhotos(testCtx(), user.ID, files)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeValidationFailed, appErr.Code)

	// The whole batch is refused; nothing from it is stored.
	count, _ := env.profiles.CountPhotos(user.ID)
	assert.Zero(t, count)
}

func TestBasicInfoAgeGateKorean(t *testing.T) {
	env := newTestEnv()
	user := freshUser(env)
	require.NoError(t, env.users.UpdateFields(user.ID, map[string]interface{}{"nationality": models.NationalityKorea}))

	req := &dto.BasicInfoRequest{
		Nickname:  "yuna",
		Gender:    "female",
		Birthdate: birthdateYearsAgo(18), // adult in Japan, not in Korea
		City:      "Busan",
	}
	_, err := env.onboardingService.SetBasicInfo(user.ID, req)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeAgeRestricted, appErr.Code)
	assert.Equal(t, map[string]int{"min_age": 19}, appErr.Details)

	// A blocked applicant leaves no partial write behind.
	stored, _ := env.users.FindByID(user.ID)
	assert.Empty(t, stored.Nickname)
	assert.Nil(t, stored.Birthdate)
}

func TestBasicInfoAgeGateJapanese(t *testing.T) {
	env := newTestEnv()
	user := freshUser(env)
	require.NoError(t, env.users.UpdateFields(user.ID, map[string]interface{}{"nationality": models.NationalityJapan}))

	req := &dto.BasicInfoRequest{
		Nickname:  "aoi",
		Gender:    "female",
		Birthdate: birthdateYearsAgo(18),
		City:      "Osaka",
	}
	state, err := env.onboardingService.SetBasicInfo(user.ID, req)
	require.NoError(t, err)
	assert.Equal(t, StepProfileDetails, state.Step)

	stored, _ := env.users.FindByID(user.ID)
	assert.Equal(t, "aoi", stored.Nickname)
	require.NotNil(t, stored.Birthdate)
}

func TestProfileDetailsWriteThrough(t *testing.T) {
	env := newTestEnv()
	user := env.addUser(models.NationalityKorea)
	env.users.SetOnboardingStep(user.ID, StepProfileDetails)

	req := &dto.ProfileDetailsRequest{
		Job:       "designer",
		Education: "bachelor",
		Bio:       "안녕하세요",
		Interests: []string{"travel", "cooking"},
		LanguageSkills: []dto.LanguageSkillInput{
			{Language: "ko", Level: "native"},
			{Language: "ja", Level: "beginner"},
		},
	}
	state, err := env.onboardingService.SetProfileDetails(user.ID, req)
	require.NoError(t, err)
	assert.Equal(t, StepVerification, state.Step)

	stored, _ := env.users.FindByID(user.ID)
	assert.Equal(t, "안녕하세요", stored.Bio)
	assert.Equal(t, []string{"travel", "cooking"}, env.profiles.interests[user.ID])
	assert.Len(t, env.profiles.skills[user.ID], 2)
}

func TestSubmitVerificationCreatesIdentity(t *testing.T) {
	env := newTestEnv()
	user := env.addUser(models.NationalityKorea)
	env.addPhoto(user.ID)

	resp, err := env.onboardingService.SubmitVerification(testCtx(), user.ID, &dto.SubmitVerificationInput{
		DocType:  string(models.DocumentTypeResidentCard),
		Document: imageUpload("id.jpg"),
	})
	require.NoError(t, err)
	assert.Equal(t, "submitted", resp.Status)
	assert.False(t, resp.IsVerified)

	stored, _ := env.users.FindByID(user.ID)
	assert.True(t, stored.OnboardingCompleted)
	assert.False(t, stored.IsVerified)

	latest, err := env.verifications.FindLatestIdentityByUserID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.VerificationStatusSubmitted, latest.Status)
	assert.Equal(t, models.NationalityKorea, latest.CountryCode)

	// The artifact landed in storage under the private documents area.
	exists, _ := env.storage.Exists(testCtx(), latest.ArtifactPath)
	assert.True(t, exists)
}

func TestSubmitVerificationRejectsForeignDocType(t *testing.T) {
	env := newTestEnv()
	user := env.addUser(models.NationalityJapan)
	env.addPhoto(user.ID)

	_, err := env.onboardingService.SubmitVerification(testCtx(), user.ID, &dto.SubmitVerificationInput{
		DocType:  string(models.DocumentTypeResidentCard), // Korean document
		Document: imageUpload("id.jpg"),
	})

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "invalid_doc_type", appErr.MessageKey)
}

func TestSubmitVerificationBlockedWhileOutstanding(t *testing.T) {
	env := newTestEnv()
	user := env.addUser(models.NationalityKorea)
	env.addPhoto(user.ID)
	env.submitIdentity(user, models.DocumentTypePassport)

	_, err := env.onboardingService.SubmitVerification(testCtx(), user.ID, &dto.SubmitVerificationInput{
		DocType:  string(models.DocumentTypePassport),
		Document: imageUpload("id2.jpg"),
	})

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeConflict, appErr.Code)
}

func TestSkipVerificationCompletesWithoutIdentity(t *testing.T) {
	env := newTestEnv()
	user := env.addUser(models.NationalityJapan)
	env.addPhoto(user.ID)

	state, err := env.onboardingService.SkipVerification(user.ID)
	require.NoError(t, err)
	assert.True(t, state.Completed)
	assert.False(t, state.HasPending)

	stored, _ := env.users.FindByID(user.ID)
	assert.True(t, stored.OnboardingCompleted)
	assert.False(t, stored.IsVerified)

	_, err = env.verifications.FindLatestIdentityByUserID(user.ID)
	assert.Error(t, err, "skip must not create an identity record")
}

func TestStepBackOnlyMovesCursor(t *testing.T) {
	env := newTestEnv()
	user := env.addUser(models.NationalityKorea)
	env.addPhoto(user.ID)
	env.users.SetOnboardingStep(user.ID, StepProfileDetails)

	state, err := env.onboardingService.StepBack(user.ID, &dto.StepBackRequest{Step: StepPhotos})
	require.NoError(t, err)
	assert.Equal(t, StepPhotos, state.Step)

	// Going back discards nothing.
	count, _ := env.profiles.CountPhotos(user.ID)
	assert.EqualValues(t, 1, count)

	_, err = env.onboardingService.StepBack(user.ID, &dto.StepBackRequest{Step: StepVerification})
	assert.Error(t, err, "cannot step forward through step-back")
}
