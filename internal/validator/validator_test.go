package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nationalityInput struct {
	Nationality string `json:"nationality" validate:"required,is-nationality"`
}

type basicInfoInput struct {
	Gender string `json:"gender" validate:"required,is-gender"`
	City   string `json:"city" validate:"required,max=100"`
}

type docTypeInput struct {
	DocType string `json:"doc_type" validate:"required,is-doc-type"`
}

func TestCustomNationalityRule(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(&nationalityInput{Nationality: "KR"}))
	assert.NoError(t, v.Validate(&nationalityInput{Nationality: "JP"}))

	err := v.Validate(&nationalityInput{Nationality: "US"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Errors, "nationality")
}

func TestFieldNamesComeFromJSONTags(t *testing.T) {
	v := New()

	err := v.Validate(&basicInfoInput{Gender: "other", City: ""})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Errors, "gender")
	assert.Contains(t, verr.Errors, "city")
	assert.NotContains(t, verr.Errors, "Gender")
}

func TestDocTypeRule(t *testing.T) {
	v := New()

	for _, dt := range []string{"resident_card", "driver_license", "passport", "my_number_card"} {
		assert.NoError(t, v.Validate(&docTypeInput{DocType: dt}), dt)
	}
	assert.Error(t, v.Validate(&docTypeInput{DocType: "library_card"}))
}
