package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Username string `validate:"required,min=3,max=30"`
	Email    string `validate:"required,email"`
	Anos     int    `validate:"gte=1,lte=10"`
	Repo     string `validate:"omitempty,url"`
}

func TestValidateStruct(t *testing.T) {
	t.Parallel()

	v := NewValidator()

	t.Run("valid struct passes", func(t *testing.T) {
		t.Parallel()
		err := v.ValidateStruct(sampleRequest{
			Username: "mariana",
			Email:    "mariana@example.com",
			Anos:     4,
		})
		assert.NoError(t, err)
	})

	t.Run("invalid struct reports each violated field", func(t *testing.T) {
		t.Parallel()
		err := v.ValidateStruct(sampleRequest{
			Username: "ab",
			Email:    "not-an-email",
			Anos:     20,
			Repo:     "not a url",
		})
		require.Error(t, err)

		errs := FormatValidationErrors(err)
		assert.Contains(t, errs, "username")
		assert.Contains(t, errs, "email")
		assert.Contains(t, errs, "anos")
		assert.Contains(t, errs, "repo")
	})

	t.Run("field names are lower-camel cased", func(t *testing.T) {
		t.Parallel()
		err := v.ValidateStruct(sampleRequest{})
		require.Error(t, err)

		errs := FormatValidationErrors(err)
		assert.Contains(t, errs, "username")
		assert.NotContains(t, errs, "Username")
	})
}

func TestValidateHexColor(t *testing.T) {
	t.Parallel()

	valid := []string{"#fff", "#FFF", "#3498db", "#A1B2C3"}
	for _, c := range valid {
		assert.True(t, ValidateHexColor(c), c)
	}

	invalid := []string{"", "fff", "#ff", "#fffff", "#gggggg", "3498db", "#3498dbff"}
	for _, c := range invalid {
		assert.False(t, ValidateHexColor(c), c)
	}
}

func TestValidateUsername(t *testing.T) {
	t.Parallel()

	ok, _ := ValidateUsername("joao_silva-99")
	assert.True(t, ok)

	ok, msg := ValidateUsername("ab")
	assert.False(t, ok)
	assert.NotEmpty(t, msg)

	ok, _ = ValidateUsername("has spaces")
	assert.False(t, ok)

	ok, _ = ValidateUsername("acentuação")
	assert.False(t, ok)
}

func TestSanitizeString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "hello", SanitizeString("  hello  "))
	assert.Equal(t, "hello", SanitizeString("he\x00llo"))
	assert.Equal(t, "", SanitizeString("   "))
}

func TestOneOf(t *testing.T) {
	t.Parallel()

	set := []string{"superior", "ensino médio", "EAD"}
	assert.True(t, OneOf("ensino médio", set))
	assert.False(t, OneOf("outro", set))
	assert.False(t, OneOf("", set))
}
