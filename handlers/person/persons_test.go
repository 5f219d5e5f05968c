package person

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/conectaedu/conecta-api/model"
	"github.com/gofiber/fiber/v2"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The password hash must never survive serialization, whatever the handler
// returns it through.
func TestPersonSerializationOmitsPasswordHash(t *testing.T) {
	t.Parallel()

	person := model.Person{
		ID:           7,
		Username:     "mariana",
		Email:        "mariana@example.com",
		FirstName:    "Mariana",
		LastName:     "Souza",
		Roles:        pq.StringArray{"user", "monitor"},
		PasswordHash: "$2a$12$abcdefghijklmnopqrstuv",
		Bio:          "Bio",
		Hex:          "#3498db",
		IsActive:     true,
	}

	raw, err := json.Marshal(person)
	require.NoError(t, err)

	serialized := string(raw)
	assert.NotContains(t, serialized, "$2a$12$")
	assert.NotContains(t, serialized, "passwordHash")
	assert.NotContains(t, serialized, "password_hash")

	assert.Contains(t, serialized, `"username":"mariana"`)
	assert.Contains(t, serialized, `"email":"mariana@example.com"`)
}

func TestFillSocial(t *testing.T) {
	t.Parallel()

	t.Run("flat fields win over nested", func(t *testing.T) {
		t.Parallel()
		req := &CreatePersonRequest{Github: "https://github.com/mariana"}
		social := fillSocial(&model.SocialLinks{Github: "https://github.com/old"}, req)

		assert.Equal(t, "https://github.com/mariana", social.Github)
	})

	t.Run("missing links get the placeholder", func(t *testing.T) {
		t.Parallel()
		social := fillSocial(nil, &CreatePersonRequest{})

		assert.Equal(t, missingSocialValue, social.Github)
		assert.Equal(t, missingSocialValue, social.Linkedin)
		assert.Equal(t, missingSocialValue, social.Twitter)
		assert.Equal(t, missingSocialValue, social.Instagram)
		assert.Equal(t, missingSocialValue, social.Facebook)
	})

	t.Run("nested values survive when no flat field is sent", func(t *testing.T) {
		t.Parallel()
		social := fillSocial(&model.SocialLinks{Linkedin: "https://linkedin.com/in/m"}, &CreatePersonRequest{})

		assert.Equal(t, "https://linkedin.com/in/m", social.Linkedin)
	})
}

func postJSON(t *testing.T, app *fiber.App, path, body string) (int, map[string]interface{}) {
	t.Helper()

	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &parsed))

	return resp.StatusCode, parsed
}

func TestCreatePersonValidation(t *testing.T) {
	t.Parallel()

	handler := NewPersonHandler(nil, nil, nil)
	app := fiber.New()
	app.Post("/persons", handler.CreatePerson)

	t.Run("rejects mismatched confirmation", func(t *testing.T) {
		t.Parallel()
		status, body := postJSON(t, app, "/persons", `{
			"username": "mariana",
			"firstName": "Mariana",
			"lastName": "Souza",
			"email": "mariana@example.com",
			"password": "long-enough-password",
			"confirmPassword": "a-different-password"
		}`)
		assert.Equal(t, fiber.StatusBadRequest, status)

		errs, ok := body["errors"].(map[string]interface{})
		require.True(t, ok)
		assert.Contains(t, errs, "confirmPassword")
	})

	t.Run("rejects short password", func(t *testing.T) {
		t.Parallel()
		status, body := postJSON(t, app, "/persons", `{
			"username": "mariana",
			"firstName": "Mariana",
			"lastName": "Souza",
			"email": "mariana@example.com",
			"password": "short",
			"confirmPassword": "short"
		}`)
		assert.Equal(t, fiber.StatusBadRequest, status)

		errs, ok := body["errors"].(map[string]interface{})
		require.True(t, ok)
		assert.Contains(t, errs, "password")
	})

	t.Run("rejects unknown role", func(t *testing.T) {
		t.Parallel()
		status, body := postJSON(t, app, "/persons", `{
			"username": "mariana",
			"firstName": "Mariana",
			"lastName": "Souza",
			"email": "mariana@example.com",
			"password": "long-enough-password",
			"confirmPassword": "long-enough-password",
			"roles": ["overlord"]
		}`)
		assert.Equal(t, fiber.StatusBadRequest, status)
		assert.Equal(t, false, body["success"])
	})
}

func TestSignInValidation(t *testing.T) {
	t.Parallel()

	handler := NewPersonHandler(nil, nil, nil)
	app := fiber.New()
	app.Post("/persons/sign-in", handler.SignIn)

	status, body := postJSON(t, app, "/persons/sign-in", `{"identifier": ""}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, false, body["success"])
}
