package course

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeAbbr(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"cc", "CC"},
		{"CC", "CC"},
		{"  ads  ", "ADS"},
		{"eSi", "ESI"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeAbbr(tt.in))
	}
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

// Validation failures reject the request before any persistence happens, so
// these paths are exercised without a database.
func TestCreateCourseValidation(t *testing.T) {
	t.Parallel()

	handler := NewCourseHandler(nil)
	app := fiber.New()
	app.Post("/courses", handler.CreateCourse)

	t.Run("rejects malformed json", func(t *testing.T) {
		t.Parallel()
		status, body := postJSON(t, app, "/courses", "{not json")
		assert.Equal(t, fiber.StatusBadRequest, status)
		assert.Equal(t, false, body["success"])
	})

	t.Run("rejects missing required fields", func(t *testing.T) {
		t.Parallel()
		status, body := postJSON(t, app, "/courses", `{}`)
		assert.Equal(t, fiber.StatusBadRequest, status)
		assert.Equal(t, false, body["success"])

		errs, ok := body["errors"].(map[string]interface{})
		require.True(t, ok)
		assert.Contains(t, errs, "curso")
		assert.Contains(t, errs, "anos")
		assert.Contains(t, errs, "abbr")
	})

	t.Run("rejects duration outside range", func(t *testing.T) {
		t.Parallel()
		status, body := postJSON(t, app, "/courses",
			`{"curso":"Medicina","anos":15,"abbr":"MED"}`)
		assert.Equal(t, fiber.StatusBadRequest, status)

		errs, ok := body["errors"].(map[string]interface{})
		require.True(t, ok)
		assert.Contains(t, errs, "anos")
	})
}

func TestGetByDurationValidation(t *testing.T) {
	t.Parallel()

	handler := NewCourseHandler(nil)
	app := fiber.New()
	app.Get("/courses/duration/:anos", handler.GetByDuration)

	for _, anos := range []string{"0", "11", "-1", "abc"} {
		req := httptest.NewRequest("GET", "/courses/duration/"+anos, nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, anos)
	}
}

func TestAddVariationValidation(t *testing.T) {
	t.Parallel()

	handler := NewCourseHandler(nil)
	app := fiber.New()
	app.Post("/courses/:id/variations", handler.AddVariation)

	t.Run("rejects invalid id", func(t *testing.T) {
		t.Parallel()
		status, _ := postJSON(t, app, "/courses/zero/variations", `{"variacao":"TADS"}`)
		assert.Equal(t, fiber.StatusBadRequest, status)
	})

	t.Run("rejects empty variation", func(t *testing.T) {
		t.Parallel()
		status, _ := postJSON(t, app, "/courses/1/variations", `{"variacao":""}`)
		assert.Equal(t, fiber.StatusBadRequest, status)
	})
}
