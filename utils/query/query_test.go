package query

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseForURL(t *testing.T, url string) ListParams {
	t.Helper()

	var params ListParams
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		params = ParseListParams(c)
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("GET", url, nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	return params
}

func TestParseListParams(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want ListParams
	}{
		{
			name: "defaults with no query string",
			url:  "/",
			want: ListParams{Page: 1, Limit: 10},
		},
		{
			name: "explicit page and limit",
			url:  "/?page=3&limit=25",
			want: ListParams{Page: 3, Limit: 25},
		},
		{
			name: "non-numeric values fall back to defaults",
			url:  "/?page=abc&limit=xyz",
			want: ListParams{Page: 1, Limit: 10},
		},
		{
			name: "negative page is clamped",
			url:  "/?page=-5",
			want: ListParams{Page: 1, Limit: 10},
		},
		{
			name: "limit above maximum is clamped",
			url:  "/?limit=1000",
			want: ListParams{Page: 1, Limit: 100},
		},
		{
			name: "search term is carried through",
			url:  "/?search=gopher",
			want: ListParams{Page: 1, Limit: 10, Search: "gopher"},
		},
		{
			name: "includeDeleted only accepts true",
			url:  "/?includeDeleted=true",
			want: ListParams{Page: 1, Limit: 10, IncludeDeleted: true},
		},
		{
			name: "includeDeleted ignores other values",
			url:  "/?includeDeleted=1",
			want: ListParams{Page: 1, Limit: 10},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got := parseForURL(t, tt.url)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOffset(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, ListParams{Page: 1, Limit: 10}.Offset())
	assert.Equal(t, 10, ListParams{Page: 2, Limit: 10}.Offset())
	assert.Equal(t, 50, ListParams{Page: 3, Limit: 25}.Offset())
}
