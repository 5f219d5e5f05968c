package response

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculatePagination(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		page      int
		limit     int
		total     int64
		wantPage  int
		wantPages int
		wantLimit int
	}{
		{
			name:      "exact division",
			page:      2,
			limit:     10,
			total:     100,
			wantPage:  2,
			wantPages: 10,
			wantLimit: 10,
		},
		{
			name:      "partial last page rounds up",
			page:      1,
			limit:     10,
			total:     95,
			wantPage:  1,
			wantPages: 10,
			wantLimit: 10,
		},
		{
			name:      "zero total yields zero pages",
			page:      1,
			limit:     10,
			total:     0,
			wantPage:  1,
			wantPages: 0,
			wantLimit: 10,
		},
		{
			name:      "page below one is clamped",
			page:      0,
			limit:     10,
			total:     30,
			wantPage:  1,
			wantPages: 3,
			wantLimit: 10,
		},
		{
			name:      "limit below one falls back to default",
			page:      1,
			limit:     0,
			total:     30,
			wantPage:  1,
			wantPages: 3,
			wantLimit: 10,
		},
		{
			name:      "limit above maximum is clamped",
			page:      1,
			limit:     500,
			total:     300,
			wantPage:  1,
			wantPages: 3,
			wantLimit: 100,
		},
		{
			name:      "single item",
			page:      1,
			limit:     10,
			total:     1,
			wantPage:  1,
			wantPages: 1,
			wantLimit: 10,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			meta := CalculatePagination(tt.page, tt.limit, tt.total)

			assert.Equal(t, tt.wantPage, meta.CurrentPage)
			assert.Equal(t, tt.wantPages, meta.TotalPages)
			assert.Equal(t, tt.total, meta.TotalItems)
			assert.Equal(t, tt.wantLimit, meta.ItemsPerPage)
		})
	}
}
