package storage

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStreamSize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		size int64
		want int
	}{
		{name: "regular file", size: 4096, want: 4096},
		{name: "unknown size", size: 0, want: -1},
		{name: "negative size", size: -1, want: -1},
		{name: "largest sized stream", size: math.MaxInt32, want: math.MaxInt32},
		{name: "over 2 GiB streams chunked", size: math.MaxInt32 + 1, want: -1},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, streamSize(tt.size))
		})
	}
}
