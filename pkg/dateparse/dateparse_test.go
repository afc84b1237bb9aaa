package dateparse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	tests := []struct {
		name string
		in   string
		want time.Time
	}{
		{name: "iso", in: "2025-11-03", want: time.Date(2025, 11, 3, 0, 0, 0, 0, loc)},
		{name: "rfc3339 converted to local day", in: "2025-11-04T01:30:00Z", want: time.Date(2025, 11, 3, 0, 0, 0, 0, loc)},
		{name: "portuguese long form", in: "3 de Novembro de 2025", want: time.Date(2025, 11, 3, 0, 0, 0, 0, loc)},
		{name: "without de", in: "3 novembro 2025", want: time.Date(2025, 11, 3, 0, 0, 0, 0, loc)},
		{name: "accented month", in: "15 de Março de 2026", want: time.Date(2026, 3, 15, 0, 0, 0, 0, loc)},
		{name: "unaccented month", in: "15 de marco de 2026", want: time.Date(2026, 3, 15, 0, 0, 0, 0, loc)},
		{name: "comma separated", in: "1 de dezembro, 2025", want: time.Date(2025, 12, 1, 0, 0, 0, 0, loc)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.in, loc)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "want %s got %s", tt.want, got)
			assert.Equal(t, loc, got.Location())
		})
	}
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{name: "empty", in: "   "},
		{name: "four digit day read as second year", in: "2025 de Novembro de 2025"},
		{name: "two days", in: "3 4 de Novembro de 2025"},
		{name: "unknown word", in: "3 de Brumaire de 2025"},
		{name: "missing year", in: "3 de Novembro"},
		{name: "day out of range", in: "31 de fevereiro de 2025"},
		{name: "iso out of range", in: "2025-02-31"},
		{name: "english", in: "November 3, 2025"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.in, time.UTC)
			assert.ErrorIs(t, err, ErrInvalidDate)
		})
	}
}
