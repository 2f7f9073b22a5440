package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintCanonical(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{
			name:  "valid query",
			query: "?area=Saddar&sort=price_low_high",
			want:  []string{`"area": "Saddar"`, "valid: /?sort=price_low_high&area=Saddar"},
		},
		{
			name:  "defaults only",
			query: "",
			want:  []string{`"sort": "newest"`, "valid: /"},
		},
		{
			name:  "invalid values redirect",
			query: "sort=cheapest&roomType=male&minPrice=abc",
			want:  []string{"invalid search params: minPrice", "redirect: /?roomType=male"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			require.NoError(t, printCanonical(&buf, "/", tt.query))

			for _, w := range tt.want {
				assert.Contains(t, buf.String(), w)
			}
		})
	}
}

func TestPrintCanonical_BadQuery(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, printCanonical(&buf, "/", "a=%zz"))
}
