package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitTags(t *testing.T) {
	tests := []struct {
		raw  string
		want []string
	}{
		{"", []string{}},
		{"rally", []string{"rally"}},
		{"rally,campaign", []string{"rally", "campaign"}},
		{" rally , campaign ", []string{"rally", "campaign"}},
		{"rally,,campaign,", []string{"rally", "campaign"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SplitTags(tt.raw), "raw=%q", tt.raw)
	}
}

func TestNormalizePage(t *testing.T) {
	page, limit := normalizePage(0, 0, 10)
	assert.Equal(t, 1, page)
	assert.Equal(t, 10, limit)

	page, limit = normalizePage(-3, -1, 20)
	assert.Equal(t, 1, page)
	assert.Equal(t, 20, limit)

	page, limit = normalizePage(4, 25, 10)
	assert.Equal(t, 4, page)
	assert.Equal(t, 25, limit)
}
