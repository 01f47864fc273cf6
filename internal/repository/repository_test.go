package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total int64
		limit int
		want  int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{15, 10, 2},
		{20, 10, 2},
		{21, 10, 3},
		{5, 0, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TotalPages(tt.total, tt.limit), "total=%d limit=%d", tt.total, tt.limit)
	}
}

func TestNewsFilterQuery(t *testing.T) {
	assert.Empty(t, NewsFilter{}.query())

	tr := true
	q := NewsFilter{Status: "published", Category: "event", Featured: &tr}.query()
	assert.Len(t, q, 3)
	assert.Equal(t, true, q["featured"])
}

func TestObjectIDMalformed(t *testing.T) {
	_, err := objectID("definitely-not-an-object-id")
	assert.ErrorIs(t, err, ErrNotFound)
}
