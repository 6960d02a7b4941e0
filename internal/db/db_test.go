package db

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/schema"
)

func TestModels_TableNames(t *testing.T) {
	cache := &sync.Map{}
	var tables []string
	for _, m := range Models() {
		s, err := schema.Parse(m, cache, schema.NamingStrategy{})
		require.NoError(t, err)
		tables = append(tables, s.Table)
	}

	assert.Equal(t, []string{
		"users",
		"highlights",
		"tours",
		"highlight_suggesters",
		"tour_highlights",
		"feedbacks",
	}, tables)
}

func TestModels_FeedbackCascades(t *testing.T) {
	s, err := schema.Parse(Models()[5], &sync.Map{}, schema.NamingStrategy{})
	require.NoError(t, err)

	rel, ok := s.Relationships.Relations["User"]
	require.True(t, ok)
	assert.Equal(t, schema.BelongsTo, rel.Type)

	constraint := rel.ParseConstraint()
	require.NotNil(t, constraint)
	assert.Equal(t, "CASCADE", constraint.OnDelete)
}
