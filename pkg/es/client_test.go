package es

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"seyone-academy-go/internal/model"
)

func TestBuildSearchQuery(t *testing.T) {
	tests := []struct {
		name       string
		query      model.CourseQuery
		wantFilter bool
		wantShould bool
	}{
		{name: "all no search", query: model.CourseQuery{Level: model.LevelAll}},
		{name: "level only", query: model.CourseQuery{Level: model.LevelBeginner}, wantFilter: true},
		{name: "search only", query: model.CourseQuery{Level: model.LevelAll, Search: "HCC"}, wantShould: true},
		{name: "both", query: model.CourseQuery{Level: model.LevelAdvanced, Search: "audit"}, wantFilter: true, wantShould: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := buildSearchQuery(tt.query)
			boolQuery := q["query"].(map[string]interface{})["bool"].(map[string]interface{})
			_, hasFilter := boolQuery["filter"]
			_, hasShould := boolQuery["should"]
			assert.Equal(t, tt.wantFilter, hasFilter)
			assert.Equal(t, tt.wantShould, hasShould)
			if tt.wantShould {
				assert.Equal(t, 1, boolQuery["minimum_should_match"])
			}
		})
	}
}

func TestEscapeWildcard(t *testing.T) {
	assert.Equal(t, `E/M`, escapeWildcard("E/M"))
	assert.Equal(t, `a\*b\?c\\`, escapeWildcard(`a*b?c\`))
}
