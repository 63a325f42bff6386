package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"seyone-academy-go/internal/model"
)

func courseIDs(courses []model.Course) []string {
	ids := make([]string, 0, len(courses))
	for _, c := range courses {
		ids = append(ids, c.ID)
	}
	return ids
}

func TestFilterCourses(t *testing.T) {
	tests := []struct {
		name  string
		query model.CourseQuery
		want  []string
	}{
		{name: "cleared", query: DefaultCourseQuery(), want: []string{"basic-coding", "advance-coding", "cpc-training", "crc-training"}},
		{name: "HCC in modules", query: model.CourseQuery{Level: model.LevelAll, Search: "HCC"}, want: []string{"crc-training"}},
		{name: "beginner", query: model.CourseQuery{Level: model.LevelBeginner}, want: []string{"basic-coding"}},
		{name: "advanced keeps order", query: model.CourseQuery{Level: model.LevelAdvanced}, want: []string{"advance-coding", "crc-training"}},
		{name: "case insensitive", query: model.CourseQuery{Level: model.LevelAll, Search: "mock EXAMS"}, want: []string{"cpc-training"}},
		{name: "description match", query: model.CourseQuery{Level: model.LevelAll, Search: "inpatient"}, want: []string{"advance-coding"}},
		{name: "level and search", query: model.CourseQuery{Level: model.LevelBeginner, Search: "HCC"}, want: []string{}},
		{name: "empty level means all", query: model.CourseQuery{Search: "training"}, want: []string{"basic-coding", "advance-coding", "cpc-training", "crc-training"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterCourses(Catalog(), tt.query)
			assert.Equal(t, tt.want, courseIDs(got))

			again := FilterCourses(got, tt.query)
			assert.Equal(t, got, again)
		})
	}
}

type fakeSearcher struct {
	ids []string
	err error
}

func (f fakeSearcher) SearchCourseIDs(context.Context, model.CourseQuery) ([]string, error) {
	return f.ids, f.err
}

func TestCatalogService_Search(t *testing.T) {
	ctx := context.Background()
	q := model.CourseQuery{Level: model.LevelAll, Search: "HCC"}

	tests := []struct {
		name     string
		searcher CourseSearcher
		query    model.CourseQuery
		want     []string
		label    string
	}{
		{name: "in memory", query: q, want: []string{"crc-training"}, label: "Showing 1 Course"},
		{name: "backend reordered", searcher: fakeSearcher{ids: []string{"crc-training", "basic-coding"}}, query: q, want: []string{"basic-coding", "crc-training"}, label: "Showing 2 Courses"},
		{name: "backend failure falls back", searcher: fakeSearcher{err: errors.New("es down")}, query: q, want: []string{"crc-training"}, label: "Showing 1 Course"},
		{name: "no matches", query: model.CourseQuery{Search: "nothing like this"}, want: []string{}, label: "Showing 0 Courses"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := NewCatalogService(tt.searcher).Search(ctx, tt.query)
			assert.Equal(t, tt.want, courseIDs(res.Courses))
			assert.Equal(t, len(tt.want), res.Count)
			assert.Equal(t, tt.label, res.Label)
			assert.Equal(t, model.LevelAll, res.Filter.Level)
		})
	}
}

func TestCatalogService_Find(t *testing.T) {
	svc := NewCatalogService(nil)

	c, ok := svc.Find("cpc-training")
	assert.True(t, ok)
	assert.Equal(t, "CPC Training", c.Title)

	c, ok = svc.Find("basic-medical-coding-training")
	assert.True(t, ok)
	assert.Equal(t, "basic-coding", c.ID)

	_, ok = svc.Find("nope")
	assert.False(t, ok)
}

func TestCatalog_ReturnsCopy(t *testing.T) {
	a := Catalog()
	a[0].Modules[0] = "changed"
	assert.Equal(t, "Medical Terminology", Catalog()[0].Modules[0])
}
