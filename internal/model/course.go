package model

import "strings"

// CourseLevel is the difficulty of a course. LevelAll is only valid as a filter.
type CourseLevel string

const (
	LevelAll          CourseLevel = "All"
	LevelBeginner     CourseLevel = "Beginner"
	LevelIntermediate CourseLevel = "Intermediate"
	LevelAdvanced     CourseLevel = "Advanced"
)

// CourseLevels lists the filter options in display order.
var CourseLevels = []CourseLevel{LevelAll, LevelBeginner, LevelIntermediate, LevelAdvanced}

// ParseCourseLevel matches s case-insensitively against CourseLevels.
// An empty string means LevelAll.
func ParseCourseLevel(s string) (CourseLevel, bool) {
	if s == "" {
		return LevelAll, true
	}
	for _, lvl := range CourseLevels {
		if strings.EqualFold(string(lvl), s) {
			return lvl, true
		}
	}
	return "", false
}

// Course is an immutable catalogue entry.
type Course struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Duration    string      `json:"duration"`
	Level       CourseLevel `json:"level"`
	Modules     []string    `json:"modules"`
	Price       string      `json:"price"`
	Icon        string      `json:"icon"`
}

// CourseQuery holds the courses page filter state.
type CourseQuery struct {
	Level  CourseLevel `json:"level"`
	Search string      `json:"search"`
}

// CourseSearchResult is the courses page payload.
type CourseSearchResult struct {
	Filter  CourseQuery `json:"filter"`
	Courses []Course    `json:"courses"`
	Count   int         `json:"count"`
	Label   string      `json:"label"`
}
