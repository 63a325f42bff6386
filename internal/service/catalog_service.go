package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/gosimple/slug"
	"golang.org/x/text/cases"

	"seyone-academy-go/internal/model"
	"seyone-academy-go/pkg/log"
)

var courseCatalog = []model.Course{
	{
		ID:          "basic-coding",
		Title:       "Basic Medical Coding Training",
		Description: "Foundation course covering medical terminology, anatomy, and introductory coding guidelines. Perfect for beginners.",
		Duration:    "3 Months",
		Level:       model.LevelBeginner,
		Modules:     []string{"Medical Terminology", "Anatomy & Physiology", "Introduction to ICD-10", "Introduction to CPT", "Healthcare Compliance"},
		Price:       "Contact for Price",
		Icon:        "fa-book-medical",
	},
	{
		ID:          "advance-coding",
		Title:       "Advance Medical Coding Training",
		Description: "Comprehensive training for inpatient and outpatient coding, including complex scenarios, specialties, and case studies.",
		Duration:    "6 Months",
		Level:       model.LevelAdvanced,
		Modules:     []string{"Advanced ICD-10-CM", "CPT Surgery Sections", "E/M Coding", "Compliance & Auditing", "Specialty Coding"},
		Price:       "Contact for Price",
		Icon:        "fa-user-md",
	},
	{
		ID:          "cpc-training",
		Title:       "CPC Training",
		Description: "Targeted preparation for the AAPC Certified Professional Coder (CPC) exam with intensive mock tests and exam strategies.",
		Duration:    "4 Months",
		Level:       model.LevelIntermediate,
		Modules:     []string{"Examination Guidelines", "Mock Exams", "Time Management", "Code Set Navigation", "Practice Questions"},
		Price:       "Contact for Price",
		Icon:        "fa-certificate",
	},
	{
		ID:          "crc-training",
		Title:       "CRC Training",
		Description: "Specialized training for the Certified Risk Adjustment Coder (CRC) credential, focusing on risk adjustment models.",
		Duration:    "3 Months",
		Level:       model.LevelAdvanced,
		Modules:     []string{"Risk Adjustment Models", "Hierarchical Condition Categories (HCC)", "Documentation Improvement", "Predictive Modeling"},
		Price:       "Contact for Price",
		Icon:        "fa-chart-line",
	},
}

// Catalog returns a copy of the static course catalogue in display order.
func Catalog() []model.Course {
	out := make([]model.Course, len(courseCatalog))
	for i, c := range courseCatalog {
		c.Modules = append([]string(nil), c.Modules...)
		out[i] = c
	}
	return out
}

// DefaultCourseQuery is the cleared filter state.
func DefaultCourseQuery() model.CourseQuery {
	return model.CourseQuery{Level: model.LevelAll}
}

// FilterCourses keeps the courses whose level matches q.Level (or q.Level is
// All) and whose title, description or a module contains q.Search, ignoring
// case. Order is preserved.
func FilterCourses(courses []model.Course, q model.CourseQuery) []model.Course {
	fold := cases.Fold()
	needle := fold.String(q.Search)
	contains := func(s string) bool {
		return strings.Contains(fold.String(s), needle)
	}

	out := make([]model.Course, 0, len(courses))
	for _, c := range courses {
		if q.Level != "" && q.Level != model.LevelAll && c.Level != q.Level {
			continue
		}
		if needle != "" && !contains(c.Title) && !contains(c.Description) && !containsAny(c.Modules, contains) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func containsAny(items []string, match func(string) bool) bool {
	for _, item := range items {
		if match(item) {
			return true
		}
	}
	return false
}

// CourseSearcher is an external search backend returning matching course ids.
type CourseSearcher interface {
	SearchCourseIDs(ctx context.Context, q model.CourseQuery) ([]string, error)
}

// CatalogService answers the courses page.
type CatalogService interface {
	Courses() []model.Course
	Levels() []model.CourseLevel
	// Find looks a course up by id or by the slug of its title.
	Find(id string) (model.Course, bool)
	Search(ctx context.Context, q model.CourseQuery) model.CourseSearchResult
	Titles() []string
}

type catalogService struct {
	courses  []model.Course
	searcher CourseSearcher
}

// NewCatalogService creates the catalogue. searcher may be nil; when set its
// hits are reordered into catalogue order and any failure falls back to
// the in-memory filter.
func NewCatalogService(searcher CourseSearcher) CatalogService {
	return &catalogService{courses: Catalog(), searcher: searcher}
}

func (s *catalogService) Courses() []model.Course {
	return Catalog()
}

func (s *catalogService) Levels() []model.CourseLevel {
	return append([]model.CourseLevel(nil), model.CourseLevels...)
}

func (s *catalogService) Find(id string) (model.Course, bool) {
	for _, c := range s.courses {
		if c.ID == id || slug.Make(c.Title) == id {
			return c, true
		}
	}
	return model.Course{}, false
}

func (s *catalogService) Titles() []string {
	out := make([]string, 0, len(s.courses))
	for _, c := range s.courses {
		out = append(out, c.Title)
	}
	return out
}

func (s *catalogService) Search(ctx context.Context, q model.CourseQuery) model.CourseSearchResult {
	if q.Level == "" {
		q.Level = model.LevelAll
	}

	var courses []model.Course
	if s.searcher != nil {
		ids, err := s.searcher.SearchCourseIDs(ctx, q)
		if err != nil {
			log.Warnw("course search backend failed, filtering in memory", "error", err)
		} else {
			courses = s.inCatalogOrder(ids)
		}
	}
	if courses == nil {
		courses = FilterCourses(s.courses, q)
	}

	return model.CourseSearchResult{
		Filter:  q,
		Courses: courses,
		Count:   len(courses),
		Label:   countLabel(len(courses)),
	}
}

func (s *catalogService) inCatalogOrder(ids []string) []model.Course {
	hit := make(map[string]bool, len(ids))
	for _, id := range ids {
		hit[id] = true
	}
	out := make([]model.Course, 0, len(ids))
	for _, c := range s.courses {
		if hit[c.ID] {
			out = append(out, c)
		}
	}
	return out
}

func countLabel(n int) string {
	if n == 1 {
		return "Showing 1 Course"
	}
	return fmt.Sprintf("Showing %d Courses", n)
}
