package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seyone-academy-go/internal/model"
	"seyone-academy-go/pkg/tasks"
)

type recordingRepo struct {
	err  error
	rows []model.ContactEnquiry
}

func (r *recordingRepo) Create(_ context.Context, e *model.ContactEnquiry) error {
	if r.err != nil {
		return r.err
	}
	r.rows = append(r.rows, *e)
	return nil
}

func (r *recordingRepo) FindWithPagination(context.Context, int, int) ([]model.ContactEnquiry, int64, error) {
	return r.rows, int64(len(r.rows)), nil
}

func TestEnquiryProcessor_Process(t *testing.T) {
	repo := &recordingRepo{}
	p := NewEnquiryProcessor(repo)
	at := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	err := p.Process(context.Background(), tasks.EnquiryTask{
		EnquiryID:      "e-1",
		Name:           "Priya",
		Email:          "priya@example.com",
		CourseInterest: "CPC Training",
		Message:        "Batch timings?",
		Relay:          "console",
		SubmittedAt:    at,
	})
	require.NoError(t, err)
	require.Len(t, repo.rows, 1)
	assert.Equal(t, "e-1", repo.rows[0].EnquiryID)
	assert.Equal(t, at, repo.rows[0].SubmittedAt)
}

func TestEnquiryProcessor_Errors(t *testing.T) {
	p := NewEnquiryProcessor(&recordingRepo{})
	assert.Error(t, p.Process(context.Background(), tasks.EnquiryTask{}))

	dbErr := errors.New("connection refused")
	p = NewEnquiryProcessor(&recordingRepo{err: dbErr})
	err := p.Process(context.Background(), tasks.EnquiryTask{EnquiryID: "e-2"})
	assert.ErrorIs(t, err, dbErr)
}
