package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seyone-academy-go/internal/model"
	"seyone-academy-go/pkg/mail"
	"seyone-academy-go/pkg/tasks"
)

type fakeRelay struct {
	err  error
	sent []model.Enquiry
}

func (r *fakeRelay) Send(_ context.Context, e model.Enquiry) error {
	r.sent = append(r.sent, e)
	return r.err
}

func (r *fakeRelay) Name() string { return "fake" }

type fakePublisher struct {
	err   error
	tasks []tasks.EnquiryTask
}

func (p *fakePublisher) ProduceEnquiryTask(_ context.Context, task tasks.EnquiryTask) error {
	p.tasks = append(p.tasks, task)
	return p.err
}

func validEnquiry() model.Enquiry {
	return model.Enquiry{
		Name:           "Priya",
		Email:          "priya@example.com",
		CourseInterest: "CPC Training",
		Message:        "When does the next batch start?",
	}
}

func TestContactService_Submit(t *testing.T) {
	relay := &fakeRelay{}
	pub := &fakePublisher{}
	svc := NewContactService(relay, NewCatalogService(nil), pub)

	msg, err := svc.Submit(context.Background(), validEnquiry())
	require.NoError(t, err)
	assert.Equal(t, MsgEnquirySent, msg)
	require.Len(t, relay.sent, 1)

	require.Len(t, pub.tasks, 1)
	task := pub.tasks[0]
	assert.NotEmpty(t, task.EnquiryID)
	assert.Equal(t, "Priya", task.Name)
	assert.Equal(t, "CPC Training", task.CourseInterest)
	assert.Equal(t, "fake", task.Relay)
	assert.False(t, task.SubmittedAt.IsZero())
}

func TestContactService_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(e *model.Enquiry)
	}{
		{"blank name", func(e *model.Enquiry) { e.Name = "   " }},
		{"bad email", func(e *model.Enquiry) { e.Email = "not-an-email" }},
		{"missing email", func(e *model.Enquiry) { e.Email = "" }},
		{"unknown course", func(e *model.Enquiry) { e.CourseInterest = "Underwater Basket Weaving" }},
		{"blank message", func(e *model.Enquiry) { e.Message = "\n\t" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			relay := &fakeRelay{}
			svc := NewContactService(relay, NewCatalogService(nil), nil)
			e := validEnquiry()
			tt.mutate(&e)

			_, err := svc.Submit(context.Background(), e)
			assert.ErrorIs(t, err, ErrInvalidEnquiry)
			assert.Empty(t, relay.sent)
		})
	}
}

func TestContactService_OtherInterestAccepted(t *testing.T) {
	svc := NewContactService(&fakeRelay{}, NewCatalogService(nil), nil)
	e := validEnquiry()
	e.CourseInterest = model.OtherCourseInterest
	_, err := svc.Submit(context.Background(), e)
	assert.NoError(t, err)
}

func TestContactService_RelayFailure(t *testing.T) {
	for _, relayErr := range []error{errors.New("502 bad gateway"), fmt.Errorf("emailjs: %w", mail.ErrRelayNotConfigured)} {
		relay := &fakeRelay{err: relayErr}
		pub := &fakePublisher{}
		svc := NewContactService(relay, NewCatalogService(nil), pub)

		_, err := svc.Submit(context.Background(), validEnquiry())
		assert.ErrorIs(t, err, ErrEnquiryNotSent)
		assert.Equal(t, MsgEnquiryNotSent, err.Error())
		assert.Len(t, relay.sent, 1, "relay is attempted exactly once")
		assert.Empty(t, pub.tasks)
	}
}

func TestContactService_PublishFailureIsNotSurfaced(t *testing.T) {
	svc := NewContactService(&fakeRelay{}, NewCatalogService(nil), &fakePublisher{err: errors.New("broker down")})
	msg, err := svc.Submit(context.Background(), validEnquiry())
	require.NoError(t, err)
	assert.Equal(t, MsgEnquirySent, msg)
}

func TestContactService_Info(t *testing.T) {
	info := NewContactService(&fakeRelay{}, NewCatalogService(nil), nil).Info()
	assert.Equal(t, "+91 86084 17396", info.Phone)
	assert.Equal(t, "seyonecodingtech@gmail.com", info.Email)
	assert.Equal(t, []string{
		"Basic Medical Coding Training",
		"Advance Medical Coding Training",
		"CPC Training",
		"CRC Training",
		"Other / Inquiry",
	}, info.CourseOptions)
}
