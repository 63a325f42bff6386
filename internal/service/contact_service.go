package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"seyone-academy-go/internal/model"
	"seyone-academy-go/pkg/log"
	"seyone-academy-go/pkg/mail"
	"seyone-academy-go/pkg/tasks"
	"seyone-academy-go/pkg/validate"
)

const (
	MsgEnquirySent    = "Thank you for reaching out to Seyone Academy. One of our career advisors will review your inquiry and contact you within 24 hours."
	MsgEnquiryNotSent = "Failed to send your inquiry. Please try again or contact us via phone."
)

var (
	ErrInvalidEnquiry = errors.New("invalid enquiry")
	// ErrEnquiryNotSent means the relay failed. The user may resubmit.
	ErrEnquiryNotSent = errors.New(MsgEnquiryNotSent)
)

var contactInfo = model.ContactInfo{
	Phone:      "+91 86084 17396",
	PhoneHours: "Mon-Sat: 9am - 7pm",
	Email:      "seyonecodingtech@gmail.com",
	Address:    "622/2B1, Muthu Nagar, KPM Opp, Eachanari, Coimbatore, Tamil Nadu",
	MapsURL:    "https://maps.app.goo.gl/gK8Mbww8KQfa2wDH8?g_st=aw",
}

// EnquiryPublisher hands relayed enquiries to the archive queue.
type EnquiryPublisher interface {
	ProduceEnquiryTask(ctx context.Context, task tasks.EnquiryTask) error
}

// ContactService handles the contact form.
type ContactService interface {
	// Submit validates e and relays it once. On success it returns the
	// confirmation text shown to the visitor.
	Submit(ctx context.Context, e model.Enquiry) (string, error)
	Info() model.ContactInfo
}

type contactService struct {
	relay     mail.Relay
	catalog   CatalogService
	publisher EnquiryPublisher
}

// NewContactService creates the contact form service. publisher may be nil
// when the archive queue is disabled.
func NewContactService(relay mail.Relay, catalog CatalogService, publisher EnquiryPublisher) ContactService {
	return &contactService{relay: relay, catalog: catalog, publisher: publisher}
}

func (s *contactService) courseOptions() []string {
	return append(s.catalog.Titles(), model.OtherCourseInterest)
}

func (s *contactService) Info() model.ContactInfo {
	info := contactInfo
	info.CourseOptions = s.courseOptions()
	return info
}

func (s *contactService) Submit(ctx context.Context, e model.Enquiry) (string, error) {
	e.Name = strings.TrimSpace(e.Name)
	e.Email = strings.TrimSpace(e.Email)
	e.CourseInterest = strings.TrimSpace(e.CourseInterest)
	e.Message = strings.TrimSpace(e.Message)

	if err := validate.Struct(e); err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidEnquiry, validationMessage(err))
	}
	if !slices.Contains(s.courseOptions(), e.CourseInterest) {
		return "", fmt.Errorf("%w: unknown course interest %q", ErrInvalidEnquiry, e.CourseInterest)
	}

	if err := s.relay.Send(ctx, e); err != nil {
		if errors.Is(err, mail.ErrRelayNotConfigured) {
			log.Errorw("mail relay is not configured", "relay", s.relay.Name(), "error", err)
		} else {
			log.Errorw("failed to relay enquiry", "relay", s.relay.Name(), "email", e.Email, "error", err)
		}
		return "", ErrEnquiryNotSent
	}
	log.Infow("enquiry relayed", "relay", s.relay.Name(), "email", e.Email, "course", e.CourseInterest)

	s.archive(ctx, e)
	return MsgEnquirySent, nil
}

// archive publishes e for the archive consumer. Failures are only logged.
func (s *contactService) archive(ctx context.Context, e model.Enquiry) {
	if s.publisher == nil {
		return
	}
	task := tasks.EnquiryTask{
		EnquiryID:      uuid.NewString(),
		Name:           e.Name,
		Email:          e.Email,
		CourseInterest: e.CourseInterest,
		Message:        e.Message,
		Relay:          s.relay.Name(),
		SubmittedAt:    time.Now(),
	}
	if err := s.publisher.ProduceEnquiryTask(ctx, task); err != nil {
		log.Warnw("failed to publish enquiry task", "enquiryId", task.EnquiryID, "error", err)
	}
}
