// Package pipeline archives relayed contact enquiries.
package pipeline

import (
	"context"
	"errors"
	"fmt"

	"seyone-academy-go/internal/model"
	"seyone-academy-go/internal/repository"
	"seyone-academy-go/pkg/log"
	"seyone-academy-go/pkg/tasks"
)

// EnquiryProcessor writes enquiry tasks consumed from Kafka to the archive table.
type EnquiryProcessor struct {
	enquiryRepo repository.EnquiryRepository
}

// NewEnquiryProcessor creates a new EnquiryProcessor.
func NewEnquiryProcessor(enquiryRepo repository.EnquiryRepository) *EnquiryProcessor {
	return &EnquiryProcessor{enquiryRepo: enquiryRepo}
}

// Process archives one task. Tasks already archived are skipped by the repository.
func (p *EnquiryProcessor) Process(ctx context.Context, task tasks.EnquiryTask) error {
	log.Infof("[Processor] archiving enquiry, EnquiryID: %s, Relay: %s", task.EnquiryID, task.Relay)

	if task.EnquiryID == "" {
		return errors.New("enquiry task has no id")
	}
	if task.SubmittedAt.IsZero() {
		log.Warnf("[Processor] enquiry %s has no submission time", task.EnquiryID)
	}

	row := &model.ContactEnquiry{
		EnquiryID:      task.EnquiryID,
		Name:           task.Name,
		Email:          task.Email,
		CourseInterest: task.CourseInterest,
		Message:        task.Message,
		SubmittedAt:    task.SubmittedAt,
	}
	if err := p.enquiryRepo.Create(ctx, row); err != nil {
		log.Errorf("[Processor] failed to archive enquiry %s: %v", task.EnquiryID, err)
		return fmt.Errorf("failed to archive enquiry: %w", err)
	}

	log.Infof("[Processor] enquiry archived, EnquiryID: %s", task.EnquiryID)
	return nil
}
