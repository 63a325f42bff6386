package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"seyone-academy-go/internal/model"
)

// EnquiryRepository archives contact form submissions.
type EnquiryRepository interface {
	// Create inserts e. Re-inserting the same EnquiryID is a no-op so
	// redelivered Kafka messages do not duplicate rows.
	Create(ctx context.Context, e *model.ContactEnquiry) error
	FindWithPagination(ctx context.Context, offset, limit int) ([]model.ContactEnquiry, int64, error)
}

type enquiryRepository struct {
	db *gorm.DB
}

func NewEnquiryRepository(db *gorm.DB) EnquiryRepository {
	return &enquiryRepository{db: db}
}

func (r *enquiryRepository) Create(ctx context.Context, e *model.ContactEnquiry) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "enquiry_id"}}, DoNothing: true}).
		Create(e).Error
}

// FindWithPagination returns enquiries newest first plus the total row count.
func (r *enquiryRepository) FindWithPagination(ctx context.Context, offset, limit int) ([]model.ContactEnquiry, int64, error) {
	var enquiries []model.ContactEnquiry
	var total int64

	db := r.db.WithContext(ctx).Model(&model.ContactEnquiry{})
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := db.Order("submitted_at DESC").Offset(offset).Limit(limit).Find(&enquiries).Error
	return enquiries, total, err
}
