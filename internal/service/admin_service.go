package service

import (
	"context"
	"errors"

	"seyone-academy-go/internal/model"
	"seyone-academy-go/internal/repository"
)

// ErrArchiveDisabled is returned when the enquiry archive database is not configured.
var ErrArchiveDisabled = errors.New("enquiry archive is disabled")

// EnquiryListResponse is one page of archived enquiries.
type EnquiryListResponse struct {
	Content       []model.ContactEnquiryView `json:"content"`
	TotalElements int64                      `json:"totalElements"`
	TotalPages    int                        `json:"totalPages"`
	Size          int                        `json:"size"`
	Number        int                        `json:"number"`
}

// AdvisorStats counts live chat widget sessions per state.
type AdvisorStats struct {
	Total   int                        `json:"total"`
	ByState map[model.AdvisorState]int `json:"byState"`
}

// AdminService answers the operator endpoints.
type AdminService interface {
	ListUsers(ctx context.Context) ([]model.PublicUser, error)
	ListEnquiries(ctx context.Context, page, size int) (*EnquiryListResponse, error)
	AdvisorStats() AdvisorStats
}

type adminService struct {
	users       UserService
	enquiryRepo repository.EnquiryRepository
	advisor     AdvisorService
}

// NewAdminService creates the admin service. enquiryRepo is nil when MySQL is disabled.
func NewAdminService(users UserService, enquiryRepo repository.EnquiryRepository, advisor AdvisorService) AdminService {
	return &adminService{users: users, enquiryRepo: enquiryRepo, advisor: advisor}
}

func (s *adminService) ListUsers(ctx context.Context) ([]model.PublicUser, error) {
	return s.users.ListUsers(ctx)
}

// ListEnquiries returns a page of archived enquiries, newest first. page is 1-based.
func (s *adminService) ListEnquiries(ctx context.Context, page, size int) (*EnquiryListResponse, error) {
	if s.enquiryRepo == nil {
		return nil, ErrArchiveDisabled
	}
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 20
	}
	offset := (page - 1) * size
	enquiries, total, err := s.enquiryRepo.FindWithPagination(ctx, offset, size)
	if err != nil {
		return nil, err
	}

	views := make([]model.ContactEnquiryView, 0, len(enquiries))
	for _, e := range enquiries {
		views = append(views, e.View())
	}

	totalPages := 0
	if total > 0 {
		totalPages = (int(total) + size - 1) / size
	}
	return &EnquiryListResponse{
		Content:       views,
		TotalElements: total,
		TotalPages:    totalPages,
		Size:          size,
		Number:        page,
	}, nil
}

func (s *adminService) AdvisorStats() AdvisorStats {
	byState := s.advisor.Stats()
	total := 0
	for _, n := range byState {
		total += n
	}
	return AdvisorStats{Total: total, ByState: byState}
}
