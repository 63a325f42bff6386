package model

import "time"

// OtherCourseInterest is the contact form option for enquiries not tied to a course.
const OtherCourseInterest = "Other / Inquiry"

// Enquiry is a contact form submission.
type Enquiry struct {
	Name           string `json:"user_name" binding:"notblank,max=100"`
	Email          string `json:"user_email" binding:"required,email,max=255"`
	CourseInterest string `json:"course_interest" binding:"required"`
	Message        string `json:"message" binding:"notblank,max=5000"`
}

// ContactEnquiry maps to the contact_enquiries table.
type ContactEnquiry struct {
	ID             uint      `gorm:"primaryKey;autoIncrement"`
	EnquiryID      string    `gorm:"type:varchar(36);uniqueIndex;not null"`
	Name           string    `gorm:"type:varchar(100);not null"`
	Email          string    `gorm:"type:varchar(255);not null;index"`
	CourseInterest string    `gorm:"type:varchar(255);not null"`
	Message        string    `gorm:"type:text;not null"`
	SubmittedAt    time.Time `gorm:"not null"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
}

// TableName sets the table name for ContactEnquiry.
func (ContactEnquiry) TableName() string {
	return "contact_enquiries"
}

// ContactEnquiryView is the admin listing view of an archived enquiry.
type ContactEnquiryView struct {
	EnquiryID      string      `json:"enquiryId"`
	Name           string      `json:"name"`
	Email          string      `json:"email"`
	CourseInterest string      `json:"courseInterest"`
	Message        string      `json:"message"`
	SubmittedAt    ArchiveTime `json:"submittedAt"`
}

// View converts e to its listing view.
func (e ContactEnquiry) View() ContactEnquiryView {
	return ContactEnquiryView{
		EnquiryID:      e.EnquiryID,
		Name:           e.Name,
		Email:          e.Email,
		CourseInterest: e.CourseInterest,
		Message:        e.Message,
		SubmittedAt:    ArchiveTime(e.SubmittedAt),
	}
}

// ContactInfo is the static contact page data.
type ContactInfo struct {
	Phone         string   `json:"phone"`
	PhoneHours    string   `json:"phoneHours"`
	Email         string   `json:"email"`
	Address       string   `json:"address"`
	MapsURL       string   `json:"mapsUrl"`
	CourseOptions []string `json:"courseOptions"`
}
