// Package tasks defines the structure for tasks that are sent to Kafka.
package tasks

import "time"

// EnquiryTask is a contact form submission waiting to be archived.
type EnquiryTask struct {
	EnquiryID      string    `json:"enquiry_id"`
	Name           string    `json:"user_name"`
	Email          string    `json:"user_email"`
	CourseInterest string    `json:"course_interest"`
	Message        string    `json:"message"`
	Relay          string    `json:"relay"`
	SubmittedAt    time.Time `json:"submitted_at"`
}
