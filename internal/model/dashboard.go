package model

import "time"

// StudentProgress is one enrolled course on the dashboard.
type StudentProgress struct {
	CourseID     string `json:"courseId"`
	CourseName   string `json:"courseName"`
	Progress     int    `json:"progress"`
	LastAccessed string `json:"lastAccessed"`
	NextLesson   string `json:"nextLesson"`
}

// Completed reports whether the course is finished and a certificate can be issued.
func (p StudentProgress) Completed() bool {
	return p.Progress >= 100
}

type DeadlineType string

const (
	DeadlineExam       DeadlineType = "Exam"
	DeadlineAssignment DeadlineType = "Assignment"
	DeadlineQuiz       DeadlineType = "Quiz"
)

type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// DeadlineDateLayout is the layout of Deadline.Date, e.g. "Oct 24, 2023".
const DeadlineDateLayout = "Jan 02, 2006"

type Deadline struct {
	ID       string       `json:"id"`
	Title    string       `json:"title"`
	Date     string       `json:"date"`
	Type     DeadlineType `json:"type"`
	Priority Priority     `json:"priority"`
}

type NotificationType string

const (
	NotificationDeadline     NotificationType = "Deadline"
	NotificationAnnouncement NotificationType = "Announcement"
	NotificationMessage      NotificationType = "Message"
)

// Notification is a dashboard notification. IsRead is toggled in memory only.
type Notification struct {
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Type      NotificationType `json:"type"`
	Timestamp string           `json:"timestamp"`
	IsRead    bool             `json:"isRead"`
}

type Instructor struct {
	Name      string `json:"name"`
	Specialty string `json:"specialty"`
	Image     string `json:"img"`
	Status    string `json:"status"`
}

// CalendarCell is one slot of a month grid. Day is nil for the leading
// blanks before the first weekday of the month.
type CalendarCell struct {
	Day       *int       `json:"day"`
	Deadlines []Deadline `json:"deadlines,omitempty"`
}

type CalendarMonth struct {
	Year  int            `json:"year"`
	Month time.Month     `json:"month"`
	Label string         `json:"label"`
	Cells []CalendarCell `json:"cells"`
}

// Certificate is a course completion certificate. URL is set when the
// rendered document was uploaded to object storage, HTML otherwise.
type Certificate struct {
	StudentName string `json:"studentName"`
	CourseID    string `json:"courseId"`
	CourseName  string `json:"courseName"`
	Date        string `json:"date"`
	URL         string `json:"url,omitempty"`
	HTML        string `json:"html,omitempty"`
}

// DashboardView is the full dashboard payload for the logged-in student.
type DashboardView struct {
	StudentName    string            `json:"studentName"`
	AvatarURL      string            `json:"avatarUrl"`
	PresetAvatars  []string          `json:"presetAvatars"`
	Progress       []StudentProgress `json:"progress"`
	Deadlines      []Deadline        `json:"deadlines"`
	Notifications  []Notification    `json:"notifications"`
	UnreadCount    int               `json:"unreadCount"`
	MessageHistory []Notification    `json:"messageHistory"`
	Instructors    []Instructor      `json:"instructors"`
	Sending        bool              `json:"sending"`
}
