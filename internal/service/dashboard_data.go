package service

import "seyone-academy-go/internal/model"

// CertificateIssueDate is printed on every completion certificate.
const CertificateIssueDate = "Oct 12, 2023"

var progressData = []model.StudentProgress{
	{CourseID: "cpc-01", CourseName: "Certified Professional Coder (CPC)", Progress: 65, LastAccessed: "2 hours ago", NextLesson: "Module 4: CPT Surgery Section"},
	{CourseID: "med-term-01", CourseName: "Medical Terminology Foundations", Progress: 100, LastAccessed: "1 month ago", NextLesson: "Completed"},
	{CourseID: "icd-01", CourseName: "ICD-10-CM Masterclass", Progress: 20, LastAccessed: "Yesterday", NextLesson: "Lesson 3: Neoplasms Coding"},
}

var deadlines = []model.Deadline{
	{ID: "d1", Title: "Anatomy Final Quiz", Date: "Oct 24, 2023", Type: model.DeadlineQuiz, Priority: model.PriorityHigh},
	{ID: "d2", Title: "ICD-10 Case Study Submission", Date: "Oct 28, 2023", Type: model.DeadlineAssignment, Priority: model.PriorityMedium},
	{ID: "d3", Title: "Coding Standards Seminar", Date: "Oct 15, 2023", Type: model.DeadlineAssignment, Priority: model.PriorityLow},
}

var initialNotifications = []model.Notification{
	{ID: "n1", Title: "Upcoming Deadline", Message: "Your Anatomy Final Quiz is due in 48 hours. Don't forget to review Module 3.", Type: model.NotificationDeadline, Timestamp: "1 hour ago"},
	{ID: "n2", Title: "New Course Announcement", Message: `Enrollment for the "Risk Adjustment Mastery" course is now open for CPC graduates.`, Type: model.NotificationAnnouncement, Timestamp: "4 hours ago"},
	{ID: "n3", Title: "Message from Dr. Chen", Message: "Great job on the latest case study! Your attention to detail in ICD-10-CM coding is improving.", Type: model.NotificationMessage, Timestamp: "Yesterday", IsRead: true},
}

var presetAvatars = []string{
	"https://i.pravatar.cc/150?u=student1",
	"https://i.pravatar.cc/150?u=student2",
	"https://i.pravatar.cc/150?u=student3",
	"https://i.pravatar.cc/150?u=student4",
}

var instructors = []model.Instructor{
	{Name: "Dr. Sarah Chen", Specialty: "CPC Lead Mentor", Image: "https://i.pravatar.cc/150?u=dr-chen", Status: "Online"},
	{Name: "Prof. Marcus Thompson", Specialty: "CCS & Inpatient", Image: "https://i.pravatar.cc/150?u=prof-thompson", Status: "Busy"},
	{Name: "Elena Rodriguez", Specialty: "Auditing Director", Image: "https://i.pravatar.cc/150?u=elena-r", Status: "Online"},
}

var mockReplies = []string{
	"I've reviewed your latest submission. Your sequencing of the CPT codes for the surgery section was spot on!",
	"Are you free for a quick Zoom call tomorrow? I want to clarify the HCC guidelines for your project.",
	"Check out the new resource I uploaded to Module 4. It specifically covers the neoplasm table updates.",
	"Great question regarding Modifier 25. Usually, it's used when a separate evaluation is performed on the same day as a procedure.",
}
