package service

import "seyone-academy-go/internal/model"

var homeFeatures = []model.Feature{
	{Title: "Expert Mentorship", Description: "Learn from instructors with decades of experience in clinical documentation and billing.", Icon: "fa-user-tie"},
	{Title: "SmartPath AI Support", Description: "Our proprietary AI assistant helps you navigate complex CPT and ICD-10 guidelines 24/7.", Icon: "fa-bolt"},
	{Title: "Career Placement", Description: "Extensive network of healthcare provider partners looking for Seyone-certified talent.", Icon: "fa-rocket"},
}

var testimonials = []model.Testimonial{
	{
		ID:          1,
		Name:        "Shanmuga Priya",
		Role:        "Experienced Professional | Non-Life Science",
		Achievement: "CPC – 76%",
		Quote:       "I am an experienced professional from a non–life science background. Seyone Coding Tech helped me understand medical coding concepts clearly from basics. The trainers were very supportive and exam-oriented. Because of their guidance, I successfully cleared CPC with 76%.",
		Color:       "bg-blue-500",
	},
	{
		ID:          2,
		Name:        "Manivasan",
		Role:        "Psychotherapy Student",
		Achievement: "CPC – 82%",
		Quote:       "I am an experienced psychotherapy student. The training at Seyone Coding Tech was excellent, with clear explanations and real-time examples. The CPC coaching was well structured, which helped me score 82%. Highly professional and knowledgeable trainers.",
		Color:       "bg-[#76BC21]",
	},
	{
		ID:          3,
		Name:        "Priyadharshini",
		Role:        "Fresher | Non-Life Science",
		Achievement: "CPC – 77%",
		Quote:       "I am a fresher from a non–life science background. Initially I was worried, but Seyone Coding Tech made learning medical coding very easy. The faculty explained everything patiently and guided me till exam completion. Happy to clear CPC with 77%.",
		Color:       "bg-purple-500",
	},
	{
		ID:          4,
		Name:        "Lakshmi",
		Role:        "Diploma Student",
		Achievement: "CPC – 76%",
		Quote:       "I am a diploma student and joined Seyone Coding Tech for CPC training. The teaching method was simple and effective. Regular practice and mock tests helped me gain confidence and clear CPC with 76%. Very good institute for medical coding.",
		Color:       "bg-orange-500",
	},
	{
		ID:          5,
		Name:        "Surya Prakash",
		Role:        "Fresher | Engineering Student",
		Achievement: "CPC – 83%",
		Quote:       "I am a fresher and engineering student. Seyone Coding Tech provided excellent medical coding training even for non-medical backgrounds. The trainers focus on guidelines and accuracy. With their support, I cleared CPC with 83%. Strongly recommended.",
		Color:       "bg-indigo-500",
	},
}

var team = []model.TeamMember{
	{Name: "Dr. Sarah Chen", Role: "Founder & Lead Mentor", Image: "https://picsum.photos/200/200?person1"},
	{Name: "Marcus Thompson", Role: "Head of Placement", Image: "https://picsum.photos/200/200?person2"},
	{Name: "Elena Rodriguez", Role: "Director of Curriculum", Image: "https://picsum.photos/200/200?person3"},
}

var navLinks = []model.NavLink{
	{Name: "Courses", Path: "/courses", Icon: "fa-book-open"},
	{Name: "Stories", Path: "/#success-stories", Icon: "fa-star"},
	{Name: "Dashboard", Path: "/dashboard", Icon: "fa-user-graduate"},
	{Name: "About", Path: "/about", Icon: "fa-users"},
	{Name: "Contact", Path: "/contact", Icon: "fa-paper-plane"},
}

// ClientRoutes are the hash routes handled in the browser.
var ClientRoutes = []string{"/", "/courses", "/about", "/contact", "/login", "/signup", "/dashboard"}

// ContentService serves the static page content.
type ContentService interface {
	Home() model.HomeContent
	About() model.AboutContent
	Navigation() model.NavigationContent
}

type contentService struct{}

func NewContentService() ContentService {
	return contentService{}
}

func (contentService) Home() model.HomeContent {
	return model.HomeContent{
		Features:     append([]model.Feature(nil), homeFeatures...),
		Testimonials: append([]model.Testimonial(nil), testimonials...),
	}
}

func (contentService) About() model.AboutContent {
	return model.AboutContent{Team: append([]model.TeamMember(nil), team...)}
}

func (contentService) Navigation() model.NavigationContent {
	return model.NavigationContent{
		Links:  append([]model.NavLink(nil), navLinks...),
		Routes: append([]string(nil), ClientRoutes...),
	}
}
