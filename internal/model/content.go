package model

type Feature struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type Testimonial struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Role        string `json:"role"`
	Achievement string `json:"achievement"`
	Quote       string `json:"quote"`
	Color       string `json:"color"`
}

type TeamMember struct {
	Name  string `json:"name"`
	Role  string `json:"role"`
	Image string `json:"img"`
}

type NavLink struct {
	Name string `json:"name"`
	Path string `json:"path"`
	Icon string `json:"icon"`
}

type HomeContent struct {
	Features     []Feature     `json:"features"`
	Testimonials []Testimonial `json:"testimonials"`
}

type AboutContent struct {
	Team []TeamMember `json:"team"`
}

type NavigationContent struct {
	Links  []NavLink `json:"links"`
	Routes []string  `json:"routes"`
}
