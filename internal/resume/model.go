package resume

import "resume-site/internal/users"

type SocialLink struct {
	ID           int64  `json:"id"`
	Platform     string `json:"platform"`
	Icon         string `json:"icon"`
	URL          string `json:"url"`
	DisplayOrder int    `json:"displayOrder"`
}

type Education struct {
	ID           int64  `json:"id"`
	Institution  string `json:"institution"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"fieldOfStudy"`
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
	Description  string `json:"description"`
	DisplayOrder int    `json:"displayOrder"`
}

// Experience is one job. Keywords and Traits are filled in by the assembler.
type Experience struct {
	ID           int64    `json:"id"`
	Company      string   `json:"company"`
	Position     string   `json:"position"`
	Location     string   `json:"location"`
	StartDate    string   `json:"startDate"`
	EndDate      string   `json:"endDate"`
	Description  string   `json:"description"`
	DisplayOrder int      `json:"displayOrder"`
	Keywords     []string `json:"keywords"`
	Traits       []Trait  `json:"traits"`
}

// Trait is an icon and label pair shown next to an experience.
type Trait struct {
	Icon  string `json:"icon"`
	Label string `json:"label"`
}

type Achievement struct {
	ID           int64  `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	DisplayOrder int    `json:"displayOrder"`
}

// TechCategory groups technology names. Technologies holds unique names in
// first-seen order.
type TechCategory struct {
	ID           int64    `json:"id"`
	Name         string   `json:"name"`
	DisplayOrder int      `json:"displayOrder"`
	Technologies []string `json:"technologies"`
}

// View is the assembled resume handed to the rendering layer.
type View struct {
	User           users.User     `json:"user"`
	SocialLinks    []SocialLink   `json:"socialLinks"`
	Educations     []Education    `json:"educations"`
	Experiences    []Experience   `json:"experiences"`
	GlobalTraits   []Trait        `json:"globalTraits"`
	Achievements   []Achievement  `json:"achievements"`
	TechCategories []TechCategory `json:"techCategories"`
	HasResumeData  bool           `json:"hasResumeData"`
	IsOwner        bool           `json:"isOwner"`
	// Diagnostics maps collection name to raw storage error text. Only filled
	// in diagnostic mode.
	Diagnostics map[string]string `json:"diagnostics,omitempty"`
}

// hasResumeData is true when the profile headline or any section has content.
func (v View) hasResumeData() bool {
	return v.User.FullName != "" ||
		v.User.Title != "" ||
		len(v.Educations) > 0 ||
		len(v.Experiences) > 0 ||
		len(v.Achievements) > 0 ||
		len(v.TechCategories) > 0
}
