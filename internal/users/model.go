package users

import "time"

// User is a row of the users table: identity, credentials and the flat profile
// fields edited through the profile form. Only public resume fields are
// serialised; the hash and bookkeeping timestamps stay server-side.
type User struct {
	ID           int64      `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	FullName     string     `json:"fullname"`
	Title        string     `json:"title"`
	Contact      string     `json:"contact"`
	Address      string     `json:"address"`
	Age          int        `json:"age,omitempty"`
	Summary      string     `json:"summary"`
	Skills       string     `json:"skills"`
	Education    string     `json:"education"`
	Experience   string     `json:"experience"`
	LinkedIn     string     `json:"linkedin"`
	GitHub       string     `json:"github"`
	Slug         string     `json:"slug,omitempty"`
	CreatedAt    time.Time  `json:"-"`
	UpdatedAt    time.Time  `json:"-"`
	LastLogin    *time.Time `json:"-"`
}

// Profile is the set of columns replaced by a profile edit. Age 0 stores NULL.
type Profile struct {
	FullName   string `json:"fullname"`
	Contact    string `json:"contact"`
	Email      string `json:"email"`
	Address    string `json:"address"`
	Age        int    `json:"age,omitempty"`
	Title      string `json:"title"`
	Summary    string `json:"summary"`
	Skills     string `json:"skills"`
	Education  string `json:"education"`
	Experience string `json:"experience"`
	LinkedIn   string `json:"linkedin"`
	GitHub     string `json:"github"`
}

// ProfileOf copies the editable columns out of u.
func ProfileOf(u User) Profile {
	return Profile{
		FullName:   u.FullName,
		Contact:    u.Contact,
		Email:      u.Email,
		Address:    u.Address,
		Age:        u.Age,
		Title:      u.Title,
		Summary:    u.Summary,
		Skills:     u.Skills,
		Education:  u.Education,
		Experience: u.Experience,
		LinkedIn:   u.LinkedIn,
		GitHub:     u.GitHub,
	}
}

func (u *User) applyProfile(p Profile) {
	u.FullName = p.FullName
	u.Contact = p.Contact
	u.Email = p.Email
	u.Address = p.Address
	u.Age = p.Age
	u.Title = p.Title
	u.Summary = p.Summary
	u.Skills = p.Skills
	u.Education = p.Education
	u.Experience = p.Experience
	u.LinkedIn = p.LinkedIn
	u.GitHub = p.GitHub
}
