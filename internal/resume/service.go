package resume

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/samber/oops"

	"resume-site/internal/users"
	"resume-site/internal/validate"
)

var (
	// ErrUnresolved means no signal named a user and the viewer is anonymous.
	ErrUnresolved = errors.New("no resume requested")
	// ErrInvalidProfile means the edit form failed validation.
	ErrInvalidProfile = errors.New("invalid profile")
)

// ProfileForm is the edit form as submitted.
type ProfileForm struct {
	Fullname   string `form:"fullname" json:"fullname"`
	Contact    string `form:"contact" json:"contact"`
	Email      string `form:"email" json:"email"`
	Address    string `form:"address" json:"address"`
	Age        string `form:"age" json:"age"`
	Title      string `form:"title" json:"title"`
	Summary    string `form:"summary" json:"summary"`
	Skills     string `form:"skills" json:"skills"`
	Education  string `form:"education" json:"education"`
	Experience string `form:"experience" json:"experience"`
	LinkedIn   string `form:"linkedin" json:"linkedin"`
	GitHub     string `form:"github" json:"github"`
}

// FormOf fills the edit form from a stored user.
func FormOf(u users.User) ProfileForm {
	age := ""
	if u.Age > 0 {
		age = strconv.Itoa(u.Age)
	}
	return ProfileForm{
		Fullname:   u.FullName,
		Contact:    u.Contact,
		Email:      u.Email,
		Address:    u.Address,
		Age:        age,
		Title:      u.Title,
		Summary:    u.Summary,
		Skills:     u.Skills,
		Education:  u.Education,
		Experience: u.Experience,
		LinkedIn:   u.LinkedIn,
		GitHub:     u.GitHub,
	}
}

// Service resolves, assembles and edits resumes.
type Service struct {
	Users     *users.Service
	Assembler *Assembler
}

func NewService(usersSvc *users.Service, repo Repo) *Service {
	return &Service{Users: usersSvc, Assembler: NewAssembler(usersSvc, repo)}
}

// Lookup turns a resolution into a user id. Slugs match slug or username
// without regard to case.
func (s *Service) Lookup(ctx context.Context, res Resolution) (int64, error) {
	switch res.Kind {
	case ByID:
		return res.ID, nil
	case BySlug:
		u, err := s.Users.FindPublic(ctx, res.Slug)
		if err != nil {
			if errors.Is(err, users.ErrNotFound) {
				return 0, ErrNotFound
			}
			return 0, oops.Code("STORAGE_ERROR").With("slug", res.Slug).Wrap(err)
		}
		return u.ID, nil
	default:
		return 0, ErrUnresolved
	}
}

// View resolves sig and assembles the target's resume.
func (s *Service) View(ctx context.Context, sig Signals, opts Options) (View, error) {
	id, err := s.Lookup(ctx, Resolve(sig))
	if err != nil {
		return View{}, err
	}
	view, err := s.Assembler.Assemble(ctx, id, opts)
	if err != nil {
		return View{}, err
	}
	view.IsOwner = sig.ViewerID > 0 && view.User.ID == sig.ViewerID
	return view, nil
}

// UpdateProfile validates f and replaces the user's profile columns. On
// ErrInvalidProfile the returned messages are meant for the user and nothing
// was written.
func (s *Service) UpdateProfile(ctx context.Context, userID int64, f ProfileForm) ([]string, error) {
	v := validate.New()
	ok := v.ValidateProfile(validate.ProfileInput{
		Fullname: strings.TrimSpace(f.Fullname),
		Email:    f.Email,
		Age:      f.Age,
		LinkedIn: f.LinkedIn,
		GitHub:   f.GitHub,
	})
	if !ok {
		return v.Errors(), ErrInvalidProfile
	}

	p := profileFrom(f)
	err := s.Users.UpdateProfile(ctx, userID, p)
	switch {
	case err == nil:
		return nil, nil
	case errors.Is(err, users.ErrAlreadyExists):
		return []string{"Email is already in use"}, ErrInvalidProfile
	case errors.Is(err, users.ErrNotFound):
		return nil, ErrNotFound
	default:
		return nil, oops.Code("STORAGE_ERROR").With("user_id", userID).Wrap(err)
	}
}

// profileFrom assumes f passed validation. Values are stored trimmed but
// otherwise as typed, so FormOf followed by a save leaves the row unchanged.
// Escaping belongs to whatever renders them as HTML.
func profileFrom(f ProfileForm) users.Profile {
	age, _ := strconv.Atoi(strings.TrimSpace(f.Age))
	return users.Profile{
		FullName:   strings.TrimSpace(f.Fullname),
		Contact:    strings.TrimSpace(f.Contact),
		Email:      strings.TrimSpace(f.Email),
		Address:    strings.TrimSpace(f.Address),
		Age:        age,
		Title:      strings.TrimSpace(f.Title),
		Summary:    strings.TrimSpace(f.Summary),
		Skills:     strings.TrimSpace(f.Skills),
		Education:  strings.TrimSpace(f.Education),
		Experience: strings.TrimSpace(f.Experience),
		LinkedIn:   strings.TrimSpace(f.LinkedIn),
		GitHub:     strings.TrimSpace(f.GitHub),
	}
}
