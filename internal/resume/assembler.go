package resume

import (
	"context"
	"errors"
	"fmt"

	"github.com/samber/oops"

	"resume-site/internal/shared/metrics"
	"resume-site/internal/shared/telemetry"
	"resume-site/internal/users"
)

// ErrNotFound means the target user does not exist.
var ErrNotFound = errors.New("resume not found")

// TraitMode selects which experience traits a view carries.
type TraitMode int

const (
	// TraitsPerExperience attaches each experience's own traits.
	TraitsPerExperience TraitMode = iota
	// TraitsNone leaves Experience.Traits empty.
	TraitsNone
)

// Options tunes one assembly.
type Options struct {
	Traits TraitMode
	// Diagnostic records raw storage errors in View.Diagnostics.
	Diagnostic bool
}

// UserSource loads the user row at the root of a resume.
type UserSource interface {
	GetByID(ctx context.Context, id int64) (users.User, error)
}

// Assembler builds a View from the user row and its child collections.
type Assembler struct {
	Users UserSource
	Repo  Repo
}

func NewAssembler(usersSrc UserSource, repo Repo) *Assembler {
	return &Assembler{Users: usersSrc, Repo: repo}
}

// Assemble loads everything for userID. A missing user is ErrNotFound and any
// other user-row failure is a STORAGE_ERROR. A failing child collection comes
// back empty and does not fail the view.
func (a *Assembler) Assemble(ctx context.Context, userID int64, opts Options) (View, error) {
	u, err := a.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return View{}, ErrNotFound
		}
		return View{}, oops.Code("STORAGE_ERROR").With("user_id", userID).Wrap(err)
	}

	l := &loader{userID: userID, diagnostic: opts.Diagnostic}
	view := View{User: u}

	view.SocialLinks = load(l, "social_links", "", func() ([]SocialLink, error) {
		return a.Repo.SocialLinks(ctx, userID)
	})
	view.Educations = load(l, "educations", "", func() ([]Education, error) {
		return a.Repo.Educations(ctx, userID)
	})
	view.Experiences = load(l, "experiences", "", func() ([]Experience, error) {
		return a.Repo.Experiences(ctx, userID)
	})
	for i := range view.Experiences {
		exp := &view.Experiences[i]
		suffix := fmt.Sprint(exp.ID)
		exp.Keywords = load(l, "experience_keywords", suffix, func() ([]string, error) {
			return a.Repo.ExperienceKeywords(ctx, exp.ID)
		})
		exp.Traits = []Trait{}
		if opts.Traits == TraitsPerExperience {
			exp.Traits = load(l, "experience_traits", suffix, func() ([]Trait, error) {
				return a.Repo.ExperienceTraits(ctx, exp.ID)
			})
		}
	}
	view.GlobalTraits = load(l, "global_experience_traits", "", func() ([]Trait, error) {
		return a.Repo.GlobalTraits(ctx, userID)
	})
	view.Achievements = load(l, "achievements", "", func() ([]Achievement, error) {
		return a.Repo.Achievements(ctx, userID)
	})
	view.TechCategories = load(l, "tech_categories", "", func() ([]TechCategory, error) {
		return a.Repo.TechCategories(ctx, userID)
	})
	for i := range view.TechCategories {
		cat := &view.TechCategories[i]
		names := load(l, "technologies", fmt.Sprint(cat.ID), func() ([]string, error) {
			return a.Repo.Technologies(ctx, cat.ID)
		})
		cat.Technologies = dedupe(names)
	}

	view.HasResumeData = view.hasResumeData()
	view.Diagnostics = l.diagnostics
	return view, nil
}

type loader struct {
	userID      int64
	diagnostic  bool
	diagnostics map[string]string
}

// load runs fetch and swaps a failure for an empty list. suffix distinguishes
// per-parent collections in the diagnostics map.
func load[T any](l *loader, collection, suffix string, fetch func() ([]T, error)) []T {
	items, err := fetch()
	if err == nil {
		if items == nil {
			items = []T{}
		}
		return items
	}

	metrics.IncCollectionFailure(collection)
	telemetry.Warn("resume.collection_failed", map[string]any{
		"user_id":    l.userID,
		"collection": collection,
		"parent_id":  suffix,
		"error":      err,
	})
	if l.diagnostic {
		if l.diagnostics == nil {
			l.diagnostics = make(map[string]string)
		}
		key := collection
		if suffix != "" {
			key += ":" + suffix
		}
		l.diagnostics[key] = err.Error()
	}
	return []T{}
}

// dedupe drops repeated names by exact match, keeping first occurrences in order.
func dedupe(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}
