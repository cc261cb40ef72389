package resume

import "context"

// Repo loads the child collections of a user's resume. Every list is ordered
// by display_order, then id.
type Repo interface {
	SocialLinks(ctx context.Context, userID int64) ([]SocialLink, error)
	Educations(ctx context.Context, userID int64) ([]Education, error)
	Experiences(ctx context.Context, userID int64) ([]Experience, error)
	ExperienceKeywords(ctx context.Context, experienceID int64) ([]string, error)
	ExperienceTraits(ctx context.Context, experienceID int64) ([]Trait, error)
	GlobalTraits(ctx context.Context, userID int64) ([]Trait, error)
	Achievements(ctx context.Context, userID int64) ([]Achievement, error)
	TechCategories(ctx context.Context, userID int64) ([]TechCategory, error)
	// Technologies returns raw names, duplicates included.
	Technologies(ctx context.Context, categoryID int64) ([]string, error)
}
