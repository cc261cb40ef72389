package resume

import (
	"cmp"
	"context"
	"slices"
	"sync"
)

type ordered[T any] struct {
	id    int64
	order int
	item  T
}

// MemoryRepo is an in-process Repo for dev mode and tests. Add* methods seed
// rows; reads apply the same ordering as PGRepo.
type MemoryRepo struct {
	mu           sync.RWMutex
	nextID       int64
	socialLinks  map[int64][]ordered[SocialLink]
	educations   map[int64][]ordered[Education]
	experiences  map[int64][]ordered[Experience]
	keywords     map[int64][]ordered[string]
	traits       map[int64][]ordered[Trait]
	globalTraits map[int64][]ordered[Trait]
	achievements map[int64][]ordered[Achievement]
	categories   map[int64][]ordered[TechCategory]
	technologies map[int64][]ordered[string]
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		socialLinks:  make(map[int64][]ordered[SocialLink]),
		educations:   make(map[int64][]ordered[Education]),
		experiences:  make(map[int64][]ordered[Experience]),
		keywords:     make(map[int64][]ordered[string]),
		traits:       make(map[int64][]ordered[Trait]),
		globalTraits: make(map[int64][]ordered[Trait]),
		achievements: make(map[int64][]ordered[Achievement]),
		categories:   make(map[int64][]ordered[TechCategory]),
		technologies: make(map[int64][]ordered[string]),
	}
}

func (r *MemoryRepo) id() int64 {
	r.nextID++
	return r.nextID
}

func (r *MemoryRepo) AddSocialLink(userID int64, l SocialLink) SocialLink {
	r.mu.Lock()
	defer r.mu.Unlock()
	l.ID = r.id()
	r.socialLinks[userID] = append(r.socialLinks[userID], ordered[SocialLink]{l.ID, l.DisplayOrder, l})
	return l
}

func (r *MemoryRepo) AddEducation(userID int64, e Education) Education {
	r.mu.Lock()
	defer r.mu.Unlock()
	e.ID = r.id()
	r.educations[userID] = append(r.educations[userID], ordered[Education]{e.ID, e.DisplayOrder, e})
	return e
}

func (r *MemoryRepo) AddExperience(userID int64, e Experience) Experience {
	r.mu.Lock()
	defer r.mu.Unlock()
	e.ID = r.id()
	e.Keywords, e.Traits = nil, nil
	r.experiences[userID] = append(r.experiences[userID], ordered[Experience]{e.ID, e.DisplayOrder, e})
	return e
}

func (r *MemoryRepo) AddKeyword(experienceID int64, keyword string, order int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.keywords[experienceID] = append(r.keywords[experienceID], ordered[string]{r.id(), order, keyword})
}

func (r *MemoryRepo) AddTrait(experienceID int64, t Trait, order int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.traits[experienceID] = append(r.traits[experienceID], ordered[Trait]{r.id(), order, t})
}

func (r *MemoryRepo) AddGlobalTrait(userID int64, t Trait, order int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.globalTraits[userID] = append(r.globalTraits[userID], ordered[Trait]{r.id(), order, t})
}

func (r *MemoryRepo) AddAchievement(userID int64, a Achievement) Achievement {
	r.mu.Lock()
	defer r.mu.Unlock()
	a.ID = r.id()
	r.achievements[userID] = append(r.achievements[userID], ordered[Achievement]{a.ID, a.DisplayOrder, a})
	return a
}

func (r *MemoryRepo) AddTechCategory(userID int64, tc TechCategory) TechCategory {
	r.mu.Lock()
	defer r.mu.Unlock()
	tc.ID = r.id()
	tc.Technologies = nil
	r.categories[userID] = append(r.categories[userID], ordered[TechCategory]{tc.ID, tc.DisplayOrder, tc})
	return tc
}

func (r *MemoryRepo) AddTechnology(categoryID int64, name string, order int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.technologies[categoryID] = append(r.technologies[categoryID], ordered[string]{r.id(), order, name})
}

func (r *MemoryRepo) SocialLinks(ctx context.Context, userID int64) ([]SocialLink, error) {
	return read(ctx, r, r.socialLinks, userID)
}

func (r *MemoryRepo) Educations(ctx context.Context, userID int64) ([]Education, error) {
	return read(ctx, r, r.educations, userID)
}

func (r *MemoryRepo) Experiences(ctx context.Context, userID int64) ([]Experience, error) {
	return read(ctx, r, r.experiences, userID)
}

func (r *MemoryRepo) ExperienceKeywords(ctx context.Context, experienceID int64) ([]string, error) {
	return read(ctx, r, r.keywords, experienceID)
}

func (r *MemoryRepo) ExperienceTraits(ctx context.Context, experienceID int64) ([]Trait, error) {
	return read(ctx, r, r.traits, experienceID)
}

func (r *MemoryRepo) GlobalTraits(ctx context.Context, userID int64) ([]Trait, error) {
	return read(ctx, r, r.globalTraits, userID)
}

func (r *MemoryRepo) Achievements(ctx context.Context, userID int64) ([]Achievement, error) {
	return read(ctx, r, r.achievements, userID)
}

func (r *MemoryRepo) TechCategories(ctx context.Context, userID int64) ([]TechCategory, error) {
	return read(ctx, r, r.categories, userID)
}

func (r *MemoryRepo) Technologies(ctx context.Context, categoryID int64) ([]string, error) {
	return read(ctx, r, r.technologies, categoryID)
}

func read[T any](ctx context.Context, r *MemoryRepo, m map[int64][]ordered[T], ownerID int64) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	rows := slices.Clone(m[ownerID])
	r.mu.RUnlock()

	slices.SortFunc(rows, func(a, b ordered[T]) int {
		if c := cmp.Compare(a.order, b.order); c != 0 {
			return c
		}
		return cmp.Compare(a.id, b.id)
	})
	var out []T
	for _, row := range rows {
		out = append(out, row.item)
	}
	return out, nil
}

var _ Repo = (*MemoryRepo)(nil)
