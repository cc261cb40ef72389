package resume

import (
	"context"
	"database/sql"
)

// PGRepo reads resume sections from Postgres.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) SocialLinks(ctx context.Context, userID int64) ([]SocialLink, error) {
	const query = `
SELECT id, platform, icon, url, display_order
FROM social_links
WHERE user_id = $1
ORDER BY display_order ASC, id ASC`
	return queryAll(ctx, r.DB, query, userID, func(rows *sql.Rows) (SocialLink, error) {
		var l SocialLink
		err := rows.Scan(&l.ID, &l.Platform, &l.Icon, &l.URL, &l.DisplayOrder)
		return l, err
	})
}

func (r *PGRepo) Educations(ctx context.Context, userID int64) ([]Education, error) {
	const query = `
SELECT id, institution, degree, field_of_study, start_date, end_date, description, display_order
FROM educations
WHERE user_id = $1
ORDER BY display_order ASC, id ASC`
	return queryAll(ctx, r.DB, query, userID, func(rows *sql.Rows) (Education, error) {
		var e Education
		err := rows.Scan(&e.ID, &e.Institution, &e.Degree, &e.FieldOfStudy, &e.StartDate, &e.EndDate, &e.Description, &e.DisplayOrder)
		return e, err
	})
}

func (r *PGRepo) Experiences(ctx context.Context, userID int64) ([]Experience, error) {
	const query = `
SELECT id, company, position, location, start_date, end_date, description, display_order
FROM experiences
WHERE user_id = $1
ORDER BY display_order ASC, id ASC`
	return queryAll(ctx, r.DB, query, userID, func(rows *sql.Rows) (Experience, error) {
		var e Experience
		err := rows.Scan(&e.ID, &e.Company, &e.Position, &e.Location, &e.StartDate, &e.EndDate, &e.Description, &e.DisplayOrder)
		return e, err
	})
}

func (r *PGRepo) ExperienceKeywords(ctx context.Context, experienceID int64) ([]string, error) {
	const query = `
SELECT keyword
FROM experience_keywords
WHERE experience_id = $1
ORDER BY display_order ASC, id ASC`
	return queryAll(ctx, r.DB, query, experienceID, scanString)
}

func (r *PGRepo) ExperienceTraits(ctx context.Context, experienceID int64) ([]Trait, error) {
	const query = `
SELECT icon, label
FROM experience_traits
WHERE experience_id = $1
ORDER BY display_order ASC, id ASC`
	return queryAll(ctx, r.DB, query, experienceID, scanTrait)
}

func (r *PGRepo) GlobalTraits(ctx context.Context, userID int64) ([]Trait, error) {
	const query = `
SELECT icon, label
FROM global_experience_traits
WHERE user_id = $1
ORDER BY display_order ASC, id ASC`
	return queryAll(ctx, r.DB, query, userID, scanTrait)
}

func (r *PGRepo) Achievements(ctx context.Context, userID int64) ([]Achievement, error) {
	const query = `
SELECT id, title, description, display_order
FROM achievements
WHERE user_id = $1
ORDER BY display_order ASC, id ASC`
	return queryAll(ctx, r.DB, query, userID, func(rows *sql.Rows) (Achievement, error) {
		var a Achievement
		err := rows.Scan(&a.ID, &a.Title, &a.Description, &a.DisplayOrder)
		return a, err
	})
}

func (r *PGRepo) TechCategories(ctx context.Context, userID int64) ([]TechCategory, error) {
	const query = `
SELECT id, name, display_order
FROM tech_categories
WHERE user_id = $1
ORDER BY display_order ASC, id ASC`
	return queryAll(ctx, r.DB, query, userID, func(rows *sql.Rows) (TechCategory, error) {
		var tc TechCategory
		err := rows.Scan(&tc.ID, &tc.Name, &tc.DisplayOrder)
		return tc, err
	})
}

func (r *PGRepo) Technologies(ctx context.Context, categoryID int64) ([]string, error) {
	const query = `
SELECT name
FROM technologies
WHERE category_id = $1
ORDER BY display_order ASC, id ASC`
	return queryAll(ctx, r.DB, query, categoryID, scanString)
}

func queryAll[T any](ctx context.Context, db *sql.DB, query string, ownerID int64, scan func(*sql.Rows) (T, error)) ([]T, error) {
	rows, err := db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func scanString(rows *sql.Rows) (string, error) {
	var s string
	err := rows.Scan(&s)
	return s, err
}

func scanTrait(rows *sql.Rows) (Trait, error) {
	var t Trait
	err := rows.Scan(&t.Icon, &t.Label)
	return t, err
}

var _ Repo = (*PGRepo)(nil)
