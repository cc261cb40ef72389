package users

import "strings"

// SlugFor returns the default public slug for a new account: the lowercased
// username when it is made only of ASCII letters, digits and hyphens, and ""
// otherwise. Accounts without a slug are still reachable by username.
func SlugFor(username string) string {
	slug := strings.ToLower(strings.TrimSpace(username))
	if slug == "" || slug[0] == '-' {
		return ""
	}
	for _, r := range slug {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '-' {
			return ""
		}
	}
	return slug
}

// claimsName reports whether u answers to name on the public lookup path.
func (u User) claimsName(name string) bool {
	if name == "" {
		return false
	}
	return strings.EqualFold(u.Username, name) || (u.Slug != "" && strings.EqualFold(u.Slug, name))
}
