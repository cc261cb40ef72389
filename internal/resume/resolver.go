package resume

import (
	"strconv"
	"strings"
)

// Signals are the request inputs that can name whose resume to show.
type Signals struct {
	ID          string // ?id=
	Slug        string // ?u= or ?slug=
	PathSegment string // trailing path segment
	ViewerID    int64  // logged-in user, 0 when anonymous
}

// Kind says how a Resolution identifies its target.
type Kind int

const (
	Unresolved Kind = iota
	ByID
	BySlug
)

// Resolution is the outcome of Resolve. IsOwner is set when the target is
// known to be the viewer before any lookup.
type Resolution struct {
	Kind    Kind
	ID      int64
	Slug    string
	IsOwner bool
}

// reservedSegments are route names that never denote a user.
var reservedSegments = map[string]struct{}{
	"resume":    {},
	"view":      {},
	"public":    {},
	"index":     {},
	"dashboard": {},
	"edit":      {},
	"login":     {},
	"logout":    {},
	"signup":    {},
}

// Resolve picks the target identity. The first usable signal wins:
// id parameter, slug parameter, path segment, then the logged-in viewer.
// An id parameter that is not a positive integer is ignored.
func Resolve(sig Signals) Resolution {
	if id, ok := parseID(sig.ID); ok {
		return byID(id, sig.ViewerID)
	}
	if slug := strings.TrimSpace(sig.Slug); slug != "" {
		return Resolution{Kind: BySlug, Slug: slug}
	}
	if seg := strings.Trim(strings.TrimSpace(sig.PathSegment), "/"); seg != "" && !isReserved(seg) {
		if id, ok := parseID(seg); ok {
			return byID(id, sig.ViewerID)
		}
		return Resolution{Kind: BySlug, Slug: seg}
	}
	if sig.ViewerID > 0 {
		return Resolution{Kind: ByID, ID: sig.ViewerID, IsOwner: true}
	}
	return Resolution{Kind: Unresolved}
}

func byID(id, viewerID int64) Resolution {
	return Resolution{Kind: ByID, ID: id, IsOwner: viewerID > 0 && id == viewerID}
}

func parseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func isReserved(seg string) bool {
	_, ok := reservedSegments[strings.ToLower(seg)]
	return ok
}
