package types

import (
	"strings"
	"time"
)

// Property keys attached to repositories.
const (
	PropertyInspectionStatus        = "blackduck.inspection.status"
	PropertyInspectionStatusMessage = "blackduck.inspection.status.message"
	PropertyLastInspection          = "blackduck.last.inspection"
	PropertyProjectName             = "blackduck.project.name"
	PropertyProjectVersionName      = "blackduck.project.version.name"
)

// PropertySet maps a property key to its ordered values. An empty value
// list passed to a store write removes the key.
type PropertySet map[string][]string

// Clone returns a deep copy so callers never share value slices with a
// store.
func (p PropertySet) Clone() PropertySet {
	out := make(PropertySet, len(p))
	for key, values := range p {
		out[key] = append([]string{}, values...)
	}
	return out
}

// First returns the first value of a key, or "" when unset.
func (p PropertySet) First(key string) string {
	values := p[key]
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

// LastInspection parses the last inspection timestamp, or returns the zero
// time when it is unset or unreadable. Hand-edited values often lack the
// T separator or a zone; those are read as UTC.
func (p PropertySet) LastInspection() time.Time {
	trimmed := strings.TrimSpace(p.First(PropertyLastInspection))
	if trimmed == "" {
		return time.Time{}
	}
	layouts := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02 15:04:05 -0700 MST",
		"2006-01-02 15:04:05",
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return parsed.UTC()
		}
	}
	return time.Time{}
}
