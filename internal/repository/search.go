package repository

import (
	"strings"

	"github.com/rpattn/filedash/internal/domain"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// searchTerm returns the trimmed search text, or "" when the filter does not
// narrow the listing.
func searchTerm(filter *domain.FileFilter) string {
	if filter == nil {
		return ""
	}
	return strings.TrimSpace(filter.Search)
}

// containsPattern builds an ILIKE pattern matching term as a literal substring.
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}
