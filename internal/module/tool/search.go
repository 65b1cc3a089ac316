package tool

import (
	"strings"
	"unicode"

	"gorm.io/gorm"
)

// Terms splits a free-text query into its significant lowercase search
// terms. Multi-word queries are an implicit AND of these terms, matching
// websearch-style parsing. Punctuation and operator characters are treated
// as separators; single-character fragments are not significant.
func Terms(query string) []string {
	fields := strings.FieldsFunc(strings.ToLower(query), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	terms := make([]string, 0, len(fields))
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if len(f) < 2 {
			continue
		}
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		terms = append(terms, f)
	}
	return terms
}

// searchScope applies the full-text criterion for the active dialect.
// Postgres matches the generated tsvector column with websearch parsing;
// other dialects AND together term matches against the precomputed
// search_text index field. A query with no significant terms leaves the
// statement untouched; callers short-circuit that case to an empty result
// before reaching the store.
func searchScope(dialect, query string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		terms := Terms(query)
		if len(terms) == 0 {
			return db
		}

		if dialect == "postgres" {
			return db.Where("tools.search_vector @@ websearch_to_tsquery('english', ?)", strings.Join(terms, " "))
		}

		for _, t := range terms {
			db = db.Where("tools.search_text LIKE ?", "%"+t+"%")
		}
		return db
	}
}
