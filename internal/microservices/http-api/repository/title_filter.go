package repository

import (
	"strings"

	"gorm.io/gorm"
)

// TitleFilter narrows the title listing. Zero-value fields impose nothing and
// all set fields must hold at once.
type TitleFilter struct {
	Name     string // substring of the title name
	Category string // substring of the category slug
	Genre    string // substring of any genre slug
	Year     *int   // exact year

	// Ordering holds sortable field names, "-" prefixed for descending.
	Ordering []string
}

// titleOrderColumns maps public ordering names onto SQL expressions.
var titleOrderColumns = map[string]string{
	"id":     "titles.id",
	"name":   "titles.name",
	"year":   "titles.year",
	"rating": "rating",
}

// ValidTitleOrdering reports whether field (with or without "-") can be sorted on.
func ValidTitleOrdering(field string) bool {
	_, ok := titleOrderColumns[strings.TrimPrefix(field, "-")]
	return ok
}

// ContainsPattern turns s into a LIKE pattern matching any value containing s
// literally. LIKE is case-sensitive in postgres.
func ContainsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

// PrefixPattern turns s into a LIKE pattern matching values starting with s.
func PrefixPattern(s string) string {
	return likeEscaper.Replace(s) + "%"
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Where applies the filter predicates.
func (f TitleFilter) Where(db *gorm.DB) *gorm.DB {
	if f.Name != "" {
		db = db.Where("titles.name LIKE ?", ContainsPattern(f.Name))
	}
	if f.Category != "" {
		db = db.Where(
			"titles.category_id IN (SELECT categories.id FROM categories WHERE categories.slug LIKE ?)",
			ContainsPattern(f.Category),
		)
	}
	if f.Genre != "" {
		db = db.Where(
			"titles.id IN (SELECT genre_titles.title_id FROM genre_titles JOIN genres ON genres.id = genre_titles.genre_id WHERE genres.slug LIKE ?)",
			ContainsPattern(f.Genre),
		)
	}
	if f.Year != nil {
		db = db.Where("titles.year = ?", *f.Year)
	}
	return db
}

// Order applies the requested ordering, falling back to name ascending.
// Unknown fields are ignored. The id tiebreak keeps pages stable.
func (f TitleFilter) Order(db *gorm.DB) *gorm.DB {
	applied := false
	for _, field := range f.Ordering {
		dir := "ASC"
		if strings.HasPrefix(field, "-") {
			dir = "DESC"
			field = field[1:]
		}
		col, ok := titleOrderColumns[field]
		if !ok {
			continue
		}
		if field == "rating" {
			db = db.Order(col + " " + dir + " NULLS LAST")
		} else {
			db = db.Order(col + " " + dir)
		}
		applied = true
	}
	if !applied {
		db = db.Order("titles.name ASC")
	}
	return db.Order("titles.id ASC")
}

// ratingColumn selects the mean review score alongside the title row.
const ratingColumn = "titles.*, (SELECT CAST(AVG(reviews.score) AS double precision) FROM reviews WHERE reviews.title_id = titles.id) AS rating"

// WithRating adds the computed rating column to a titles query.
func WithRating(db *gorm.DB) *gorm.DB {
	return db.Select(ratingColumn)
}
