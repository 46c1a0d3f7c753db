package utils

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
	"gorm.io/gorm"
)

const maxSlugLength = 200

var (
	reNonAlnum = regexp.MustCompile(`[^a-z0-9]+`)
	reHyphen   = regexp.MustCompile(`-+`)
)

// Slugify turns free text into [a-z0-9-], stripping diacritics
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))

	var buf []rune
	for _, r := range norm.NFD.String(s) {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		buf = append(buf, r)
	}
	s = string(buf)

	s = reNonAlnum.ReplaceAllString(s, "-")
	s = reHyphen.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")

	if utf8.RuneCountInString(s) > maxSlugLength {
		s = strings.Trim(string([]rune(s)[:maxSlugLength]), "-")
	}
	if s == "" {
		s = "item"
	}
	return s
}

// EnsureUniqueSlug appends -2, -3, ... until base is unused in table.column
// excludeID skips the row being updated (0 for inserts)
func EnsureUniqueSlug(ctx context.Context, db *gorm.DB, table, column, base string, excludeID uint) (string, error) {
	slug := base
	for i := 2; ; i++ {
		q := db.WithContext(ctx).Table(table).Where(fmt.Sprintf("%s = ?", column), slug)
		if excludeID != 0 {
			q = q.Where("id <> ?", excludeID)
		}

		var count int64
		if err := q.Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return slug, nil
		}

		suffix := fmt.Sprintf("-%d", i)
		trimmed := base
		if keep := maxSlugLength - len(suffix); len(trimmed) > keep {
			trimmed = strings.Trim(trimmed[:keep], "-")
		}
		slug = trimmed + suffix
	}
}
