package repository

import (
	"errors"
	"strings"

	"hospital-website-backend/pkg/utils"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a lookup matches no row
	ErrNotFound = errors.New("record not found")
	// ErrSlotTaken is returned when an active appointment already holds the slot
	ErrSlotTaken = errors.New("time slot already booked")
	// ErrDepartmentInUse is returned when deleting a department that still has doctors
	ErrDepartmentInUse = errors.New("department has doctors assigned")
	// ErrDuplicate is returned when a unique column already holds the value
	ErrDuplicate = errors.New("duplicate value")
)

// ListParams are the query options shared by every list endpoint
type ListParams struct {
	Page     int
	Search   string
	Ordering string
}

// likeEscaper makes % and _ in a search term match literally
// '!' is the escape character; a backslash is itself an escape in MySQL literals
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// search adds a case-insensitive substring match over columns
func search(q *gorm.DB, term string, columns ...string) *gorm.DB {
	term = strings.TrimSpace(term)
	if term == "" || len(columns) == 0 {
		return q
	}
	like := "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
	clauses := make([]string, len(columns))
	args := make([]interface{}, len(columns))
	for i, col := range columns {
		clauses[i] = "LOWER(" + col + ") LIKE ? ESCAPE '!'"
		args[i] = like
	}
	return q.Where("("+strings.Join(clauses, " OR ")+")", args...)
}

// paginate counts q, rejects out-of-range pages and loads one page into out
func paginate(q *gorm.DB, page int, order string, out interface{}) (int64, error) {
	var count int64
	if err := q.Session(&gorm.Session{}).Count(&count).Error; err != nil {
		return 0, err
	}
	if err := utils.CheckPage(page, count); err != nil {
		return count, err
	}
	err := q.Session(&gorm.Session{}).
		Order(order).
		Offset(utils.Offset(page)).
		Limit(utils.PageSize).
		Find(out).Error
	return count, err
}

// notFound maps gorm's missing-row error to ErrNotFound
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// duplicate maps unique-constraint violations to ErrDuplicate
func duplicate(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	return err
}
