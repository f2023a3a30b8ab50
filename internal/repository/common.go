package repository

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// softDelete flips is_active off and stamps the audit columns.
// A row that is missing or already inactive yields gorm.ErrRecordNotFound.
func softDelete(db *gorm.DB, value interface{}, id uuid.UUID, deletedBy string) error {
	now := time.Now()
	res := db.Model(value).
		Where("id = ? AND is_active = ?", id, true).
		Updates(map[string]interface{}{
			"is_active":  false,
			"deleted_at": now,
			"deleted_by": deletedBy,
			"updated_by": deletedBy,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// save writes every column of value without touching preloaded associations.
func save(db *gorm.DB, value interface{}) error {
	return db.Omit(clause.Associations).Save(value).Error
}

func activeOnly(q *gorm.DB, includeInactive bool) *gorm.DB {
	if includeInactive {
		return q
	}
	return q.Where("is_active = ?", true)
}

func dateBetween(q *gorm.DB, column string, from, to *time.Time) *gorm.DB {
	if from != nil {
		q = q.Where(column+" >= ?", *from)
	}
	if to != nil {
		q = q.Where(column+" <= ?", *to)
	}
	return q
}

// likeAny matches term case-insensitively against any of the columns.
func likeAny(q *gorm.DB, term string, columns ...string) *gorm.DB {
	term = strings.TrimSpace(term)
	if term == "" || len(columns) == 0 {
		return q
	}
	pattern := "%" + strings.ToLower(term) + "%"
	conds := make([]string, len(columns))
	args := make([]interface{}, len(columns))
	for i, c := range columns {
		conds[i] = "LOWER(" + c + ") LIKE ?"
		args[i] = pattern
	}
	return q.Where("("+strings.Join(conds, " OR ")+")", args...)
}

// DateRange bounds list queries on a date column; nil ends are open.
type DateRange struct {
	From *time.Time
	To   *time.Time
}
