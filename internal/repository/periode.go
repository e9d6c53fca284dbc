package repository

import (
	"time"

	"gorm.io/gorm"
)

// Periode is an inclusive date range; either bound may be open.
type Periode struct {
	Debut *time.Time
	Fin   *time.Time
}

func (p Periode) apply(q *gorm.DB, column string) *gorm.DB {
	switch {
	case p.Debut != nil && p.Fin != nil:
		return q.Where(column+" BETWEEN ? AND ?", *p.Debut, *p.Fin)
	case p.Debut != nil:
		return q.Where(column+" >= ?", *p.Debut)
	case p.Fin != nil:
		return q.Where(column+" <= ?", *p.Fin)
	}
	return q
}
