package service

import (
	"time"

	"github.com/EliasMeh/ExamenBDD/internal/dto"
	"github.com/EliasMeh/ExamenBDD/internal/repository"
)

const dateLayout = "2006-01-02"

// parseDate accepts a calendar date or a full RFC 3339 timestamp; only the
// date part is kept.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

func parsePeriode(f dto.PeriodeFilter) (repository.Periode, error) {
	var p repository.Periode
	if f.DateDebut != "" {
		t, err := parseDate(f.DateDebut)
		if err != nil {
			return p, newError(ErrValidation, `Invalid "date_debut", expected YYYY-MM-DD`, err)
		}
		p.Debut = &t
	}
	if f.DateFin != "" {
		t, err := parseDate(f.DateFin)
		if err != nil {
			return p, newError(ErrValidation, `Invalid "date_fin", expected YYYY-MM-DD`, err)
		}
		p.Fin = &t
	}
	if p.Debut != nil && p.Fin != nil && p.Fin.Before(*p.Debut) {
		return p, newError(ErrValidation, `"date_fin" must not be before "date_debut"`, nil)
	}
	return p, nil
}
