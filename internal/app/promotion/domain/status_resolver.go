package domain

import (
	"time"
)

// LifecyclePhase is the lifecycle state of a promotion at a given instant.
type LifecyclePhase string

const (
	PhaseNonaktif    LifecyclePhase = "nonaktif"
	PhaseAkanDatang  LifecyclePhase = "akan_datang"
	PhaseBerakhir    LifecyclePhase = "berakhir"
	PhaseBerlangsung LifecyclePhase = "berlangsung"
)

// IsValid reports whether p is a known phase.
func (p LifecyclePhase) IsValid() bool {
	switch p {
	case PhaseNonaktif, PhaseAkanDatang, PhaseBerakhir, PhaseBerlangsung:
		return true
	}
	return false
}

const day = 24 * time.Hour

// StatusResult is the resolved lifecycle phase plus the day counts shown
// next to it. DaysUntilStart is set only for akan_datang; DaysUntilEnd is
// set only for berlangsung promotions that have an end date.
type StatusResult struct {
	Phase          LifecyclePhase
	DaysUntilStart *int64
	DaysUntilEnd   *int64
}

// StatusResolver derives the lifecycle phase of a promotion.
type StatusResolver struct{}

// NewStatusResolver creates a new StatusResolver.
func NewStatusResolver() *StatusResolver {
	return &StatusResolver{}
}

// Resolve evaluates, in order: nonaktif, akan_datang, berakhir, berlangsung.
//
// Promotion dates are calendar dates read in the location of now. The start
// date begins at its midnight; the end date runs through the last instant of
// that day.
func (r *StatusResolver) Resolve(promo *Promotion, now time.Time) StatusResult {
	if !promo.IsAktif() {
		return StatusResult{Phase: PhaseNonaktif}
	}

	if promo.TanggalMulai != nil {
		start := startOfDay(*promo.TanggalMulai, now.Location())
		if start.After(now) {
			days := ceilDays(start.Sub(now))
			return StatusResult{Phase: PhaseAkanDatang, DaysUntilStart: &days}
		}
	}

	if promo.TanggalSelesai != nil {
		end := endOfDay(*promo.TanggalSelesai, now.Location())
		if end.Before(now) {
			return StatusResult{Phase: PhaseBerakhir}
		}
		days := ceilDays(end.Sub(now))
		return StatusResult{Phase: PhaseBerlangsung, DaysUntilEnd: &days}
	}

	return StatusResult{Phase: PhaseBerlangsung}
}

// IsValidAt reports whether the promotion is running at t.
func (r *StatusResolver) IsValidAt(promo *Promotion, t time.Time) bool {
	return r.Resolve(promo, t).Phase == PhaseBerlangsung
}

func startOfDay(d time.Time, loc *time.Location) time.Time {
	y, m, dd := d.Date()
	return time.Date(y, m, dd, 0, 0, 0, 0, loc)
}

// endOfDay is the exclusive boundary of the day minus one nanosecond.
func endOfDay(d time.Time, loc *time.Location) time.Time {
	return startOfDay(d, loc).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

func ceilDays(d time.Duration) int64 {
	if d <= 0 {
		return 0
	}
	days := int64(d / day)
	if d%day != 0 {
		days++
	}
	return days
}
