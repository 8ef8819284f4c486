package service

import (
	"fmt"
	"strings"
	"time"

	"hisaab/internal/domain"
)

// dateLayouts are the accepted input formats, ISO first.
var dateLayouts = []string{"2006-01-02", "02-01-2006", "02/01/2006"}

// parseDate reads a calendar date. A blank value means today.
func parseDate(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		y, m, d := now.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", domain.ErrInvalidDate, s)
}
