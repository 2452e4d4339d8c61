package models

import (
	"strconv"
)

// ─── shared formatting helpers (package-private) ────────────────────────

func ftoa(v float64, prec int) string {
	return strconv.FormatFloat(v, 'f', prec, 64)
}
