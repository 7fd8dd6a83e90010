package syllabus

import (
	"math"
	"time"

	"github.com/studyhall/studyhall/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// RETENTION SCORING
// ══════════════════════════════════════════════════════════════════════════════

// Band classifies a retention score for presentation and alerting.
type Band string

const (
	BandHealthy Band = "healthy" // retention >= 80
	BandFading  Band = "fading"  // 50 <= retention < 80
	BandAtRisk  Band = "at-risk" // retention < 50
)

// Retention estimates how much of a studied topic is still remembered, as an
// integer percentage. It follows the Ebbinghaus forgetting curve:
//
//	retention = round(100 * e^(-days / strength))
//
// where days is the fractional elapsed time since the last study session and
// strength is the module's decay constant (higher means slower forgetting,
// halving roughly every strength*ln2 days).
//
// A module never studied scores 0. The function is total: it returns a value
// for any status, and callers gate display on Status.IsStudied.
func Retention(lastStudiedAt *time.Time, strength float64, now time.Time) int {
	if lastStudiedAt == nil {
		return 0
	}
	if strength <= 0 {
		strength = 1.0
	}

	days := timeutil.FractionalDaysBetween(*lastStudiedAt, now)
	score := int(math.Round(100 * math.Exp(-days/strength)))

	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// ClassifyRetention maps a retention score to its presentation band.
func ClassifyRetention(score int) Band {
	switch {
	case score >= 80:
		return BandHealthy
	case score >= 50:
		return BandFading
	default:
		return BandAtRisk
	}
}
