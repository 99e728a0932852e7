package diagnosis

import "time"

// Duration indica hace cuánto duran los síntomas.
// @Enum hours, 1 day, 2-3 days, week+
type Duration string

const (
	DurationHours        Duration = "hours"
	DurationOneDay       Duration = "1 day"
	DurationTwoThreeDays Duration = "2-3 days"
	DurationWeekPlus     Duration = "week+"
)

// AllowedDurations mantiene el orden usado en los mensajes de error.
var AllowedDurations = []Duration{
	DurationHours,
	DurationOneDay,
	DurationTwoThreeDays,
	DurationWeekPlus,
}

func (d Duration) Valid() bool {
	for _, a := range AllowedDurations {
		if d == a {
			return true
		}
	}
	return false
}

// Tier es el resultado de la clasificación.
// @Enum emergency, severe, moderate, mild
type Tier string

const (
	TierEmergency Tier = "emergency"
	TierSevere    Tier = "severe"
	TierModerate  Tier = "moderate"
	TierMild      Tier = "mild"
)

// Report es un reporte de síntomas que ya pasó la validación.
type Report struct {
	Symptoms string
	Duration Duration
	Severity int
	Age      int
}

// Record es un reporte clasificado, tal como queda en el historial.
type Record struct {
	ID string

	Report

	Tier           Tier
	Recommendation string
	Confidence     float64
	MatchedKeyword string // solo para TierEmergency

	CreatedAt time.Time
}
