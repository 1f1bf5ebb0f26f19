package encounter

import (
	"math/rand"
	"time"

	"github.com/verdantlabs/verdant-api/internal/domain"
)

// TimeOfDayAt maps a wall-clock instant to its time-of-day window:
// [5,9) morning, [9,17) day, [17,20) evening, everything else night.
func TimeOfDayAt(t time.Time) domain.TimeOfDay {
	switch hour := t.Hour(); {
	case hour >= 5 && hour < 9:
		return domain.TimeMorning
	case hour >= 9 && hour < 17:
		return domain.TimeDay
	case hour >= 17 && hour < 20:
		return domain.TimeEvening
	default:
		return domain.TimeNight
	}
}

// weatherTable is the categorical weather distribution. Each refresh is an
// independent draw; weather has no memory of the previous state.
var weatherTable = []struct {
	weather domain.Weather
	weight  float64
}{
	{domain.WeatherClear, 0.6},
	{domain.WeatherCloudy, 0.3},
	{domain.WeatherRainy, 0.1},
}

// DrawWeather samples the weather distribution using the provided source.
func DrawWeather(rng *rand.Rand) domain.Weather {
	roll := rng.Float64()
	cumulative := 0.0
	for _, entry := range weatherTable {
		cumulative += entry.weight
		if roll < cumulative {
			return entry.weather
		}
	}
	return domain.WeatherClear
}

// ConditionsAt produces a fresh environmental snapshot for the instant.
func ConditionsAt(t time.Time, rng *rand.Rand) domain.Conditions {
	return domain.Conditions{
		TimeOfDay: TimeOfDayAt(t),
		Weather:   DrawWeather(rng),
	}
}
