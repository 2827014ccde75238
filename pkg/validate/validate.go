// Package validate checks reconstructed structures against their shape
// contracts at the boundary between raw HTML extraction and the rest of the
// pipeline. Checks accumulate every violated rule instead of stopping at the
// first, and return them as a value rather than panicking or throwing.
package validate

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/hzpp/hzpp/pkg/model"
)

// Violations is the list of broken rules found by one validation pass. An
// empty list means the value satisfied its contract.
type Violations []string

func (v Violations) String() string {
	return strings.Join(v, ", ")
}

func (v *Violations) addf(format string, args ...interface{}) {
	*v = append(*v, fmt.Sprintf(format, args...))
}

// Stations validates a parsed station directory.
func Stations(stations []model.Station) Violations {
	var violations Violations

	if len(stations) == 0 {
		violations.addf("station list must not be empty")
	}

	for i, station := range stations {
		if station.ID == "" {
			violations.addf("station %d must have an id", i)
		}
		if station.Name == "" {
			violations.addf("station %d must have a name", i)
		}
	}

	return violations
}

// RollingStock validates a parsed catalog, including that every image
// resolved to a well-formed absolute URL.
func RollingStock(entries []model.RollingStockInfo) Violations {
	var violations Violations

	for i, entry := range entries {
		if entry.Name == "" {
			violations.addf("entry %d must have a name", i)
		}

		parsed, err := url.Parse(entry.Image)
		if err != nil || !parsed.IsAbs() {
			violations.addf("entry %d image must be an absolute url", i)
		}
	}

	return violations
}

// Timetables validates the candidate rows extracted from a search-results
// table.
func Timetables(journeys []model.JourneyTimetable) Violations {
	var violations Violations

	for i, journey := range journeys {
		if journey.DepartureNumber == "" {
			violations.addf("journey %d must have a departure number", i)
		}
		if journey.DepartureTime.IsZero() {
			violations.addf("journey %d must have a departure time", i)
		}
		if journey.ArrivalTime.IsZero() {
			violations.addf("journey %d must have an arrival time", i)
		}
		if journey.Transfers < 0 {
			violations.addf("journey %d transfers must not be negative", i)
		}
		if journey.Price < 0 {
			violations.addf("journey %d price must not be negative", i)
		}
	}

	return violations
}

// Schedule validates a reconstructed journey route schedule: segment and stop
// ordering invariants plus the presence of required aggregates.
func Schedule(schedule *model.JourneyRouteSchedule) Violations {
	var violations Violations

	if schedule.DepartureNumber == "" {
		violations.addf("schedule must have a departure number")
	}
	if schedule.FromStation == "" {
		violations.addf("schedule must have a from station")
	}
	if schedule.ToStation == "" {
		violations.addf("schedule must have a to station")
	}
	if len(schedule.Trains) == 0 {
		violations.addf("schedule must have at least one train")
	}

	for i, train := range schedule.Trains {
		if train.Index != i {
			violations.addf("train %d must have contiguous index %d, has %d", i, i, train.Index)
		}
		if train.TrainNumber == "" {
			violations.addf("train %d must have a train number", i)
		}
		if len(train.Stations) == 0 {
			violations.addf("train %d must have at least one stop", i)
			continue
		}

		for j, stop := range train.Stations {
			if stop.Index != j {
				violations.addf("train %d stop %d must have contiguous index", i, j)
			}
			if stop.Name == "" {
				violations.addf("train %d stop %d must have a name", i, j)
			}
			if stop.Type == model.StopTypeStartingPoint && j != 0 {
				violations.addf("train %d stop %d must not be a starting point", i, j)
			}
			if stop.Type == model.StopTypeDestination && j != len(train.Stations)-1 {
				violations.addf("train %d stop %d must not be a destination", i, j)
			}
		}
	}

	return violations
}

// TrainInfo validates a parsed live status snapshot.
func TrainInfo(info *model.TrainInfo) Violations {
	var violations Violations

	if info.TrainNumber == "" {
		violations.addf("train info must have a train number")
	}
	if info.AtTime.IsZero() {
		violations.addf("train info must have a timestamp")
	}
	if info.Status == model.TrainStatusDelayed && info.LateMinutes < 0 {
		violations.addf("delayed train info must not have negative late minutes")
	}

	return violations
}
