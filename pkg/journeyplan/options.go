// Package journeyplan is the orchestration layer over the portal and delay
// clients: it validates search criteria, resolves candidates into full
// schedules, attaches live info and derives presentation views and progress
// estimates.
package journeyplan

import (
	"time"

	"github.com/hzpp/hzpp/pkg/model"
	"github.com/hzpp/hzpp/pkg/util"
	"github.com/hzpp/hzpp/pkg/validate"
)

// ValidateOptions checks search criteria before any network traffic. Every
// broken rule is reported, not just the first.
func ValidateOptions(options model.JourneyOptions, now time.Time) validate.Violations {
	var violations validate.Violations

	if options.StartID == "" {
		violations = append(violations, "start station is required")
	}
	if options.DestID == "" {
		violations = append(violations, "destination station is required")
	}
	if options.StartID != "" && options.StartID == options.DestID {
		violations = append(violations, "start and destination stations cannot be the same")
	}

	if options.Class != model.ClassFirst && options.Class != model.ClassSecond {
		violations = append(violations, "invalid class, expected 1 or 2")
	}
	if options.TrainType != model.TrainTypeDirect && options.TrainType != model.TrainTypeAll {
		violations = append(violations, "invalid train type, expected 0 or 1")
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	departureDate, err := time.ParseInLocation("2006-01-02", options.DepartureDate, now.Location())
	if err != nil {
		violations = append(violations, "invalid departure date")
	} else if departureDate.Before(today) {
		violations = append(violations, "departure date cannot be in the past")
	}

	if options.DepartureTime != "" {
		if _, _, err := util.SplitHHMM(options.DepartureTime); err != nil {
			violations = append(violations, "invalid departure time")
		}
	}

	if len(options.Passengers) > 2 {
		violations = append(violations, "maximum of 2 passenger types are allowed")
	}
	for _, passenger := range options.Passengers {
		if passenger.Count < 1 || passenger.Count > 6 {
			violations = append(violations, "passenger count must be between 1 and 6")
		}
		if !passenger.BenefitID.Valid() {
			violations = append(violations, "invalid passenger benefit")
		}
	}

	switch options.Trip {
	case model.TripOneWay:
	case model.TripRoundTrip:
		returnDate, err := time.ParseInLocation("2006-01-02", options.Return.DepartureDate, now.Location())
		switch {
		case err != nil:
			violations = append(violations, "invalid return date")
		case returnDate.Before(today):
			violations = append(violations, "return date cannot be in the past")
		case !departureDate.IsZero() && returnDate.Before(departureDate):
			violations = append(violations, "return date cannot be before the departure date")
		}
	default:
		violations = append(violations, "invalid trip kind")
	}

	return violations
}
