package journeyplan

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/hzpp/hzpp/pkg/model"
)

func validOptions() model.JourneyOptions {
	return model.JourneyOptions{
		Trip:          model.TripOneWay,
		StartID:       "72480",
		DestID:        "75248",
		Class:         model.ClassSecond,
		TrainType:     model.TrainTypeAll,
		DepartureDate: "2030-06-01",
	}
}

func TestValidateOptions(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.Local)

	tests := []struct {
		name      string
		mutate    func(*model.JourneyOptions)
		violation string
	}{
		{
			name:   "valid one-way",
			mutate: func(o *model.JourneyOptions) {},
		},
		{
			name: "valid round trip",
			mutate: func(o *model.JourneyOptions) {
				o.Trip = model.TripRoundTrip
				o.Return = model.ReturnLeg{FromID: "75248", DepartureDate: "2030-06-08"}
			},
		},
		{
			name: "valid departure today",
			mutate: func(o *model.JourneyOptions) {
				o.DepartureDate = "2026-08-31"
				o.DepartureTime = "23:00"
			},
		},
		{
			name:      "missing start",
			mutate:    func(o *model.JourneyOptions) { o.StartID = "" },
			violation: "start station is required",
		},
		{
			name:      "same start and destination",
			mutate:    func(o *model.JourneyOptions) { o.DestID = o.StartID },
			violation: "start and destination stations cannot be the same",
		},
		{
			name:      "invalid class",
			mutate:    func(o *model.JourneyOptions) { o.Class = 3 },
			violation: "invalid class, expected 1 or 2",
		},
		{
			name:      "invalid train type",
			mutate:    func(o *model.JourneyOptions) { o.TrainType = 7 },
			violation: "invalid train type, expected 0 or 1",
		},
		{
			name:      "malformed date",
			mutate:    func(o *model.JourneyOptions) { o.DepartureDate = "01.06.2030" },
			violation: "invalid departure date",
		},
		{
			name:      "past date",
			mutate:    func(o *model.JourneyOptions) { o.DepartureDate = "2026-08-30" },
			violation: "departure date cannot be in the past",
		},
		{
			name:      "malformed time",
			mutate:    func(o *model.JourneyOptions) { o.DepartureTime = "quarter past" },
			violation: "invalid departure time",
		},
		{
			name: "too many passenger groups",
			mutate: func(o *model.JourneyOptions) {
				o.Passengers = []model.PassengerCount{{Count: 1}, {Count: 1}, {Count: 1}}
			},
			violation: "maximum of 2 passenger types are allowed",
		},
		{
			name: "too many passengers in a group",
			mutate: func(o *model.JourneyOptions) {
				o.Passengers = []model.PassengerCount{{Count: 7}}
			},
			violation: "passenger count must be between 1 and 6",
		},
		{
			name: "unknown benefit",
			mutate: func(o *model.JourneyOptions) {
				o.Passengers = []model.PassengerCount{{Count: 1, BenefitID: 42}}
			},
			violation: "invalid passenger benefit",
		},
		{
			name: "return before outward",
			mutate: func(o *model.JourneyOptions) {
				o.Trip = model.TripRoundTrip
				o.Return = model.ReturnLeg{FromID: "75248", DepartureDate: "2030-05-01"}
			},
			violation: "return date cannot be before the departure date",
		},
		{
			name: "round trip without return date",
			mutate: func(o *model.JourneyOptions) {
				o.Trip = model.TripRoundTrip
			},
			violation: "invalid return date",
		},
		{
			name:      "unknown trip kind",
			mutate:    func(o *model.JourneyOptions) { o.Trip = 9 },
			violation: "invalid trip kind",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			options := validOptions()
			tc.mutate(&options)

			violations := ValidateOptions(options, now)
			if tc.violation == "" {
				assert.Empty(t, violations)
			} else {
				assert.Contains(t, violations, tc.violation)
			}
		})
	}
}
