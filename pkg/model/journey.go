package model

import "time"

// JourneyTimetable is one candidate in the outward/return search-results
// table. DepartureNumber identifies the service within its own table only.
type JourneyTimetable struct {
	DepartureTime   time.Time `groups:"basic"`
	DepartureNumber string    `groups:"basic"`
	ArrivalTime     time.Time `groups:"basic"`

	Duration  string  `groups:"basic"`
	Transfers int     `groups:"basic"`
	Price     float64 `groups:"basic"`

	HasWarning bool `groups:"detailed"`
}

// JourneyRoutes holds the candidate lists for both legs of a search.
// ReturnJourneys is nil for one-way searches.
type JourneyRoutes struct {
	OutwardJourneys []JourneyTimetable `groups:"basic"`
	ReturnJourneys  []JourneyTimetable `groups:"basic" json:",omitempty"`
}

// JourneyRouteSchedule is the fully reconstructed trip for one chosen
// candidate: every train run in travel order plus aggregate timing.
type JourneyRouteSchedule struct {
	DepartureNumber string `groups:"basic"`

	FromStation string `groups:"basic"`
	ToStation   string `groups:"basic"`

	ShouldStartAt time.Time `groups:"basic"`
	ShouldEndAt   time.Time `groups:"basic"`

	Trains []TrainDetails `groups:"basic"`

	// TotalDuration is read verbatim from the page summary, empty if absent.
	TotalDuration string `groups:"basic" json:",omitempty"`
	// TransferDuration is the HH:mm sum of all inter-segment waiting time.
	TransferDuration string `groups:"basic" json:",omitempty"`
}

// ExtendedJourneyRouteSchedule is a JourneyRouteSchedule whose trains carry
// live tracking info where it was available.
type ExtendedJourneyRouteSchedule struct {
	DepartureNumber string `groups:"basic"`

	FromStation string `groups:"basic"`
	ToStation   string `groups:"basic"`

	ShouldStartAt time.Time `groups:"basic"`
	ShouldEndAt   time.Time `groups:"basic"`

	Trains []ExtendedTrainDetails `groups:"basic"`

	TotalDuration    string `groups:"basic" json:",omitempty"`
	TransferDuration string `groups:"basic" json:",omitempty"`
}

// Schedule returns the plain schedule view, dropping live info.
func (s *ExtendedJourneyRouteSchedule) Schedule() JourneyRouteSchedule {
	trains := make([]TrainDetails, len(s.Trains))
	for i, train := range s.Trains {
		trains[i] = train.TrainDetails
	}

	return JourneyRouteSchedule{
		DepartureNumber:  s.DepartureNumber,
		FromStation:      s.FromStation,
		ToStation:        s.ToStation,
		ShouldStartAt:    s.ShouldStartAt,
		ShouldEndAt:      s.ShouldEndAt,
		Trains:           trains,
		TotalDuration:    s.TotalDuration,
		TransferDuration: s.TransferDuration,
	}
}

// ExtendedJourney pairs a search candidate with its live-enriched schedule.
type ExtendedJourney struct {
	Details  JourneyTimetable             `groups:"basic"`
	Schedule ExtendedJourneyRouteSchedule `groups:"basic"`
}

// ExtendedJourneyRoutes is the batch result of resolving every distinct
// candidate of a search into a live-enriched schedule.
type ExtendedJourneyRoutes struct {
	OutwardJourneys []ExtendedJourney `groups:"basic"`
	ReturnJourneys  []ExtendedJourney `groups:"basic" json:",omitempty"`
}
