package model

import "time"

// Segment is either a TrainDetails ride or a TransferDetails leg in the
// flattened presentation view of a schedule.
type Segment interface {
	isSegment()
}

func (TrainDetails) isSegment()    {}
func (TransferDetails) isSegment() {}

// SegmentedJourneySchedule is a schedule with the train list replaced by a
// single ordered mix of rides and transfer legs, re-indexed from 1. It is a
// display form only; the train-indexed schedule remains canonical.
type SegmentedJourneySchedule struct {
	DepartureNumber string `groups:"basic"`

	FromStation string `groups:"basic"`
	ToStation   string `groups:"basic"`

	ShouldStartAt time.Time `groups:"basic"`
	ShouldEndAt   time.Time `groups:"basic"`

	Segments []Segment `groups:"basic"`

	TotalDuration    string `groups:"basic" json:",omitempty"`
	TransferDuration string `groups:"basic" json:",omitempty"`
}
