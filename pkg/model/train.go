package model

import "time"

// ScheduledStop is one row of the train-composition table, attributed to the
// train segment it belongs to. Arrival is absent at the segment's starting
// point and departure is absent at the destination; StationID is empty when
// the free-text name could not be matched against the station directory.
type ScheduledStop struct {
	Index     int    `groups:"basic"`
	Name      string `groups:"basic"`
	StationID string `groups:"basic" json:",omitempty"`

	ArrivalTime   *time.Time `groups:"basic" json:",omitempty"`
	DepartureTime *time.Time `groups:"basic" json:",omitempty"`

	WaitingTime string `groups:"detailed" json:",omitempty"`
	LateTime    string `groups:"detailed" json:",omitempty"`

	Type StopType `groups:"basic"`
}

// TrainDetails is one physical train run within a journey.
type TrainDetails struct {
	Index       int    `groups:"basic"`
	TrainNumber string `groups:"basic"`

	ShouldDepartAt *time.Time `groups:"basic" json:",omitempty"`
	ShouldArriveAt *time.Time `groups:"basic" json:",omitempty"`

	Features []TrainFeature  `groups:"detailed" json:",omitempty"`
	Stations []ScheduledStop `groups:"basic"`
}

// ExtendedTrainDetails is a TrainDetails with live tracking info attached.
// TrainInfo is nil when live info was not fetched or the fetch failed.
type ExtendedTrainDetails struct {
	TrainDetails `groups:"basic"`

	TrainInfo *TrainInfo `groups:"basic" json:",omitempty"`
}

// TrainInfo is the live position/delay snapshot for one train.
type TrainInfo struct {
	TrainNumber    string   `groups:"basic"`
	CurrentStation *Station `groups:"basic" json:",omitempty"`

	IsReplacementBus bool `groups:"basic"`

	// AtTime is the departure/formed/finished timestamp embedded in the state
	// text, or the fetch time when the page does not carry one.
	AtTime      time.Time `groups:"basic"`
	LateMinutes int       `groups:"basic" json:",omitempty"`

	State  TrainState  `groups:"basic"`
	Status TrainStatus `groups:"basic"`
}

// TransferDetails is a synthetic segment between two train runs that share a
// physical transfer stop.
type TransferDetails struct {
	Index           int    `groups:"basic"`
	TransferToTrain string `groups:"basic"`
	// TransferDuration is the shared stop's waiting time, or the schedule's
	// aggregate transfer duration when the stop does not carry one.
	TransferDuration string `groups:"basic" json:",omitempty"`

	TransferStation   string `groups:"basic"`
	TransferStationID string `groups:"basic" json:",omitempty"`
}
