package model

type Class int

const (
	ClassFirst  Class = 1
	ClassSecond Class = 2
)

type TrainType int

const (
	TrainTypeDirect TrainType = 0
	TrainTypeAll    TrainType = 1
)

// Discount values are the portal's benefit IDs.
type Discount int

const (
	DiscountNone                 Discount = 0
	DiscountRegularSingle        Discount = 11 // one-way tickets only
	DiscountRegularReturn        Discount = 12 // return tickets only
	DiscountChildAge6To12        Discount = 13
	DiscountJournalists          Discount = 27
	DiscountPensionersAndSeniors Discount = 28
	DiscountYouthAgeTo26         Discount = 29
	DiscountStudent              Discount = 75
)

func (d Discount) Valid() bool {
	switch d {
	case DiscountNone, DiscountRegularSingle, DiscountRegularReturn,
		DiscountChildAge6To12, DiscountJournalists, DiscountPensionersAndSeniors,
		DiscountYouthAgeTo26, DiscountStudent:
		return true
	}
	return false
}

// TripType selects which leg of a search result a composition request refers
// to. The values are sent verbatim in the portal's form data.
type TripType string

const (
	TripTypeOutward TripType = "Outward"
	TripTypeReturn  TripType = "Return"
)

type TrainStatus int

const (
	TrainStatusOnTime TrainStatus = iota
	TrainStatusWaitingDeparture
	TrainStatusDelayed
	TrainStatusUnknown
)

func (s TrainStatus) String() string {
	switch s {
	case TrainStatusOnTime:
		return "OnTime"
	case TrainStatusWaitingDeparture:
		return "WaitingDeparture"
	case TrainStatusDelayed:
		return "Delayed"
	}
	return "Unknown"
}

type TrainState int

const (
	TrainStateArrival TrainState = iota
	TrainStateDeparture
	TrainStateFinished
	TrainStateFormed
	TrainStateUnknown
)

func (s TrainState) String() string {
	switch s {
	case TrainStateArrival:
		return "Arrival"
	case TrainStateDeparture:
		return "Departure"
	case TrainStateFinished:
		return "Finished"
	case TrainStateFormed:
		return "Formed"
	}
	return "Unknown"
}

// StopType classifies a row of the train-composition table.
type StopType int

const (
	StopTypeStartingPoint StopType = iota
	StopTypeDestination
	StopTypeIntermediate
	StopTypeTransfer
)

func (s StopType) String() string {
	switch s {
	case StopTypeStartingPoint:
		return "StartingPoint"
	case StopTypeDestination:
		return "Destination"
	case StopTypeIntermediate:
		return "Intermediate"
	case StopTypeTransfer:
		return "Transfer"
	}
	return "Unknown"
}
