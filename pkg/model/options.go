package model

// TripKind is the discriminant between a one-way and a round-trip search.
type TripKind int

const (
	TripOneWay TripKind = iota
	TripRoundTrip
)

// PassengerCount is one passenger group: how many travellers and which
// benefit (discount) applies to them.
type PassengerCount struct {
	Count     int      `groups:"basic" yaml:"count"`
	BenefitID Discount `groups:"basic" yaml:"benefit_id"`
}

// ReturnLeg is the round-trip half of a search. It is only consulted when
// JourneyOptions.Trip is TripRoundTrip.
type ReturnLeg struct {
	FromID        string `groups:"basic" yaml:"from_id"`
	DepartureDate string `groups:"basic" yaml:"departure_date"`
	Bicycle       bool   `groups:"basic" yaml:"bicycle"`
}

// JourneyOptions are the journey search criteria. Trip selects between the
// one-way payload (always present) and the additional Return payload; all
// downstream logic switches on Trip rather than probing optional fields.
type JourneyOptions struct {
	Trip TripKind `groups:"basic" yaml:"trip"`

	StartID string `groups:"basic" yaml:"start_id"`
	DestID  string `groups:"basic" yaml:"dest_id"`
	ViaID   string `groups:"basic" json:",omitempty" yaml:"via_id"`

	Class     Class     `groups:"basic" yaml:"class"`
	TrainType TrainType `groups:"basic" yaml:"train_type"`

	// DepartureDate is YYYY-MM-DD; DepartureTime is HH:mm, with the empty
	// string meaning "now". The portal search query has no time parameter,
	// so a set time constrains validation but not the search itself.
	DepartureDate string `groups:"basic" yaml:"departure_date"`
	DepartureTime string `groups:"basic" yaml:"departure_time"`

	Passengers []PassengerCount `groups:"basic" yaml:"passengers"`
	Bicycle    bool             `groups:"basic" yaml:"bicycle"`

	Return ReturnLeg `groups:"basic" yaml:"return"`
}
