package journeyplan

import (
	"time"

	"github.com/hzpp/hzpp/pkg/model"
)

// MaxDelay returns the largest late-minutes value reported across the
// enriched trains. The delay is treated as uniform for the whole journey.
func MaxDelay(trains []model.ExtendedTrainDetails) int {
	maxDelay := 0
	for _, train := range trains {
		if train.TrainInfo != nil && train.TrainInfo.LateMinutes > maxDelay {
			maxDelay = train.TrainInfo.LateMinutes
		}
	}

	return maxDelay
}

// DelayAdjusted shifts a scheduled timestamp by the journey's delay. A nil
// timestamp yields the zero time.
func DelayAdjusted(scheduled *time.Time, delayMinutes int) time.Time {
	if scheduled == nil {
		return time.Time{}
	}

	return scheduled.Add(time.Duration(delayMinutes) * time.Minute)
}

// CurrentTrain finds the enriched train whose delay-adjusted departure and
// arrival window contains now, or nil when the journey is between trains or
// outside its travel window.
func CurrentTrain(journey *model.ExtendedJourney, now time.Time) *model.ExtendedTrainDetails {
	delay := MaxDelay(journey.Schedule.Trains)

	for i, train := range journey.Schedule.Trains {
		if train.TrainInfo == nil {
			continue
		}

		departure := DelayAdjusted(train.ShouldDepartAt, delay)
		arrival := DelayAdjusted(train.ShouldArriveAt, delay)

		if !now.Before(departure) && !now.After(arrival) {
			return &journey.Schedule.Trains[i]
		}
	}

	return nil
}

type journeyStation struct {
	id   string
	name string
}

// allJourneyStations flattens every train's stops into one deduplicated
// ordered sequence. Deduplication is by station ID, so all unmatched stops
// collapse into a single entry.
func allJourneyStations(journey *model.ExtendedJourney) []journeyStation {
	var stations []journeyStation
	seen := map[string]bool{}

	for _, train := range journey.Schedule.Trains {
		for _, stop := range train.Stations {
			if seen[stop.StationID] {
				continue
			}
			seen[stop.StationID] = true

			stations = append(stations, journeyStation{id: stop.StationID, name: stop.Name})
		}
	}

	return stations
}

// Percentage estimates 0-100 journey completion at the given time. When the
// current train reports a position that matches the journey's stop sequence,
// the estimate anchors on the station index plus a within-train time
// fraction; otherwise it interpolates over the delay-adjusted journey window.
func Percentage(journey *model.ExtendedJourney, now time.Time) float64 {
	delay := MaxDelay(journey.Schedule.Trains)

	current := CurrentTrain(journey, now)
	if current == nil || current.TrainInfo == nil || current.TrainInfo.CurrentStation == nil {
		return timeBasedPercentage(journey, now, delay)
	}

	stations := allJourneyStations(journey)

	stationIndex := -1
	for i, station := range stations {
		if station.id == current.TrainInfo.CurrentStation.ID {
			stationIndex = i
			break
		}
	}
	if stationIndex == -1 {
		return timeBasedPercentage(journey, now, delay)
	}

	stationPercentage := 0.0
	if len(stations) > 1 {
		stationPercentage = float64(stationIndex) / float64(len(stations)-1) * 100
	}

	departure := DelayAdjusted(current.ShouldDepartAt, delay)
	arrival := DelayAdjusted(current.ShouldArriveAt, delay)

	trainDuration := arrival.Sub(departure)
	elapsed := now.Sub(departure)

	segmentPercentage := 0.0
	if trainDuration > 0 && elapsed > 0 {
		segmentPercentage = min(100, float64(elapsed)/float64(trainDuration)*100)
	}

	return min(100, stationPercentage+segmentPercentage/float64(len(stations)))
}

func timeBasedPercentage(journey *model.ExtendedJourney, now time.Time, delayMinutes int) float64 {
	start := journey.Details.DepartureTime.Add(time.Duration(delayMinutes) * time.Minute)
	end := journey.Details.ArrivalTime.Add(time.Duration(delayMinutes) * time.Minute)

	if !now.After(start) {
		return 0
	}
	if !now.Before(end) {
		return 100
	}

	return min(100, float64(now.Sub(start))/float64(end.Sub(start))*100)
}
