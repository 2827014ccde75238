package journeyplan

import (
	"sort"

	"github.com/hzpp/hzpp/pkg/model"
)

// ConvertToSegments flattens a train-indexed schedule into a single ordered
// mix of rides and transfer legs, re-indexed from 1. At most one transfer leg
// is emitted per boundary between adjacent trains: the next train's transfer
// stop wins when both trains mark the boundary.
func ConvertToSegments(schedule *model.JourneyRouteSchedule) *model.SegmentedJourneySchedule {
	trains := make([]model.TrainDetails, len(schedule.Trains))
	copy(trains, schedule.Trains)
	sort.Slice(trains, func(i, j int) bool {
		return trains[i].Index < trains[j].Index
	})

	var segments []model.Segment
	index := 1

	for i, train := range trains {
		train.Index = index
		index++
		segments = append(segments, train)

		if i == len(trains)-1 {
			continue
		}

		leg, ok := transferLegBetween(train, trains[i+1], schedule.TransferDuration)
		if !ok {
			continue
		}

		leg.Index = index
		index++
		segments = append(segments, leg)
	}

	return &model.SegmentedJourneySchedule{
		DepartureNumber:  schedule.DepartureNumber,
		FromStation:      schedule.FromStation,
		ToStation:        schedule.ToStation,
		ShouldStartAt:    schedule.ShouldStartAt,
		ShouldEndAt:      schedule.ShouldEndAt,
		Segments:         segments,
		TotalDuration:    schedule.TotalDuration,
		TransferDuration: schedule.TransferDuration,
	}
}

func transferLegBetween(current model.TrainDetails, next model.TrainDetails, fallbackDuration string) (model.TransferDetails, bool) {
	var stop *model.ScheduledStop

	if len(next.Stations) > 0 && next.Stations[0].Type == model.StopTypeTransfer {
		stop = &next.Stations[0]
	} else if len(current.Stations) > 0 && current.Stations[len(current.Stations)-1].Type == model.StopTypeTransfer {
		stop = &current.Stations[len(current.Stations)-1]
	}

	if stop == nil {
		return model.TransferDetails{}, false
	}

	duration := stop.WaitingTime
	if duration == "" {
		duration = fallbackDuration
	}

	return model.TransferDetails{
		TransferToTrain:   next.TrainNumber,
		TransferDuration:  duration,
		TransferStation:   stop.Name,
		TransferStationID: stop.StationID,
	}, true
}

// TrainsFromSegments filters the ride entries back out of a flattened
// sequence.
func TrainsFromSegments(segments []model.Segment) []model.TrainDetails {
	var trains []model.TrainDetails
	for _, segment := range segments {
		if train, ok := segment.(model.TrainDetails); ok {
			trains = append(trains, train)
		}
	}

	return trains
}
