package livestatus

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"

	"github.com/hzpp/hzpp/pkg/model"
	"github.com/hzpp/hzpp/pkg/util"
)

// ShouldFetch decides whether live info is worth requesting for a train.
// Arrived trains are never fetched. A deviation window of -1 disables the
// gate entirely; otherwise the scheduled departure must fall within the
// window around now and the train must not already have departed.
func ShouldFetch(train model.TrainDetails, now time.Time, deviationMinutes int) bool {
	hasDeparted := train.ShouldDepartAt != nil && train.ShouldDepartAt.Before(now)
	hasArrived := train.ShouldArriveAt != nil && train.ShouldArriveAt.Before(now)

	if hasArrived {
		return false
	}
	if deviationMinutes == -1 {
		return true
	}
	if train.ShouldDepartAt == nil || hasDeparted {
		return false
	}

	window := time.Duration(deviationMinutes) * time.Minute
	gap := train.ShouldDepartAt.Sub(now)
	if gap < 0 {
		gap = -gap
	}

	return gap <= window
}

// Merge decorates every train in the list with its live snapshot where one is
// wanted and available. Distinct train numbers are fetched once concurrently
// and the result is broadcast to every run of that train; a failed fetch
// leaves its trains undecorated.
func (c *Client) Merge(ctx context.Context, trains []model.TrainDetails, now time.Time, deviationMinutes int) []model.ExtendedTrainDetails {
	var wanted []string
	for _, train := range trains {
		if ShouldFetch(train, now, deviationMinutes) {
			wanted = append(wanted, train.TrainNumber)
		}
	}
	wanted = util.RemoveDuplicateStrings(wanted, nil)

	fetchPool := pool.NewWithResults[*model.TrainInfo]()
	for _, trainNumber := range wanted {
		trainNumber := trainNumber
		fetchPool.Go(func() *model.TrainInfo {
			info, err := c.TrainInfo(ctx, trainNumber)
			if err != nil {
				log.Debug().Err(err).Str("trainNumber", trainNumber).Msg("Failed to fetch live train info")
				return nil
			}

			return info
		})
	}

	infoByNumber := map[string]*model.TrainInfo{}
	for _, info := range fetchPool.Wait() {
		if info != nil {
			infoByNumber[info.TrainNumber] = info
		}
	}

	extended := make([]model.ExtendedTrainDetails, len(trains))
	for i, train := range trains {
		extended[i] = model.ExtendedTrainDetails{
			TrainDetails: train,
			TrainInfo:    infoByNumber[train.TrainNumber],
		}
	}

	return extended
}
