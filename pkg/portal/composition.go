package portal

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"

	"github.com/hzpp/hzpp/pkg/cache"
	"github.com/hzpp/hzpp/pkg/model"
	"github.com/hzpp/hzpp/pkg/stations"
	"github.com/hzpp/hzpp/pkg/util"
	"github.com/hzpp/hzpp/pkg/validate"
)

// JourneyRouteSchedule resolves one search candidate into its full
// reconstructed trip. It replays the search to obtain fresh page tokens, posts
// the composition request the way the portal's own frontend does, and rebuilds
// the train segments from the detail table.
func (c *Client) JourneyRouteSchedule(ctx context.Context, options model.JourneyOptions, departureNumber string, tripType model.TripType) (*model.JourneyRouteSchedule, error) {
	searchData, err := c.searchJourneys(ctx, options)
	if err != nil {
		return nil, err
	}

	cacheKey := cache.Key(struct {
		model.JourneyOptions
		DepartureNumber string
		TripType        model.TripType
	}{options, departureNumber, tripType})

	if c.Cache != nil {
		var cached model.JourneyRouteSchedule
		if c.Cache.Get(ctx, cacheKey, &cached) {
			return &cached, nil
		}
	}

	form := url.Values{}
	form.Set("__RequestVerificationToken", searchData.CSRFToken)
	form.Set("StateForClient", searchData.StateForClient)
	form.Set("TripType", string(tripType))
	form.Set("DepartureNumber", departureNumber)

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoints.TransportationsURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	request.Header.Set("Referer", c.Endpoints.PortalURL)
	request.Header.Set("Cookie", searchData.Cookies)

	body, err := c.fetch(request, "invalid train ID or trip type")
	if err != nil {
		return nil, err
	}

	document, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse train composition data: %v", err)
	}

	directory, err := c.Directory.Stations(ctx)
	if err != nil {
		return nil, err
	}

	searchDate, err := time.ParseInLocation("2006-01-02", options.DepartureDate, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid departure date: %v", err)
	}

	trains := ReconstructComposition(document, searchDate, directory)
	if len(trains) == 0 || len(trains[0].Stations) == 0 {
		return nil, fmt.Errorf("failed to parse train composition data: no train segments")
	}

	schedule, err := assembleSchedule(document, trains, departureNumber, searchDate, directory)
	if err != nil {
		return nil, err
	}

	if violations := validate.Schedule(schedule); len(violations) > 0 {
		return nil, fmt.Errorf("failed to parse train composition data: %s", violations)
	}

	log.Debug().
		Str("departureNumber", departureNumber).
		Int("trains", len(schedule.Trains)).
		Msg("Reconstructed journey route schedule")

	if c.Cache != nil {
		c.Cache.Set(ctx, cacheKey, schedule)
	}

	return schedule, nil
}

// ReconstructComposition walks the composition table's stop rows and groups
// them back into the train segments the page flattened away. The grouping
// keys off the train-number column and the transfer-point row class; the
// searchDate anchors the bare clock values, rolling the day forward whenever a
// resolved time would run backwards.
func ReconstructComposition(document *goquery.Document, searchDate time.Time, directory []model.Station) []model.TrainDetails {
	var trains []model.TrainDetails
	var current *model.TrainDetails

	currentDate := searchDate
	var previousDeparture *time.Time

	document.Find("#trainDetailTable tbody tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() == 0 {
			return
		}

		name := strings.TrimSpace(cells.Eq(0).Text())
		arrivalValue := strings.TrimSpace(cells.Eq(1).Text())
		departureValue := strings.TrimSpace(cells.Eq(2).Text())
		lateValue := strings.TrimSpace(cells.Eq(3).Text())
		waitingValue := strings.TrimSpace(cells.Eq(4).Text())
		trainNumber := strings.TrimSpace(cells.Eq(5).Text())

		var featureTitles []string
		cells.Eq(6).Find("img").Each(func(_ int, img *goquery.Selection) {
			title := img.AttrOr("title", "")
			if title != "" {
				featureTitles = append(featureTitles, strings.TrimSpace(strings.SplitN(title, " - ", 2)[0]))
			}
		})

		isTransfer := row.HasClass("transfer-point")
		isEnd := row.HasClass("end-point")

		var stopType model.StopType
		switch {
		case isTransfer && arrivalValue != "":
			stopType = model.StopTypeTransfer
		case isTransfer:
			stopType = model.StopTypeStartingPoint
		case isEnd:
			stopType = model.StopTypeDestination
		default:
			stopType = model.StopTypeIntermediate
		}

		// A transfer row with an arrival belongs to the train being boarded,
		// so it opens a segment just like a train-number change does.
		newSegment := current == nil ||
			current.TrainNumber != trainNumber ||
			(isTransfer && arrivalValue != "")

		if newSegment {
			if current != nil {
				trains = append(trains, *current)
			}

			current = &model.TrainDetails{
				Index:       len(trains),
				TrainNumber: trainNumber,
				Features:    model.FeaturesFromTitles(featureTitles),
			}

			// The segment's arrival is anchored on the prior segment's last
			// event, so it resolves before this segment's own departure
			// advances the reference date.
			if arrivalValue != "" {
				current.ShouldArriveAt = util.ResolveClockTime(currentDate, arrivalValue, previousDeparture)
			}

			if !isEnd && departureValue != "" {
				current.ShouldDepartAt = util.ResolveClockTime(currentDate, departureValue, previousDeparture)
				if current.ShouldDepartAt != nil {
					previousDeparture = current.ShouldDepartAt
					currentDate = *previousDeparture
				}
			}
		}

		var arrivalTime *time.Time
		if stopType != model.StopTypeStartingPoint && arrivalValue != "" {
			arrivalTime = util.ResolveClockTime(currentDate, arrivalValue, previousDeparture)
		}

		var departureTime *time.Time
		if stopType != model.StopTypeDestination && departureValue != "" {
			departureTime = util.ResolveClockTime(currentDate, departureValue, previousDeparture)
		}

		stationID := ""
		if matched := stations.MatchName(directory, name); matched != nil {
			stationID = matched.ID
		}

		current.Stations = append(current.Stations, model.ScheduledStop{
			Index:         len(current.Stations),
			Name:          name,
			StationID:     stationID,
			Type:          stopType,
			ArrivalTime:   arrivalTime,
			DepartureTime: departureTime,
			WaitingTime:   waitingValue,
			LateTime:      lateValue,
		})

		if departureTime != nil {
			previousDeparture = departureTime
			currentDate = *departureTime
		}

		// The final row carries the run's true arrival, resolved only now
		// that the reference date has advanced through the whole run.
		if isEnd && arrivalValue != "" {
			current.ShouldArriveAt = util.ResolveClockTime(currentDate, arrivalValue, previousDeparture)
		}
	})

	if current != nil {
		trains = append(trains, *current)
	}

	return trains
}

func assembleSchedule(document *goquery.Document, trains []model.TrainDetails, departureNumber string, searchDate time.Time, directory []model.Station) (*model.JourneyRouteSchedule, error) {
	firstTrain := trains[0]
	lastTrain := trains[len(trains)-1]

	if len(firstTrain.Stations) == 0 || len(lastTrain.Stations) == 0 {
		return nil, fmt.Errorf("failed to parse train composition data: empty train segment")
	}

	firstStop := firstTrain.Stations[0]
	lastStop := lastTrain.Stations[len(lastTrain.Stations)-1]

	fromStation := firstStop.Name
	if matched := stations.MatchName(directory, firstStop.Name); firstStop.StationID != "" && matched != nil {
		fromStation = matched.Name
	}

	toStation := lastStop.Name
	if matched := stations.MatchName(directory, lastStop.Name); lastStop.StationID != "" && matched != nil {
		toStation = matched.Name
	}

	shouldStartAt := searchDate
	if firstTrain.ShouldDepartAt != nil {
		shouldStartAt = *firstTrain.ShouldDepartAt
	}

	shouldEndAt := searchDate
	if lastTrain.ShouldArriveAt != nil {
		shouldEndAt = *lastTrain.ShouldArriveAt
	}

	totalDuration := strings.TrimSpace(document.Find(".disclaimer-content.col-1-2 span").First().Text())

	transferMinutes := 0
	for _, train := range trains {
		for _, stop := range train.Stations {
			if stop.WaitingTime != "" {
				transferMinutes += util.MinutesFromHHMM(stop.WaitingTime)
			}
		}
	}

	return &model.JourneyRouteSchedule{
		DepartureNumber:  departureNumber,
		FromStation:      fromStation,
		ToStation:        toStation,
		ShouldStartAt:    shouldStartAt,
		ShouldEndAt:      shouldEndAt,
		Trains:           trains,
		TotalDuration:    totalDuration,
		TransferDuration: util.FormatMinutes(transferMinutes),
	}, nil
}
