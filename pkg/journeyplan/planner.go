package journeyplan

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"

	"github.com/hzpp/hzpp/pkg/config"
	"github.com/hzpp/hzpp/pkg/livestatus"
	"github.com/hzpp/hzpp/pkg/model"
	"github.com/hzpp/hzpp/pkg/portal"
)

// Planner ties the portal and delay clients together behind validated,
// schedule-level operations.
type Planner struct {
	Portal *portal.Client
	Live   *livestatus.Client
	Config config.Config
}

func NewPlanner(portalClient *portal.Client, liveClient *livestatus.Client, cfg config.Config) *Planner {
	return &Planner{
		Portal: portalClient,
		Live:   liveClient,
		Config: cfg,
	}
}

// JourneyRoutes validates the criteria and runs the search.
func (p *Planner) JourneyRoutes(ctx context.Context, options model.JourneyOptions) (*model.JourneyRoutes, error) {
	if violations := ValidateOptions(options, time.Now()); len(violations) > 0 {
		return nil, fmt.Errorf("invalid journey options: %s", violations)
	}

	return p.Portal.JourneyRoutes(ctx, options)
}

// RouteSchedule validates the criteria and reconstructs the full schedule for
// one search candidate.
func (p *Planner) RouteSchedule(ctx context.Context, options model.JourneyOptions, departureNumber string, tripType model.TripType) (*model.JourneyRouteSchedule, error) {
	if violations := ValidateOptions(options, time.Now()); len(violations) > 0 {
		return nil, fmt.Errorf("invalid journey options: %s", violations)
	}

	return p.Portal.JourneyRouteSchedule(ctx, options, departureNumber, tripType)
}

// ScheduleWithLiveInfo reconstructs a candidate's schedule and decorates its
// trains with live snapshots, subject to the configured departure window.
func (p *Planner) ScheduleWithLiveInfo(ctx context.Context, options model.JourneyOptions, departureNumber string, tripType model.TripType) (*model.ExtendedJourneyRouteSchedule, error) {
	if p.Config.AuthToken == "" {
		return nil, livestatus.ErrMissingAuthToken
	}

	schedule, err := p.RouteSchedule(ctx, options, departureNumber, tripType)
	if err != nil {
		return nil, err
	}

	trains := p.Live.Merge(ctx, schedule.Trains, time.Now(), p.Config.MinuteDeviationTrainInfo)

	return &model.ExtendedJourneyRouteSchedule{
		DepartureNumber:  schedule.DepartureNumber,
		FromStation:      schedule.FromStation,
		ToStation:        schedule.ToStation,
		ShouldStartAt:    schedule.ShouldStartAt,
		ShouldEndAt:      schedule.ShouldEndAt,
		Trains:           trains,
		TotalDuration:    schedule.TotalDuration,
		TransferDuration: schedule.TransferDuration,
	}, nil
}

// AllRouteSchedules resolves every distinct candidate of a search into a
// live-enriched schedule. Candidates sharing a departure number are resolved
// once; candidates whose resolution fails are dropped from the result rather
// than failing the batch.
func (p *Planner) AllRouteSchedules(ctx context.Context, options model.JourneyOptions) (*model.ExtendedJourneyRoutes, error) {
	routes, err := p.JourneyRoutes(ctx, options)
	if err != nil {
		return nil, err
	}

	return &model.ExtendedJourneyRoutes{
		OutwardJourneys: p.resolveCandidates(ctx, options, routes.OutwardJourneys, model.TripTypeOutward),
		ReturnJourneys:  p.resolveCandidates(ctx, options, routes.ReturnJourneys, model.TripTypeReturn),
	}, nil
}

func (p *Planner) resolveCandidates(ctx context.Context, options model.JourneyOptions, candidates []model.JourneyTimetable, tripType model.TripType) []model.ExtendedJourney {
	seen := map[string]bool{}
	var distinct []model.JourneyTimetable
	for _, candidate := range candidates {
		if seen[candidate.DepartureNumber] {
			continue
		}
		seen[candidate.DepartureNumber] = true
		distinct = append(distinct, candidate)
	}

	// Results land at their candidate's index so survivors keep search
	// order, whatever order the fetches finish in.
	results := make([]*model.ExtendedJourney, len(distinct))

	resolvePool := pool.New()
	for i, candidate := range distinct {
		i, candidate := i, candidate
		resolvePool.Go(func() {
			schedule, err := p.ScheduleWithLiveInfo(ctx, options, candidate.DepartureNumber, tripType)
			if err != nil {
				log.Debug().Err(err).
					Str("departureNumber", candidate.DepartureNumber).
					Msg("Failed to resolve journey candidate")
				return
			}

			results[i] = &model.ExtendedJourney{
				Details:  candidate,
				Schedule: *schedule,
			}
		})
	}
	resolvePool.Wait()

	var journeys []model.ExtendedJourney
	for _, journey := range results {
		if journey != nil {
			journeys = append(journeys, *journey)
		}
	}

	return journeys
}
