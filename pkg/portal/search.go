package portal

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"

	"github.com/hzpp/hzpp/pkg/cache"
	"github.com/hzpp/hzpp/pkg/model"
	"github.com/hzpp/hzpp/pkg/util"
	"github.com/hzpp/hzpp/pkg/validate"
)

// searchData is a search result plus the page state needed to request a
// composition for one of its candidates. It is cached as a unit so a
// follow-up composition call can replay the tokens and session cookie.
type searchData struct {
	Routes model.JourneyRoutes

	CSRFToken      string
	StateForClient string
	Cookies        string
}

// JourneyRoutes runs a journey search and extracts the outward (and, for
// round trips, return) candidate tables.
func (c *Client) JourneyRoutes(ctx context.Context, options model.JourneyOptions) (*model.JourneyRoutes, error) {
	data, err := c.searchJourneys(ctx, options)
	if err != nil {
		return nil, err
	}

	routes := data.Routes
	return &routes, nil
}

func (c *Client) searchJourneys(ctx context.Context, options model.JourneyOptions) (*searchData, error) {
	cacheKey := cache.Key(options)
	if c.Cache != nil {
		var cached searchData
		if c.Cache.Get(ctx, cacheKey, &cached) {
			return &cached, nil
		}
	}

	searchURL, departureDate, err := c.buildSearchURL(options)
	if err != nil {
		return nil, err
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	response, err := c.HTTP.Do(request)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrFetchFailed, response.StatusCode)
	}

	body, err := readBody(response)
	if err != nil {
		return nil, err
	}

	if containsErrorMarker(body) {
		return nil, fmt.Errorf("%w: invalid journey data", ErrSiteError)
	}

	document, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse journey data: %v", err)
	}

	csrfToken := document.Find("input[name=__RequestVerificationToken]").AttrOr("value", "")
	stateForClient := document.Find("input[name=StateForClient]").AttrOr("value", "")
	if csrfToken == "" || stateForClient == "" {
		return nil, fmt.Errorf("failed to parse journey data: missing CSRF token or state value")
	}

	outward, err := c.extractTimetable(document, "#outwardJourneyTableContainer", departureDate)
	if err != nil {
		return nil, err
	}

	returning, err := c.extractTimetable(document, "#returnJourneyTableContainer", departureDate)
	if err != nil {
		return nil, err
	}

	if violations := validate.Timetables(outward); len(violations) > 0 {
		return nil, fmt.Errorf("failed to parse journey data: %s", violations)
	}
	if violations := validate.Timetables(returning); len(violations) > 0 {
		return nil, fmt.Errorf("failed to parse journey data: %s", violations)
	}

	data := &searchData{
		Routes: model.JourneyRoutes{
			OutwardJourneys: outward,
			ReturnJourneys:  returning,
		},
		CSRFToken:      csrfToken,
		StateForClient: stateForClient,
		Cookies:        sessionCookies(response),
	}

	log.Debug().
		Int("outward", len(outward)).
		Int("return", len(returning)).
		Str("start", options.StartID).
		Str("dest", options.DestID).
		Msg("Extracted journey search results")

	if c.Cache != nil {
		c.Cache.Set(ctx, cacheKey, data)
	}

	return data, nil
}

// extractTimetable reads every candidate row of one search-results table. A
// row failing required-field extraction fails the whole fetch; partial lists
// are never returned.
func (c *Client) extractTimetable(document *goquery.Document, container string, departureDate time.Time) ([]model.JourneyTimetable, error) {
	var journeys []model.JourneyTimetable
	var rowErr error

	document.Find(container + " .item.row").EachWithBreak(func(i int, row *goquery.Selection) bool {
		journey, err := parseTimetableRow(row, departureDate)
		if err != nil {
			rowErr = fmt.Errorf("failed to parse journey data: row %d: %v", i, err)
			return false
		}

		journeys = append(journeys, journey)
		return true
	})

	return journeys, rowErr
}

func parseTimetableRow(row *goquery.Selection, departureDate time.Time) (model.JourneyTimetable, error) {
	cells := row.Find(".cell")

	departureValue := strings.TrimSpace(cells.Eq(0).Text())
	departureTime, err := util.CombineDateTime(departureDate, departureValue)
	if err != nil {
		return model.JourneyTimetable{}, fmt.Errorf("departure time: %v", err)
	}

	durationValue := strings.TrimSpace(cells.Eq(3).Text())
	durationMinutes := util.MinutesFromHHMM(durationValue)

	arrivalValue := strings.TrimSpace(cells.Eq(2).Text())
	arrivalTime, err := util.CombineDateTime(departureDate, arrivalValue)
	if err != nil {
		return model.JourneyTimetable{}, fmt.Errorf("arrival time: %v", err)
	}

	// The arrival cell only prints a clock time. When the printed duration
	// puts the arrival on the next calendar day, shift it.
	calculatedArrival := departureTime.Add(time.Duration(durationMinutes) * time.Minute)
	if calculatedArrival.Day() != departureTime.Day() && arrivalTime.Before(departureTime) {
		arrivalTime = arrivalTime.AddDate(0, 0, 1)
	}

	transfers, err := strconv.Atoi(strings.TrimSpace(cells.Eq(4).Text()))
	if err != nil {
		return model.JourneyTimetable{}, fmt.Errorf("transfers: %v", err)
	}

	price, err := parsePrice(cells.Eq(5).Text())
	if err != nil {
		return model.JourneyTimetable{}, fmt.Errorf("price: %v", err)
	}

	return model.JourneyTimetable{
		DepartureTime:   departureTime,
		DepartureNumber: strings.TrimSpace(cells.Eq(1).Find("a").Text()),
		ArrivalTime:     arrivalTime,
		Duration:        durationValue,
		Transfers:       transfers,
		Price:           price,
		HasWarning:      cells.Eq(5).Find(".warningIcon").Length() > 0,
	}, nil
}

// parsePrice normalizes the portal's locale-formatted price ("12,40 €") to a
// plain number.
func parsePrice(text string) (float64, error) {
	cleaned := strings.NewReplacer("€", "", ",", ".", " ", " ").Replace(text)

	return strconv.ParseFloat(strings.TrimSpace(cleaned), 64)
}

// buildSearchURL encodes the search criteria as the portal's query
// parameters, switching on the trip discriminant for the return leg.
func (c *Client) buildSearchURL(options model.JourneyOptions) (string, time.Time, error) {
	departureDate, err := time.ParseInLocation("2006-01-02", options.DepartureDate, time.Local)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("invalid departure date: %v", err)
	}

	searchURL, err := url.Parse(c.Endpoints.PortalURL)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	query := searchURL.Query()
	query.Set("StartId", options.StartID)
	query.Set("DestId", options.DestID)
	query.Set("Class", strconv.Itoa(int(options.Class)))
	query.Set("DepartureDate", options.DepartureDate)

	if options.ViaID != "" {
		query.Set("ViaId", options.ViaID)
	}

	if options.TrainType == model.TrainTypeDirect {
		query.Set("DirectTrains", "True")
	} else {
		query.Set("DirectTrains", "False")
	}

	for i, passenger := range options.Passengers {
		if i >= 2 {
			break
		}

		ordinal := strconv.Itoa(i + 1)
		query.Set("Passenger"+ordinal+"Count", strconv.Itoa(passenger.Count))
		if passenger.BenefitID != model.DiscountNone {
			query.Set("Benefit"+ordinal+"Id", strconv.Itoa(int(passenger.BenefitID)))
		}
	}

	if options.Bicycle {
		query.Set("Bicycle", "True")
	}

	switch options.Trip {
	case model.TripRoundTrip:
		query.Set("ReturnTrip", "True")
		query.Set("ReturnFromId", options.Return.FromID)
		query.Set("ReturnDepartureDate", options.Return.DepartureDate)
		if options.Return.Bicycle {
			query.Set("ReturnBicycle", "True")
		}
	case model.TripOneWay:
	}

	searchURL.RawQuery = query.Encode()

	return searchURL.String(), departureDate, nil
}

// sessionCookies collapses the response's Set-Cookie headers into a single
// Cookie header value for the follow-up composition request.
func sessionCookies(response *http.Response) string {
	var cookies []string
	for _, cookie := range response.Header.Values("Set-Cookie") {
		cookies = append(cookies, strings.SplitN(cookie, ";", 2)[0])
	}

	return strings.Join(cookies, "; ")
}
