// Package livestatus fetches and parses the live train delay pages and merges
// the snapshots into reconstructed schedules. Live info is best effort: a
// failed fetch for one train never fails the schedule it decorates.
package livestatus

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/hzpp/hzpp/pkg/model"
	"github.com/hzpp/hzpp/pkg/stations"
	"github.com/hzpp/hzpp/pkg/validate"
)

// ErrMissingAuthToken is returned before any network traffic when no bearer
// token is configured for the delay service.
var ErrMissingAuthToken = errors.New("auth token is required to fetch train info")

var (
	lateMinutesRegex = regexp.MustCompile(`kasni\s+(\d+)\s+min`)
	stateTimeRegex   = regexp.MustCompile(`(\d{2}\.\d{2}\.\d{2})\s+(\d{2}:\d{2})`)
)

// Client fetches live snapshots from the delay service.
type Client struct {
	HTTP      *http.Client
	URL       string
	AuthToken string
	Directory *stations.Directory
}

func NewClient(statusURL string, authToken string, directory *stations.Directory) *Client {
	return &Client{
		HTTP:      http.DefaultClient,
		URL:       statusURL,
		AuthToken: authToken,
		Directory: directory,
	}
}

// TrainInfo fetches the live snapshot for one train number.
func (c *Client) TrainInfo(ctx context.Context, trainNumber string) (*model.TrainInfo, error) {
	if c.AuthToken == "" {
		return nil, ErrMissingAuthToken
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL+"?trainId="+url.QueryEscape(trainNumber), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch data: %v", err)
	}
	request.Header.Set("Authorization", "Bearer "+c.AuthToken)

	response, err := c.HTTP.Do(request)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch data: %v", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch data: status %d", response.StatusCode)
	}

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch data: %v", err)
	}

	// The delay service has its own phrasing for unknown trains on top of
	// the shared portal error marker.
	page := string(body)
	if strings.Contains(page, stations.ErrorMarker) || strings.Contains(page, "ne mozemo dati trazenu informaciju") {
		return nil, fmt.Errorf("invalid train ID or auth token")
	}

	document, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("failed to parse train info data: %v", err)
	}

	info := parseTrainInfo(document, trainNumber, time.Now())

	if currentStationName := document.Find(`i:contains("Kolodvor")`).NextFiltered("strong").Text(); currentStationName != "" {
		info.CurrentStation, _ = c.Directory.Match(ctx, strings.TrimSpace(currentStationName))
	}

	if violations := validate.TrainInfo(info); len(violations) > 0 {
		return nil, fmt.Errorf("failed to parse train info data: %s", violations)
	}

	return info, nil
}

// parseTrainInfo extracts state, status, delay and timestamp from the page
// text. now is the fallback timestamp when the state line carries none.
func parseTrainInfo(document *goquery.Document, trainNumber string, now time.Time) *model.TrainInfo {
	info := &model.TrainInfo{
		TrainNumber: trainNumber,
		State:       model.TrainStateUnknown,
		Status:      model.TrainStatusUnknown,
		AtTime:      now,
	}

	info.IsReplacementBus = document.Find(`i:contains("autobus")`).Length() > 0

	statusLine := strings.ToLower(strings.TrimSpace(document.Find(
		`font:contains("redovit"), font:contains("Kasni"), font:contains("polazak")`,
	).First().Text()))

	stateText := strings.ToLower(strings.TrimSpace(document.Find(
		`font:contains("Završio"), font:contains("Odlazak"), font:contains("Dolazak"), font:contains("Formiran")`,
	).First().Text()))

	switch {
	case strings.Contains(stateText, "završio"):
		info.State = model.TrainStateFinished
	case strings.Contains(stateText, "odlazak"):
		info.State = model.TrainStateDeparture
	case strings.Contains(stateText, "dolazak"):
		info.State = model.TrainStateArrival
	case strings.Contains(stateText, "formiran"):
		info.State = model.TrainStateFormed
	}

	switch {
	case strings.Contains(statusLine, "redovit"):
		info.Status = model.TrainStatusOnTime
	case strings.Contains(statusLine, "polazak"):
		info.Status = model.TrainStatusWaitingDeparture
	case strings.Contains(statusLine, "kasni"):
		info.Status = model.TrainStatusDelayed
		if match := lateMinutesRegex.FindStringSubmatch(statusLine); match != nil {
			info.LateMinutes, _ = strconv.Atoi(match[1])
		}
	}

	if match := stateTimeRegex.FindStringSubmatch(stateText); match != nil {
		if atTime, err := time.ParseInLocation("02.01.06 15:04", match[1]+" "+match[2], now.Location()); err == nil {
			info.AtTime = atTime
		}
	}

	return info
}
