package stations

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"

	"github.com/hzpp/hzpp/pkg/model"
	"github.com/hzpp/hzpp/pkg/validate"
)

// ErrorMarker is the substring the portal embeds in otherwise-200 error
// pages. A body containing it is treated the same as a failed request.
const ErrorMarker = "došlo je do pogreške"

// Directory is the canonical station list, scraped from the portal's journey
// page. It is loaded once and shared read-only; Refresh replaces the whole
// snapshot.
type Directory struct {
	PortalURL string
	Client    *http.Client

	mutex    sync.RWMutex
	stations []model.Station
}

func NewDirectory(portalURL string, client *http.Client) *Directory {
	if client == nil {
		client = http.DefaultClient
	}

	return &Directory{
		PortalURL: portalURL,
		Client:    client,
	}
}

// Stations returns the current snapshot, fetching it on first use.
func (d *Directory) Stations(ctx context.Context) ([]model.Station, error) {
	d.mutex.RLock()
	snapshot := d.stations
	d.mutex.RUnlock()

	if snapshot != nil {
		return snapshot, nil
	}

	return d.Refresh(ctx)
}

// ByID looks a station up by its canonical identifier. A missing station is
// not an error; the caller gets nil.
func (d *Directory) ByID(ctx context.Context, id string) (*model.Station, error) {
	stations, err := d.Stations(ctx)
	if err != nil {
		return nil, err
	}

	for _, station := range stations {
		if station.ID == id {
			return &station, nil
		}
	}

	return nil, nil
}

// Match fuzzy-matches a free-text station name against the directory.
func (d *Directory) Match(ctx context.Context, name string) (*model.Station, error) {
	stations, err := d.Stations(ctx)
	if err != nil {
		return nil, err
	}

	return MatchName(stations, name), nil
}

// Refresh re-fetches the directory from the portal and swaps the snapshot.
func (d *Directory) Refresh(ctx context.Context) ([]model.Station, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, d.PortalURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch data: %w", err)
	}

	response, err := d.Client.Do(request)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch data: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch data: status %d", response.StatusCode)
	}

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch data: %w", err)
	}

	if strings.Contains(string(body), ErrorMarker) {
		return nil, errors.New("invalid station data")
	}

	document, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch data: %w", err)
	}

	var stations []model.Station
	document.Find("#StartId option").Each(func(_ int, option *goquery.Selection) {
		id := option.AttrOr("value", "")
		name := strings.TrimSpace(option.Text())

		if id != "" && name != "" {
			stations = append(stations, model.Station{ID: id, Name: name})
		}
	})

	if violations := validate.Stations(stations); len(violations) > 0 {
		return nil, fmt.Errorf("failed to parse station data: %s", violations)
	}

	d.mutex.Lock()
	d.stations = stations
	d.mutex.Unlock()

	log.Debug().Int("stations", len(stations)).Msg("Refreshed station directory")

	return stations, nil
}
