package portal

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hzpp/hzpp/pkg/config"
	"github.com/hzpp/hzpp/pkg/model"
	"github.com/hzpp/hzpp/pkg/stations"
)

var compositionDirectory = []model.Station{
	{ID: "72480", Name: "Zagreb Glavni kolodvor"},
	{ID: "72444", Name: "Dugo Selo"},
	{ID: "73158", Name: "Koprivnica"},
	{ID: "73405", Name: "Križevci"},
}

func compositionDocument(t *testing.T, rows string) *goquery.Document {
	t.Helper()

	document, err := goquery.NewDocumentFromReader(strings.NewReader(
		`<html><body><table id="trainDetailTable"><tbody>` + rows + `</tbody></table></body></html>`,
	))
	require.NoError(t, err)

	return document
}

const singleTrainRows = `
<tr class="transfer-point">
	<td>Zagreb Glavni kolodvor</td><td></td><td>14:00</td><td></td><td></td><td>2002</td>
	<td><img title="Vagoni drugog razreda - opis" /></td>
</tr>
<tr>
	<td>Dugo Selo</td><td>14:20</td><td>14:21</td><td></td><td></td><td>2002</td><td></td>
</tr>
<tr class="end-point">
	<td>Koprivnica</td><td>15:10</td><td></td><td></td><td></td><td>2002</td><td></td>
</tr>`

func TestReconstructCompositionSingleTrain(t *testing.T) {
	searchDate := time.Date(2024, 6, 1, 0, 0, 0, 0, time.Local)
	document := compositionDocument(t, singleTrainRows)

	trains := ReconstructComposition(document, searchDate, compositionDirectory)
	require.Len(t, trains, 1)

	train := trains[0]
	assert.Equal(t, 0, train.Index)
	assert.Equal(t, "2002", train.TrainNumber)
	assert.Equal(t, []model.TrainFeature{model.FeatureSecondClass}, train.Features)

	require.NotNil(t, train.ShouldDepartAt)
	assert.Equal(t, time.Date(2024, 6, 1, 14, 0, 0, 0, time.Local), *train.ShouldDepartAt)
	require.NotNil(t, train.ShouldArriveAt)
	assert.Equal(t, time.Date(2024, 6, 1, 15, 10, 0, 0, time.Local), *train.ShouldArriveAt)

	require.Len(t, train.Stations, 3)
	assert.Equal(t, model.StopTypeStartingPoint, train.Stations[0].Type)
	assert.Equal(t, model.StopTypeIntermediate, train.Stations[1].Type)
	assert.Equal(t, model.StopTypeDestination, train.Stations[2].Type)

	// Starting point has no arrival, destination has no departure.
	assert.Nil(t, train.Stations[0].ArrivalTime)
	require.NotNil(t, train.Stations[0].DepartureTime)
	assert.Nil(t, train.Stations[2].DepartureTime)
	require.NotNil(t, train.Stations[2].ArrivalTime)

	// Intermediate stops carry both.
	require.NotNil(t, train.Stations[1].ArrivalTime)
	require.NotNil(t, train.Stations[1].DepartureTime)

	assert.Equal(t, "72480", train.Stations[0].StationID)
	assert.Equal(t, "72444", train.Stations[1].StationID)
	assert.Equal(t, "73158", train.Stations[2].StationID)
}

const transferRows = `
<tr class="transfer-point">
	<td>Zagreb Glavni kolodvor</td><td></td><td>14:00</td><td></td><td></td><td>2002</td><td></td>
</tr>
<tr class="transfer-point">
	<td>Križevci</td><td>14:50</td><td>15:10</td><td></td><td>00:20</td><td>790</td><td></td>
</tr>
<tr class="end-point">
	<td>Koprivnica</td><td>15:40</td><td></td><td></td><td></td><td>790</td><td></td>
</tr>`

func TestReconstructCompositionTransfer(t *testing.T) {
	searchDate := time.Date(2024, 6, 1, 0, 0, 0, 0, time.Local)
	document := compositionDocument(t, transferRows)

	trains := ReconstructComposition(document, searchDate, compositionDirectory)
	require.Len(t, trains, 2)

	assert.Equal(t, "2002", trains[0].TrainNumber)
	assert.Equal(t, "790", trains[1].TrainNumber)
	assert.Equal(t, 0, trains[0].Index)
	assert.Equal(t, 1, trains[1].Index)

	// The transfer row belongs to the boarded train and keeps the waiting
	// time for the connection.
	require.Len(t, trains[1].Stations, 2)
	transferStop := trains[1].Stations[0]
	assert.Equal(t, model.StopTypeTransfer, transferStop.Type)
	assert.Equal(t, "Križevci", transferStop.Name)
	assert.Equal(t, "00:20", transferStop.WaitingTime)

	require.NotNil(t, trains[1].ShouldArriveAt)
	assert.Equal(t, time.Date(2024, 6, 1, 15, 40, 0, 0, time.Local), *trains[1].ShouldArriveAt)
}

const overnightRows = `
<tr class="transfer-point">
	<td>Zagreb Glavni kolodvor</td><td></td><td>23:50</td><td></td><td></td><td>480</td><td></td>
</tr>
<tr class="end-point">
	<td>Koprivnica</td><td>00:40</td><td></td><td></td><td></td><td>480</td><td></td>
</tr>`

func TestReconstructCompositionMidnightRollover(t *testing.T) {
	searchDate := time.Date(2024, 6, 1, 0, 0, 0, 0, time.Local)
	document := compositionDocument(t, overnightRows)

	trains := ReconstructComposition(document, searchDate, compositionDirectory)
	require.Len(t, trains, 1)

	require.NotNil(t, trains[0].ShouldDepartAt)
	require.NotNil(t, trains[0].ShouldArriveAt)
	assert.Equal(t, time.Date(2024, 6, 1, 23, 50, 0, 0, time.Local), *trains[0].ShouldDepartAt)
	assert.Equal(t, time.Date(2024, 6, 2, 0, 40, 0, 0, time.Local), *trains[0].ShouldArriveAt)
}

func TestReconstructCompositionEmptyTable(t *testing.T) {
	document := compositionDocument(t, "")
	trains := ReconstructComposition(document, time.Now(), compositionDirectory)
	assert.Empty(t, trains)
}

const scheduleSearchPage = `<html><body>
<input name="__RequestVerificationToken" value="csrf-token" />
<input name="StateForClient" value="state-blob" />
<div id="outwardJourneyTableContainer">
	<div class="item row">
		<div class="cell">14:00</div>
		<div class="cell"><a href="#">2</a></div>
		<div class="cell">15:40</div>
		<div class="cell">01:40</div>
		<div class="cell">1</div>
		<div class="cell">9,17 €</div>
	</div>
</div>
</body></html>`

func TestJourneyRouteSchedule(t *testing.T) {
	var form map[string][]string
	var referer, cookie string

	mux := http.NewServeMux()
	mux.HandleFunc("/journey", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "session", Value: "abc"})
		w.Write([]byte(scheduleSearchPage))
	})
	mux.HandleFunc("/transportations", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		form = r.PostForm
		referer = r.Header.Get("Referer")
		cookie = r.Header.Get("Cookie")
		w.Write([]byte(`<html><body>
<div class="disclaimer-content col-1-2"><span>01:40</span></div>
<table id="trainDetailTable"><tbody>` + transferRows + `</tbody></table>
</body></html>`))
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<select id="StartId">
<option value="72480">Zagreb Glavni kolodvor</option>
<option value="73405">Križevci</option>
<option value="73158">Koprivnica</option>
</select>`))
	})

	server := httptest.NewServer(mux)
	defer server.Close()

	endpoints := config.Defaults().Endpoints
	endpoints.PortalURL = server.URL + "/journey"
	endpoints.TransportationsURL = server.URL + "/transportations"

	client := NewClient(endpoints, stations.NewDirectory(server.URL+"/stations", nil), nil)

	options := testOptions()
	schedule, err := client.JourneyRouteSchedule(context.Background(), options, "2", model.TripTypeOutward)
	require.NoError(t, err)

	assert.Equal(t, []string{"csrf-token"}, form["__RequestVerificationToken"])
	assert.Equal(t, []string{"state-blob"}, form["StateForClient"])
	assert.Equal(t, []string{"Outward"}, form["TripType"])
	assert.Equal(t, []string{"2"}, form["DepartureNumber"])
	assert.Equal(t, server.URL+"/journey", referer)
	assert.Contains(t, cookie, "session=abc")

	assert.Equal(t, "2", schedule.DepartureNumber)
	assert.Equal(t, "Zagreb Glavni kolodvor", schedule.FromStation)
	assert.Equal(t, "Koprivnica", schedule.ToStation)
	assert.Equal(t, "01:40", schedule.TotalDuration)
	assert.Equal(t, "00:20", schedule.TransferDuration)
	require.Len(t, schedule.Trains, 2)
	assert.Equal(t, time.Date(2024, 6, 1, 14, 0, 0, 0, time.Local), schedule.ShouldStartAt)
	assert.Equal(t, time.Date(2024, 6, 1, 15, 40, 0, 0, time.Local), schedule.ShouldEndAt)
}

func TestJourneyRouteScheduleInvalidDeparture(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/journey", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(scheduleSearchPage))
	})
	mux.HandleFunc("/transportations", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body>došlo je do pogreške</body></html>"))
	})

	server := httptest.NewServer(mux)
	defer server.Close()

	endpoints := config.Defaults().Endpoints
	endpoints.PortalURL = server.URL + "/journey"
	endpoints.TransportationsURL = server.URL + "/transportations"

	client := NewClient(endpoints, stations.NewDirectory(server.URL, nil), nil)

	_, err := client.JourneyRouteSchedule(context.Background(), testOptions(), "99", model.TripTypeOutward)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSiteError)
}
