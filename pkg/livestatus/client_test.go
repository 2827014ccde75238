package livestatus

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

	"github.com/hzpp/hzpp/pkg/model"
	"github.com/hzpp/hzpp/pkg/stations"
)

const delayedTrainPage = `<html><body>
<i>Kolodvor</i> <strong>KARLOVAC</strong>
<font>Odlazak 31.08.26 14:05</font>
<font>Kasni 12 min.</font>
</body></html>`

const finishedTrainPage = `<html><body>
<i>Kolodvor</i> <strong>SPLIT</strong>
<font>Završio vožnju 31.08.26 15:00</font>
<font>Vlak je redovit</font>
</body></html>`

const replacementBusPage = `<html><body>
<i>Kolodvor</i> <strong>GOSPIĆ</strong>
<i>Prijevoz je organiziran autobusom</i>
<font>Formiran 31.08.26 09:30</font>
<font>Čeka polazak</font>
</body></html>`

func parseTestDocument(t *testing.T, page string) *goquery.Document {
	t.Helper()

	document, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	require.NoError(t, err)

	return document
}

func TestParseTrainInfoDelayed(t *testing.T) {
	now := time.Date(2026, 8, 31, 14, 10, 0, 0, time.Local)
	info := parseTrainInfo(parseTestDocument(t, delayedTrainPage), "521", now)

	assert.Equal(t, "521", info.TrainNumber)
	assert.Equal(t, model.TrainStateDeparture, info.State)
	assert.Equal(t, model.TrainStatusDelayed, info.Status)
	assert.Equal(t, 12, info.LateMinutes)
	assert.False(t, info.IsReplacementBus)
	assert.Equal(t, time.Date(2026, 8, 31, 14, 5, 0, 0, time.Local), info.AtTime)
}

func TestParseTrainInfoFinished(t *testing.T) {
	now := time.Now()
	info := parseTrainInfo(parseTestDocument(t, finishedTrainPage), "820", now)

	assert.Equal(t, model.TrainStateFinished, info.State)
	assert.Equal(t, model.TrainStatusOnTime, info.Status)
	assert.Equal(t, 0, info.LateMinutes)
}

func TestParseTrainInfoReplacementBus(t *testing.T) {
	now := time.Now()
	info := parseTrainInfo(parseTestDocument(t, replacementBusPage), "5301", now)

	assert.True(t, info.IsReplacementBus)
	assert.Equal(t, model.TrainStateFormed, info.State)
	assert.Equal(t, model.TrainStatusWaitingDeparture, info.Status)
}

func TestParseTrainInfoUnknownFallsBackToNow(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.Local)
	info := parseTrainInfo(parseTestDocument(t, "<html><body></body></html>"), "1", now)

	assert.Equal(t, model.TrainStateUnknown, info.State)
	assert.Equal(t, model.TrainStatusUnknown, info.Status)
	assert.Equal(t, now, info.AtTime)
}

func testDirectory(t *testing.T) (*stations.Directory, func()) {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<select id="StartId"><option value="44300">Karlovac</option></select>`))
	}))

	return stations.NewDirectory(server.URL, nil), server.Close
}

func TestTrainInfoRequiresAuthToken(t *testing.T) {
	directory, closeDirectory := testDirectory(t)
	defer closeDirectory()

	client := NewClient("http://localhost", "", directory)

	_, err := client.TrainInfo(context.Background(), "521")
	assert.ErrorIs(t, err, ErrMissingAuthToken)
}

func TestTrainInfoFetch(t *testing.T) {
	directory, closeDirectory := testDirectory(t)
	defer closeDirectory()

	var authHeader string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		assert.Equal(t, "521", r.URL.Query().Get("trainId"))
		w.Write([]byte(delayedTrainPage))
	}))
	defer server.Close()

	client := NewClient(server.URL, "token-123", directory)

	info, err := client.TrainInfo(context.Background(), "521")
	require.NoError(t, err)

	assert.Equal(t, "Bearer token-123", authHeader)
	require.NotNil(t, info.CurrentStation)
	assert.Equal(t, "44300", info.CurrentStation.ID)
	assert.Equal(t, 12, info.LateMinutes)
}

func TestTrainInfoUnknownTrainPage(t *testing.T) {
	directory, closeDirectory := testDirectory(t)
	defer closeDirectory()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body>ne mozemo dati trazenu informaciju</body></html>"))
	}))
	defer server.Close()

	client := NewClient(server.URL, "token-123", directory)

	_, err := client.TrainInfo(context.Background(), "99999")
	assert.Error(t, err)
}
