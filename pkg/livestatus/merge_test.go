package livestatus

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hzpp/hzpp/pkg/model"
)

func timePtr(value time.Time) *time.Time {
	return &value
}

func TestShouldFetch(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.Local)

	tests := []struct {
		name      string
		departAt  *time.Time
		arriveAt  *time.Time
		deviation int
		want      bool
	}{
		{
			name:      "arrived trains are never fetched",
			departAt:  timePtr(now.Add(-2 * time.Hour)),
			arriveAt:  timePtr(now.Add(-time.Hour)),
			deviation: -1,
			want:      false,
		},
		{
			name:      "disabled gate fetches anything not arrived",
			departAt:  timePtr(now.Add(5 * time.Hour)),
			arriveAt:  timePtr(now.Add(7 * time.Hour)),
			deviation: -1,
			want:      true,
		},
		{
			name:      "departure inside the window",
			departAt:  timePtr(now.Add(10 * time.Minute)),
			arriveAt:  timePtr(now.Add(2 * time.Hour)),
			deviation: 15,
			want:      true,
		},
		{
			name:      "departure outside the window",
			departAt:  timePtr(now.Add(40 * time.Minute)),
			arriveAt:  timePtr(now.Add(2 * time.Hour)),
			deviation: 15,
			want:      false,
		},
		{
			name:      "already departed with gate enabled",
			departAt:  timePtr(now.Add(-10 * time.Minute)),
			arriveAt:  timePtr(now.Add(2 * time.Hour)),
			deviation: 15,
			want:      false,
		},
		{
			name:      "no departure time with gate enabled",
			arriveAt:  timePtr(now.Add(2 * time.Hour)),
			deviation: 15,
			want:      false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			train := model.TrainDetails{
				TrainNumber:    "1",
				ShouldDepartAt: tc.departAt,
				ShouldArriveAt: tc.arriveAt,
			}

			assert.Equal(t, tc.want, ShouldFetch(train, now, tc.deviation))
		})
	}
}

func TestMergeFailureIsolationAndBroadcast(t *testing.T) {
	directory, closeDirectory := testDirectory(t)
	defer closeDirectory()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("trainId") == "222" {
			w.Write([]byte("<html><body>došlo je do pogreške</body></html>"))
			return
		}

		w.Write([]byte(delayedTrainPage))
	}))
	defer server.Close()

	client := NewClient(server.URL, "token-123", directory)

	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.Local)
	future := timePtr(now.Add(time.Hour))

	// Train 111 appears twice: fetched once, decorated on both runs.
	trains := []model.TrainDetails{
		{Index: 0, TrainNumber: "111", ShouldArriveAt: future},
		{Index: 1, TrainNumber: "222", ShouldArriveAt: future},
		{Index: 2, TrainNumber: "111", ShouldArriveAt: future},
	}

	extended := client.Merge(context.Background(), trains, now, -1)
	require.Len(t, extended, 3)

	require.NotNil(t, extended[0].TrainInfo)
	assert.Nil(t, extended[1].TrainInfo)
	require.NotNil(t, extended[2].TrainInfo)

	assert.Equal(t, extended[0].TrainInfo, extended[2].TrainInfo)
	assert.Equal(t, "111", extended[0].TrainInfo.TrainNumber)
}
