// Package portal talks to the HŽPP ticketing portal and reconstructs
// structured journey data from its server-rendered HTML. The markup is
// treated as a fixed, known page structure: when it changes, extraction fails
// loudly rather than degrading.
package portal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/hzpp/hzpp/pkg/cache"
	"github.com/hzpp/hzpp/pkg/config"
	"github.com/hzpp/hzpp/pkg/stations"
)

// ErrFetchFailed covers transport-level failures: network errors and non-200
// responses.
var ErrFetchFailed = errors.New("failed to fetch data")

// ErrSiteError covers 200 responses whose body carries the portal's
// localized error marker; the wrapping message names the call site.
var ErrSiteError = errors.New("site returned an error page")

// Client fetches and parses portal pages. Directory is the shared station
// snapshot used for name matching; Cache may be nil to disable result
// caching.
type Client struct {
	HTTP      *http.Client
	Endpoints config.Endpoints
	Directory *stations.Directory
	Cache     *cache.Cache

	rollingStock rollingStockMemo
}

func NewClient(endpoints config.Endpoints, directory *stations.Directory, resultCache *cache.Cache) *Client {
	return &Client{
		HTTP:      http.DefaultClient,
		Endpoints: endpoints,
		Directory: directory,
		Cache:     resultCache,
	}
}

// fetch runs the request and returns the body, mapping non-200 statuses and
// error-marker bodies onto the failure taxonomy. invalidMessage names the
// call site in the error-page case.
func (c *Client) fetch(request *http.Request, invalidMessage string) ([]byte, error) {
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
		return nil, fmt.Errorf("%w: %s", ErrSiteError, invalidMessage)
	}

	return body, nil
}

func readBody(response *http.Response) ([]byte, error) {
	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	return body, nil
}

func containsErrorMarker(body []byte) bool {
	return strings.Contains(string(body), stations.ErrorMarker)
}

func (c *Client) get(ctx context.Context, url string, invalidMessage string) ([]byte, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	return c.fetch(request, invalidMessage)
}
