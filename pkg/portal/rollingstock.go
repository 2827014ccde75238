package portal

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"sync"

	"github.com/PuerkitoBio/goquery"

	"github.com/hzpp/hzpp/pkg/model"
	"github.com/hzpp/hzpp/pkg/validate"
)

// The rolling stock catalogs change on the order of years, so they are
// memoized for the client's lifetime rather than going through the result
// cache. force bypasses the memo.
type rollingStockMemo struct {
	mutex sync.Mutex

	locomotives []model.RollingStockInfo
	wagons      []model.RollingStockInfo
	trainTypes  []model.RollingStockInfo
}

// Locomotives returns the locomotive catalog from the public site.
func (c *Client) Locomotives(ctx context.Context, force bool) ([]model.RollingStockInfo, error) {
	c.rollingStock.mutex.Lock()
	defer c.rollingStock.mutex.Unlock()

	if c.rollingStock.locomotives != nil && !force {
		return c.rollingStock.locomotives, nil
	}

	entries, err := c.fetchRollingStock(ctx, c.Endpoints.LocomotivesURL)
	if err != nil {
		return nil, err
	}

	c.rollingStock.locomotives = entries
	return entries, nil
}

// Wagons returns the wagon catalog from the public site.
func (c *Client) Wagons(ctx context.Context, force bool) ([]model.RollingStockInfo, error) {
	c.rollingStock.mutex.Lock()
	defer c.rollingStock.mutex.Unlock()

	if c.rollingStock.wagons != nil && !force {
		return c.rollingStock.wagons, nil
	}

	entries, err := c.fetchRollingStock(ctx, c.Endpoints.WagonsURL)
	if err != nil {
		return nil, err
	}

	c.rollingStock.wagons = entries
	return entries, nil
}

// TrainTypes returns the train type catalog from the public site.
func (c *Client) TrainTypes(ctx context.Context, force bool) ([]model.RollingStockInfo, error) {
	c.rollingStock.mutex.Lock()
	defer c.rollingStock.mutex.Unlock()

	if c.rollingStock.trainTypes != nil && !force {
		return c.rollingStock.trainTypes, nil
	}

	entries, err := c.fetchRollingStock(ctx, c.Endpoints.TrainsURL)
	if err != nil {
		return nil, err
	}

	c.rollingStock.trainTypes = entries
	return entries, nil
}

func (c *Client) fetchRollingStock(ctx context.Context, pageURL string) ([]model.RollingStockInfo, error) {
	body, err := c.get(ctx, pageURL, "invalid static data")
	if err != nil {
		return nil, err
	}

	document, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse rolling stock data: %v", err)
	}

	base, err := url.Parse(c.Endpoints.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse rolling stock data: %v", err)
	}

	var entries []model.RollingStockInfo
	document.Find(".articlebox").Each(func(_ int, box *goquery.Selection) {
		image := box.Find("img").AttrOr("src", "")
		name := box.Find("h3").Text()
		if image == "" || name == "" {
			return
		}

		resolved, err := base.Parse(image)
		if err != nil {
			return
		}

		entries = append(entries, model.RollingStockInfo{
			Name:  name,
			Image: resolved.String(),
		})
	})

	if violations := validate.RollingStock(entries); len(violations) > 0 {
		return nil, fmt.Errorf("failed to parse rolling stock data: %s", violations)
	}

	return entries, nil
}
