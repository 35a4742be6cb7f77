package maps

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/nurpe/estate-offers/internal/model"
)

const satelliteZoom = 17

// Pin is one numbered marker on the overview map. Numbers match the
// building list rendered next to the map.
type Pin struct {
	Number int
	Coords model.LatLng
}

// Client fetches static map tiles from the imagery service. Both
// operations are best-effort: any failure (unset token, timeout, non-2xx)
// yields nil and the slide falls back to a placeholder.
type Client struct {
	token   string
	baseURL string
	client  *http.Client
	log     zerolog.Logger
}

func NewClient(token, baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	return &Client{
		token:   token,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		log:     log,
	}
}

// OverviewMap renders all pins on one roadmap tile of the given pixel size.
func (c *Client) OverviewMap(ctx context.Context, pins []Pin, width, height int) []byte {
	if len(pins) == 0 || c.token == "" {
		return nil
	}

	params := url.Values{}
	params.Set("size", fmt.Sprintf("%dx%d", width, height))
	params.Set("maptype", "roadmap")
	params.Set("key", c.token)
	for _, pin := range pins {
		params.Add("markers", fmt.Sprintf("label:%d|%.6f,%.6f", pin.Number, pin.Coords.Lat, pin.Coords.Lng))
	}
	return c.fetch(ctx, params)
}

// Satellite renders one zoomed satellite tile centered on coords with a
// single unlabeled pin.
func (c *Client) Satellite(ctx context.Context, coords model.LatLng, width, height int) []byte {
	if c.token == "" {
		return nil
	}

	params := url.Values{}
	params.Set("center", fmt.Sprintf("%.6f,%.6f", coords.Lat, coords.Lng))
	params.Set("zoom", fmt.Sprintf("%d", satelliteZoom))
	params.Set("size", fmt.Sprintf("%dx%d", width, height))
	params.Set("maptype", "hybrid")
	params.Set("markers", fmt.Sprintf("%.6f,%.6f", coords.Lat, coords.Lng))
	params.Set("key", c.token)
	return c.fetch(ctx, params)
}

func (c *Client) fetch(ctx context.Context, params url.Values) []byte {
	requestURL := c.baseURL + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		c.log.Debug().Err(err).Msg("imagery request build failed")
		return nil
	}
	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Debug().Err(err).Msg("imagery fetch failed")
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Debug().Int("status", resp.StatusCode).Msg("imagery fetch non-2xx")
		return nil
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		c.log.Debug().Err(err).Msg("imagery body read failed")
		return nil
	}
	return data
}
