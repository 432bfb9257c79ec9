package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"tripspark/internal/models/response_models"
	"tripspark/pkg/utils"
)

// RouteClient fetches a precomputed multi-day route starting at a landmark.
type RouteClient interface {
	FetchRoute(ctx context.Context, landmarkID uint, days int) (*response_models.RouteData, error)
}

// GenRouteClient calls the route generator's GET /gen-route endpoint.
type GenRouteClient struct {
	HTTP    *http.Client
	BaseURL string
}

func NewGenRouteClient(baseURL string, timeout time.Duration) *GenRouteClient {
	return &GenRouteClient{
		HTTP:    &http.Client{Timeout: timeout},
		BaseURL: strings.TrimRight(baseURL, "/"),
	}
}

// LandmarkNodeCode is the route graph code of a landmark ("P" + id).
func LandmarkNodeCode(landmarkID uint) string {
	return "P" + strconv.FormatUint(uint64(landmarkID), 10)
}

func (c *GenRouteClient) FetchRoute(ctx context.Context, landmarkID uint, days int) (*response_models.RouteData, error) {
	q := url.Values{}
	q.Set("start", LandmarkNodeCode(landmarkID))
	q.Set("days", strconv.Itoa(days))
	endpoint := c.BaseURL + "/gen-route?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", utils.ErrRouteUnavailable, err)
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrRouteUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: bad status %s: %s", utils.ErrRouteUnavailable, resp.Status, strings.TrimSpace(string(body)))
	}

	var route response_models.RouteData
	if err := json.NewDecoder(resp.Body).Decode(&route); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", utils.ErrRouteUnavailable, err)
	}
	if len(route.TripPlan) == 0 {
		return nil, fmt.Errorf("%w: empty trip plan", utils.ErrRouteUnavailable)
	}
	return &route, nil
}
