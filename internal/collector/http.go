package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"SalesEcho/internal/model"
)

// HTTPFetcher reads daily metrics from a JSON analytics endpoint.
type HTTPFetcher struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewHTTPFetcher creates a new fetcher with optional proxy support.
func NewHTTPFetcher(baseURL, apiKey, proxyURL string) *HTTPFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &HTTPFetcher{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (f *HTTPFetcher) Name() string { return "http" }

// dailyPoint is the expected JSON shape from the metrics API.
type dailyPoint struct {
	Date     string  `json:"date"` // YYYY-MM-DD
	Sessions int     `json:"sessions"`
	Revenue  float64 `json:"revenue"`
}

type datedPoint struct {
	day time.Time
	dailyPoint
}

func (f *HTTPFetcher) FetchDaily(ctx context.Context, days int) (*model.DailySeries, error) {
	endpoint := fmt.Sprintf("%s/api/v1/metrics/daily?days=%d", f.BaseURL, days)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	if f.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+f.APIKey)
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch metrics: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("fetch metrics: status %d, body: %s", resp.StatusCode, string(body))
	}

	var raw []dailyPoint
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode metrics: %w", err)
	}
	points := make([]datedPoint, 0, len(raw))
	for _, p := range raw {
		day, err := time.Parse(time.DateOnly, p.Date)
		if err != nil {
			return nil, fmt.Errorf("parse date %q: %w", p.Date, err)
		}
		points = append(points, datedPoint{day: day, dailyPoint: p})
	}
	// Ensure chronological order
	sort.Slice(points, func(i, j int) bool { return points[i].day.Before(points[j].day) })
	if len(points) > days {
		points = points[len(points)-days:]
	}

	series := &model.DailySeries{
		Sessions:  make([]int, len(points)),
		Revenue:   make([]float64, len(points)),
		Source:    f.Name(),
		FetchedAt: time.Now(),
	}
	for i, p := range points {
		series.Sessions[i] = p.Sessions
		series.Revenue[i] = p.Revenue
	}
	if len(points) > 0 {
		series.Start = points[0].day
	}
	return series, nil
}
