package directions

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client is a Provider backed by a GraphHopper-compatible routing server.
// It only requests what the planner needs — leg time — so instructions and
// geometry are switched off to keep responses small.
type Client struct {
	baseURL    string
	profile    string
	httpClient *http.Client
}

// NewClient constructs a Client for the given base URL and routing profile
// (e.g. "car", "foot"). The HTTP timeout doubles as the per-lookup timeout:
// a hung provider call fails the leg instead of stalling the resolver queue
// forever.
func NewClient(baseURL, profile string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		profile: profile,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// routeResponse is the subset of the provider's /route response we consume.
type routeResponse struct {
	Paths []struct {
		Time int64 `json:"time"` // milliseconds
	} `json:"paths"`
}

// Route requests a single-leg route and returns its travel duration.
func (c *Client) Route(ctx context.Context, origin, destination Point) (Leg, error) {
	u, err := url.Parse(c.baseURL + "/route")
	if err != nil {
		return Leg{}, fmt.Errorf("directions.Client.Route: parse url: %w", err)
	}

	q := u.Query()
	q.Add("point", fmt.Sprintf("%f,%f", origin.Lat, origin.Lng))
	q.Add("point", fmt.Sprintf("%f,%f", destination.Lat, destination.Lng))
	q.Set("profile", c.profile)
	q.Set("points_encoded", "true")
	q.Set("instructions", "false")
	q.Set("calc_points", "false")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return Leg{}, fmt.Errorf("directions.Client.Route: build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Leg{}, fmt.Errorf("directions.Client.Route: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Leg{}, fmt.Errorf("directions.Client.Route: provider status %d", resp.StatusCode)
	}

	var body routeResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Leg{}, fmt.Errorf("directions.Client.Route: decode response: %w", err)
	}
	if len(body.Paths) == 0 {
		return Leg{}, fmt.Errorf("directions.Client.Route: no route between points")
	}

	seconds := body.Paths[0].Time / 1000
	return Leg{
		DurationSeconds: seconds,
		DurationText:    FormatDuration(seconds),
	}, nil
}

// Health reports whether the provider is reachable and ready.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("directions.Client.Health: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("directions.Client.Health: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("directions.Client.Health: provider status %d", resp.StatusCode)
	}
	return nil
}

// FormatDuration renders a second count the way the itinerary sidebar shows
// it: "3 mins", "1 hour 5 mins", "2 hours". Sub-minute legs round to "1 min".
func FormatDuration(seconds int64) string {
	if seconds < 60 {
		return "1 min"
	}
	mins := seconds / 60
	hours := mins / 60
	mins = mins % 60

	switch {
	case hours == 0:
		return plural(mins, "min")
	case mins == 0:
		return plural(hours, "hour")
	default:
		return plural(hours, "hour") + " " + plural(mins, "min")
	}
}

func plural(n int64, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
