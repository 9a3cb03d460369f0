package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// Fetch lists the relays a directory knows about, optionally filtered by
// region.
func Fetch(ctx context.Context, hc *http.Client, baseURL, region string) ([]Relay, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/") + "/relays")
	if err != nil {
		return nil, fmt.Errorf("directory url: %w", err)
	}
	if region != "" {
		u.RawQuery = url.Values{"region": {region}}.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch relays: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch relays: status %d", resp.StatusCode)
	}

	var relays []Relay
	if err := json.NewDecoder(resp.Body).Decode(&relays); err != nil {
		return nil, fmt.Errorf("decode relays: %w", err)
	}
	return relays, nil
}
