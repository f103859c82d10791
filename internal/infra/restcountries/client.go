package restcountries

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"country-quiz-game/internal/domain"
)

// DefaultBaseURL is the public REST Countries directory.
const DefaultBaseURL = "https://restcountries.com"

// fields keeps the payload down to what the quiz actually uses.
const fields = "name,capital,population,flags,region,subregion,area,cca2,cca3"

// Client fetches the reference dataset over HTTP. Records without a common
// name, flag image, or positive population are dropped here, so downstream
// logic only ever sees playable countries.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) LoadCountries(ctx context.Context) ([]domain.Country, error) {
	url := c.baseURL + "/v3.1/all?fields=" + fields
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch countries: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch countries: unexpected status %d", resp.StatusCode)
	}

	var records []domain.Country
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode countries: %w", err)
	}

	countries := make([]domain.Country, 0, len(records))
	for _, record := range records {
		if record.Playable() {
			countries = append(countries, record)
		}
	}
	return countries, nil
}
