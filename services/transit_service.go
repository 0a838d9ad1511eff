package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

const digitransitAPIURL = "https://api.digitransit.fi/routing/v2/hsl/gtfs/v1"

// TransitService proxies trip planning to the Digitransit GraphQL API.
// The upstream speaks GraphQL over plain POST with a subscription-key
// header, so a stock http.Client is all it takes.
type TransitService struct {
	apiURL     string
	apiKey     string
	httpClient *http.Client
}

func NewTransitService() *TransitService {
	apiURL := os.Getenv("DIGITRANSIT_API_URL")
	if apiURL == "" {
		apiURL = digitransitAPIURL
	}
	return &TransitService{
		apiURL: apiURL,
		apiKey: os.Getenv("DIGITRANSIT_SUBSCRIPTION_KEY"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

const routeQueryTemplate = `{
  planConnection(
    origin: {location: {coordinate: {latitude: %s, longitude: %s}}},
    destination: {location: {coordinate: {latitude: %s, longitude: %s}}},
    first: 2
  ) {
    pageInfo { endCursor }
    edges {
      node {
        start
        end
        legs {
          duration
          mode
          distance
          start { scheduledTime }
          end { scheduledTime }
          realtimeState
        }
        emissionsPerPerson { co2 }
      }
    }
  }
}`

const legsQueryTemplate = `{
  planConnection(
    origin: {location: {coordinate: {latitude: %s, longitude: %s}}},
    destination: {location: {coordinate: {latitude: %s, longitude: %s}}},
    first: 2
  ) {
    pageInfo { endCursor }
    edges {
      node {
        start
        end
        legs {
          startTime
          endTime
          mode
          duration
          distance
          legGeometry { points }
        }
      }
    }
  }
}`

// PlanRoute returns route summaries (durations, modes, emissions) between
// the origin and destination coordinates.
func (ts *TransitService) PlanRoute(olat, olng, lat, lng string) (json.RawMessage, error) {
	return ts.query(fmt.Sprintf(routeQueryTemplate, olat, olng, lat, lng))
}

// PlanLegs returns per-leg detail including the encoded leg geometry.
func (ts *TransitService) PlanLegs(olat, olng, lat, lng string) (json.RawMessage, error) {
	return ts.query(fmt.Sprintf(legsQueryTemplate, olat, olng, lat, lng))
}

func (ts *TransitService) query(query string) (json.RawMessage, error) {
	payload, err := json.Marshal(map[string]string{"query": query})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost, ts.apiURL, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("digitransit-subscription-key", ts.apiKey)

	resp, err := ts.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("transit api request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("transit api returned status %d", resp.StatusCode)
	}

	var parsed struct {
		Data struct {
			PlanConnection json.RawMessage `json:"planConnection"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decoding transit api response: %w", err)
	}
	if parsed.Data.PlanConnection == nil {
		return nil, fmt.Errorf("transit api returned no plan")
	}
	return parsed.Data.PlanConnection, nil
}
