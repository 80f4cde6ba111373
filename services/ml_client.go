package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Minhaj225/NutriGoal/models"

	"github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"
)

// scorerTimeout bounds a single prediction call; hitting it counts as a
// scorer failure, same as a non-2xx or a malformed body.
const scorerTimeout = 10 * time.Second

// PredictionResult is one scorer verdict, positionally aligned with the
// candidate batch that was sent.
type PredictionResult struct {
	Recommended bool    `json:"recommended"`
	Confidence  float64 `json:"confidence"`
}

type mealPrediction struct {
	MealName string  `json:"meal_name"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Cuisine  string  `json:"cuisine"`
	Category string  `json:"category"`
	Diet     string  `json:"diet"`
}

// Scorer is what the recommendation engine depends on; tests substitute
// their own.
type Scorer interface {
	ScoreBatch(ctx context.Context, candidates []models.Meal) ([]PredictionResult, error)
}

// MLClient talks to the external prediction service. A circuit breaker
// skips the 10s timeout while the service is known to be down, and an
// outbound limiter keeps batch traffic polite. The client never invents
// fallback scores; that policy lives in the recommendation engine.
type MLClient struct {
	baseURL string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker[[]PredictionResult]
	limiter *rate.Limiter
}

func NewMLClient(baseURL string) *MLClient {
	if baseURL == "" {
		baseURL = "http://localhost:5000"
	}
	return &MLClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: scorerTimeout},
		breaker: gobreaker.NewCircuitBreaker[[]PredictionResult](gobreaker.Settings{
			Name:    "ml-scorer",
			Timeout: 30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 3
			},
		}),
		limiter: rate.NewLimiter(rate.Limit(20), 40),
	}
}

func (c *MLClient) ScoreBatch(ctx context.Context, candidates []models.Meal) ([]PredictionResult, error) {
	return c.breaker.Execute(func() ([]PredictionResult, error) {
		return c.scoreBatch(ctx, candidates)
	})
}

func (c *MLClient) scoreBatch(ctx context.Context, candidates []models.Meal) ([]PredictionResult, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	batch := make([]mealPrediction, len(candidates))
	for i, m := range candidates {
		batch[i] = mealPrediction{
			MealName: m.MealName,
			Calories: m.Calories,
			Protein:  m.Protein,
			Cuisine:  m.Cuisine,
			Category: m.Category,
			Diet:     m.DietaryPreference,
		}
	}

	body, err := json.Marshal(map[string]any{"meals": batch})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict_batch", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ml api request error: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read ml api response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("ml api error (%d): %s", resp.StatusCode, preview(respBytes))
	}

	var out struct {
		Success *bool              `json:"success"`
		Results []PredictionResult `json:"results"`
	}
	if err := json.Unmarshal(respBytes, &out); err != nil {
		return nil, fmt.Errorf("decode ml api response: %v | body: %s", err, preview(respBytes))
	}
	if out.Success != nil && !*out.Success {
		return nil, fmt.Errorf("ml api reported failure: %s", preview(respBytes))
	}
	if out.Results == nil {
		return nil, fmt.Errorf("ml api response missing results array")
	}
	if len(out.Results) != len(candidates) {
		return nil, fmt.Errorf("ml api returned %d results for %d meals", len(out.Results), len(candidates))
	}
	return out.Results, nil
}

func preview(b []byte) string {
	s := string(b)
	if len(s) > 200 {
		return s[:200] + "..."
	}
	return s
}
