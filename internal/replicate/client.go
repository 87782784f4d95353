package replicate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

const defaultPollInterval = 500 * time.Millisecond

// ClientConfig - параметры подключения к Replicate API.
type ClientConfig struct {
	BaseURL      string
	APIToken     string
	HTTPTimeout  time.Duration
	PollInterval time.Duration
}

// Client - HTTP клиент Replicate API v1.
type Client struct {
	baseURL      string
	apiToken     string
	httpClient   *http.Client
	pollInterval time.Duration
	logger       *zap.Logger
}

// NewClient создает клиент. Токен передается явно, из окружения клиент ничего не читает.
func NewClient(cfg ClientConfig, logger *zap.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.APIToken) == "" {
		return nil, ErrMissingToken
	}
	if _, err := url.ParseRequestURI(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid base URL for replicate api: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	pollInterval := cfg.PollInterval
	if pollInterval <= 0 {
		pollInterval = defaultPollInterval
	}

	return &Client{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		apiToken: cfg.APIToken,
		httpClient: &http.Client{
			Timeout: cfg.HTTPTimeout,
		},
		pollInterval: pollInterval,
		logger:       logger.Named("ReplicateClient"),
	}, nil
}

// Run создает предсказание, дожидается его завершения и возвращает список URL.
func (c *Client) Run(ctx context.Context, model ModelRef, input any) ([]string, error) {
	log := c.logger.With(zap.String("model", model.String()))

	prediction, err := c.CreatePrediction(ctx, model.Version, input)
	if err != nil {
		return nil, err
	}
	log = log.With(zap.String("prediction_id", prediction.ID))
	log.Debug("Prediction created", zap.String("status", string(prediction.Status)))

	prediction, err = c.Wait(ctx, prediction)
	if err != nil {
		return nil, err
	}

	switch prediction.Status {
	case StatusSucceeded:
		urls, err := prediction.OutputURLs()
		if err != nil {
			log.Error("Failed to decode prediction output", zap.Error(err))
			return nil, err
		}
		log.Info("Prediction succeeded", zap.Int("outputs", len(urls)))
		return urls, nil
	case StatusFailed:
		log.Warn("Prediction failed", zap.String("error", prediction.ErrorMessage()))
		return nil, fmt.Errorf("%w: %s", ErrPredictionFailed, prediction.ErrorMessage())
	default:
		log.Warn("Prediction did not finish", zap.String("status", string(prediction.Status)))
		return nil, fmt.Errorf("%w: status %s", ErrPredictionCanceled, prediction.Status)
	}
}

// CreatePrediction - POST /predictions. С заголовком Prefer: wait API держит
// соединение, пока предсказание не завершится (или не истечет его лимит ожидания).
func (c *Client) CreatePrediction(ctx context.Context, version string, input any) (*Prediction, error) {
	var prediction Prediction
	body := PredictionRequest{Version: version, Input: input}
	if err := c.do(ctx, http.MethodPost, "/predictions", body, &prediction); err != nil {
		return nil, err
	}
	return &prediction, nil
}

// GetPrediction - GET /predictions/{id}.
func (c *Client) GetPrediction(ctx context.Context, id string) (*Prediction, error) {
	var prediction Prediction
	if err := c.do(ctx, http.MethodGet, "/predictions/"+url.PathEscape(id), nil, &prediction); err != nil {
		return nil, err
	}
	return &prediction, nil
}

// Wait опрашивает предсказание, пока оно не завершится или не отменится ctx.
func (c *Client) Wait(ctx context.Context, prediction *Prediction) (*Prediction, error) {
	if prediction.Status.Terminated() {
		return prediction, nil
	}

	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	current := prediction
	for {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("waiting for prediction %s: %w", prediction.ID, ctx.Err())
		case <-ticker.C:
			next, err := c.GetPrediction(ctx, current.ID)
			if err != nil {
				return nil, err
			}
			current = next
			if current.Status.Terminated() {
				return current, nil
			}
			c.logger.Debug("Prediction still running",
				zap.String("prediction_id", current.ID),
				zap.String("status", string(current.Status)),
			)
		}
	}
}

func (c *Client) do(ctx context.Context, method, path string, payload any, out any) error {
	endpointURL := c.baseURL + path
	log := c.logger.With(zap.String("method", method), zap.String("url", endpointURL))

	var body io.Reader
	if payload != nil {
		reqBodyBytes, err := json.Marshal(payload)
		if err != nil {
			log.Error("Failed to marshal request payload", zap.Error(err))
			return fmt.Errorf("failed to marshal request payload: %w", err)
		}
		body = bytes.NewReader(reqBodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpointURL, body)
	if err != nil {
		log.Error("Failed to create request", zap.Error(err))
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiToken)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if method == http.MethodPost {
		req.Header.Set("Prefer", "wait")
	}

	log.Debug("Sending request to Replicate API")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("Failed to execute Replicate API request", zap.Error(err))
		return fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, readErr := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if len(bodyBytes) > 0 {
			if jsonErr := json.Unmarshal(bodyBytes, apiErr); jsonErr != nil {
				apiErr.Detail = strings.TrimSpace(string(bodyBytes))
			}
		}
		log.Error("Replicate API returned non-OK status",
			zap.Int("status_code", resp.StatusCode),
			zap.ByteString("response_body", bodyBytes),
		)
		return apiErr
	}

	if readErr != nil {
		log.Error("Failed to read Replicate API response body", zap.Error(readErr))
		return fmt.Errorf("failed to read response body: %w", readErr)
	}

	if err := json.Unmarshal(bodyBytes, out); err != nil {
		log.Error("Failed to decode Replicate API response", zap.Error(err))
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
