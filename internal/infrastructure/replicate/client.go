// Package replicate calls the Replicate predictions API to render card images.
package replicate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/alexai/greeting-cards/pkg/types/errs"
)

// size4K requests a 3840x2160-class render from the model.
const size4K = "4K"

const (
	statusSucceeded = "succeeded"
	statusFailed    = "failed"
	statusCanceled  = "canceled"
)

type Client struct {
	baseURL      string
	token        string
	model        string
	timeout      time.Duration
	pollInterval time.Duration

	httpClient *http.Client
}

func New(baseURL, token, model string, timeout, pollInterval time.Duration) *Client {
	return &Client{
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		token:        token,
		model:        model,
		timeout:      timeout,
		pollInterval: pollInterval,
		httpClient:   &http.Client{},
	}
}

type predictionInput struct {
	Prompt      string `json:"prompt"`
	Size        string `json:"size"`
	AspectRatio string `json:"aspect_ratio"`
}

type predictionRequest struct {
	Input predictionInput `json:"input"`
}

type prediction struct {
	ID     string          `json:"id"`
	Status string          `json:"status"`
	Output json.RawMessage `json:"output"`
	Error  string          `json:"error"`
}

// Generate blocks until the backend delivers the rendered image or the
// configured timeout elapses. Failures come back as exactly one of
// errs.ErrGenerationTimeout or errs.ErrGenerationService.
func (c *Client) Generate(ctx context.Context, prompt, aspectRatio string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	pred, err := c.createPrediction(ctx, prompt, aspectRatio)
	if err != nil {
		return nil, classify(err)
	}

	pred, err = c.waitForPrediction(ctx, pred)
	if err != nil {
		return nil, classify(err)
	}

	url, err := outputURL(pred.Output)
	if err != nil {
		return nil, fmt.Errorf("replicate - Generate - outputURL: %w", errs.ErrGenerationService)
	}

	data, err := c.download(ctx, url)
	if err != nil {
		return nil, classify(err)
	}

	return data, nil
}

func (c *Client) createPrediction(ctx context.Context, prompt, aspectRatio string) (*prediction, error) {
	body, err := json.Marshal(predictionRequest{
		Input: predictionInput{
			Prompt:      prompt,
			Size:        size4K,
			AspectRatio: aspectRatio,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("replicate - createPrediction - json.Marshal: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s/predictions", c.baseURL, c.model)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("replicate - createPrediction - http.NewRequestWithContext: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")
	// Ask the API to hold the connection until the prediction settles.
	req.Header.Set("Prefer", "wait=60")

	return c.doPrediction(req)
}

func (c *Client) waitForPrediction(ctx context.Context, pred *prediction) (*prediction, error) {
	for {
		switch pred.Status {
		case statusSucceeded:
			return pred, nil
		case statusFailed, statusCanceled:
			return nil, fmt.Errorf("replicate - waitForPrediction - status=%s error=%q: %w",
				pred.Status, pred.Error, errs.ErrGenerationService)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.pollInterval):
		}

		var err error
		pred, err = c.getPrediction(ctx, pred.ID)
		if err != nil {
			return nil, err
		}
	}
}

func (c *Client) getPrediction(ctx context.Context, id string) (*prediction, error) {
	url := fmt.Sprintf("%s/predictions/%s", c.baseURL, id)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("replicate - getPrediction - http.NewRequestWithContext: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	return c.doPrediction(req)
}

func (c *Client) doPrediction(req *http.Request) (*prediction, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("replicate - doPrediction - c.httpClient.Do: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("replicate - doPrediction - io.ReadAll: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("replicate - doPrediction - status %d, body %s: %w",
			resp.StatusCode, body, errs.ErrGenerationService)
	}

	pred := &prediction{}
	if err := json.Unmarshal(body, pred); err != nil {
		return nil, fmt.Errorf("replicate - doPrediction - json.Unmarshal: %w", err)
	}

	return pred, nil
}

func (c *Client) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("replicate - download - http.NewRequestWithContext: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("replicate - download - c.httpClient.Do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("replicate - download - status %d: %w", resp.StatusCode, errs.ErrGenerationService)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("replicate - download - io.ReadAll: %w", err)
	}

	return data, nil
}

// outputURL handles both output shapes Replicate models return: a single file
// URL or a list of them.
func outputURL(raw json.RawMessage) (string, error) {
	if len(raw) == 0 {
		return "", errors.New("empty output")
	}

	var single string
	if err := json.Unmarshal(raw, &single); err == nil && single != "" {
		return single, nil
	}

	var many []string
	if err := json.Unmarshal(raw, &many); err == nil && len(many) > 0 && many[0] != "" {
		return many[0], nil
	}

	return "", fmt.Errorf("unexpected output shape: %s", raw)
}

func classify(err error) error {
	if errors.Is(err, errs.ErrGenerationService) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("replicate - Generate: %w", errs.ErrGenerationTimeout)
	}

	return fmt.Errorf("replicate - Generate: %w: %w", errs.ErrGenerationService, err)
}
