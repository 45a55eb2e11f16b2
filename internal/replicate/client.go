package replicate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const DefaultBaseURL = "https://api.replicate.com"

const tryOnPrompt = `You are a computer vision and image synthesis system specialized in virtual fashion try-on.

INPUT:
- Image 1: a real human user photo (front-facing or slightly angled).
- Image 2: a clothing product image (clean background, flat or worn).

TASKS:
1. Generate a realistic try-on image where the user in Image 1 is wearing the clothing from Image 2.
2. Preserve the user's identity, face, skin tone, hair, and body proportions.
3. Accurately align the clothing to the user's body, respecting shoulder position, arm and hand placement, torso length, and natural fabric folds.
4. Do NOT change the user's face shape, expression, or gender.
5. Do NOT distort the clothing logo, texture, or color.
6. Ensure correct depth layering (clothing over body, hands in front when appropriate).`

// Client is a minimal Replicate API client for image-generation models.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	model      string
}

// NewClient creates a Replicate client for the given model, e.g. "google/nano-banana".
func NewClient(token, model string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 90 * time.Second,
		},
		baseURL: DefaultBaseURL,
		token:   token,
		model:   model,
	}
}

// WithBaseURL overrides the API host, used by tests.
func (c *Client) WithBaseURL(baseURL string) *Client {
	c.baseURL = baseURL
	return c
}

type prediction struct {
	ID     string          `json:"id"`
	Status string          `json:"status"`
	Output json.RawMessage `json:"output"`
	Error  interface{}     `json:"error"`
}

// GenerateTryOn runs the try-on model with the user photo and the garment image
// and returns the generated image URL. The request uses the synchronous
// "Prefer: wait" mode, falling back to polling when the prediction is still
// running at response time.
func (c *Client) GenerateTryOn(ctx context.Context, userImage, clothImage string) (string, error) {
	if c.token == "" {
		return "", fmt.Errorf("REPLICATE_API_TOKEN is not configured")
	}

	body, err := json.Marshal(map[string]interface{}{
		"input": map[string]interface{}{
			"prompt":      tryOnPrompt,
			"image_input": []string{userImage, clothImage},
		},
	})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/v1/models/%s/predictions", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "wait")

	pred, err := c.do(req)
	if err != nil {
		return "", err
	}

	// Poll if the synchronous wait timed out server-side.
	for i := 0; pred.Status == "starting" || pred.Status == "processing"; i++ {
		if i >= 30 {
			return "", fmt.Errorf("prediction %s did not finish in time", pred.ID)
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(2 * time.Second):
		}

		pred, err = c.getPrediction(ctx, pred.ID)
		if err != nil {
			return "", err
		}
	}

	if pred.Status != "succeeded" {
		return "", fmt.Errorf("prediction %s %s: %v", pred.ID, pred.Status, pred.Error)
	}

	out, err := parseOutput(pred.Output)
	if err != nil {
		return "", fmt.Errorf("prediction %s: %w", pred.ID, err)
	}
	return out, nil
}

func (c *Client) getPrediction(ctx context.Context, id string) (*prediction, error) {
	url := fmt.Sprintf("%s/v1/predictions/%s", c.baseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	return c.do(req)
}

func (c *Client) do(req *http.Request) (*prediction, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("replicate API returned %d: %s", resp.StatusCode, string(data))
	}

	var pred prediction
	if err := json.Unmarshal(data, &pred); err != nil {
		return nil, fmt.Errorf("failed to decode prediction: %w", err)
	}
	return &pred, nil
}

// parseOutput extracts an image URL from the model output, which may be a
// plain string, an array of strings, or an object with a url field.
func parseOutput(raw json.RawMessage) (string, error) {
	if len(raw) == 0 {
		return "", fmt.Errorf("empty output")
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil && s != "" {
		return s, nil
	}

	var arr []string
	if err := json.Unmarshal(raw, &arr); err == nil && len(arr) > 0 {
		return arr[0], nil
	}

	var obj map[string]interface{}
	if err := json.Unmarshal(raw, &obj); err == nil {
		if u, ok := obj["url"].(string); ok && u != "" {
			return u, nil
		}
	}

	return "", fmt.Errorf("unexpected output format: %s", string(raw))
}
