// Package gen calls the hosted text-generation endpoint that drafts menu
// descriptions. Failures never reach the caller: the client degrades to a
// fixed fallback string.
package gen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"
)

// FallbackDescription is returned whenever the endpoint fails, times out,
// or produces nothing usable.
const FallbackDescription = "A house specialty, prepared fresh by our kitchen."

type Client struct {
	Endpoint string
	APIKey   string
	HTTP     *http.Client
}

func NewClient(endpoint, apiKey string) *Client {
	return &Client{
		Endpoint: endpoint,
		APIKey:   apiKey,
		HTTP:     &http.Client{Timeout: 10 * time.Second},
	}
}

type generateRequest struct {
	Prompt string `json:"prompt"`
}

type generateResponse struct {
	Text string `json:"text"`
}

// Describe asks the endpoint for a short appetizing description of the
// dish. Any failure yields FallbackDescription and no error.
func (c *Client) Describe(ctx context.Context, dishName, ingredients string) string {
	prompt := fmt.Sprintf("Write a short, appetizing description (30-50 words) for a dish named %q", dishName)
	if ingredients != "" {
		prompt += fmt.Sprintf(" with main ingredients: %s", ingredients)
	}
	prompt += ". Focus on flavor to make guests want to order it."

	body, _ := json.Marshal(generateRequest{Prompt: prompt})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(body))
	if err != nil {
		log.Printf("describe %q: %v", dishName, err)
		return FallbackDescription
	}
	req.Header.Set("Content-Type", "application/json")
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		log.Printf("describe %q: %v", dishName, err)
		return FallbackDescription
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("describe %q: unexpected status %d", dishName, resp.StatusCode)
		return FallbackDescription
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		log.Printf("describe %q: %v", dishName, err)
		return FallbackDescription
	}

	text := strings.TrimSpace(out.Text)
	if text == "" {
		return FallbackDescription
	}
	return text
}
