package storagehttp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"qa-orchestrator/internal/domain"
)

// SignerClient requests time-limited access URLs from the storage
// service.
type SignerClient struct {
	BaseURL string
	Client  *http.Client
}

// NewSignerClient constructs a signer client for the given endpoint.
func NewSignerClient(baseURL string, client *http.Client) *SignerClient {
	return &SignerClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  client,
	}
}

type signRequest struct {
	FilePath   string `json:"file_path"`
	TTLSeconds int    `json:"ttl_seconds"`
}

type signResponse struct {
	URL string `json:"url"`
}

// SignURL returns a URL granting access to filePath for the given ttl.
func (c *SignerClient) SignURL(ctx context.Context, filePath string, ttl time.Duration) (string, error) {
	payload, err := json.Marshal(signRequest{
		FilePath:   filePath,
		TTLSeconds: int(ttl.Seconds()),
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal sign request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/sign", c.BaseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create sign request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("sign request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("storage service returned status: %d", resp.StatusCode)
	}

	var signResp signResponse
	if err := json.NewDecoder(resp.Body).Decode(&signResp); err != nil {
		return "", fmt.Errorf("failed to decode sign response: %w", err)
	}
	if signResp.URL == "" {
		return "", fmt.Errorf("storage service returned an empty url")
	}
	return signResp.URL, nil
}

var _ domain.FileSigner = (*SignerClient)(nil)
