package webclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultTimeout = 30 * time.Second

var ErrUnexpectedStatus = errors.New("unexpected_status")

// Client fetches the content of web resources.
type Client struct {
	client *http.Client
}

// GetContent returns the body of url. Responses outside the 2xx range fail
// with ErrUnexpectedStatus.
func (c *Client) GetContent(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to get %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", fmt.Errorf("%w: HTTP %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", url, err)
	}
	return string(body), nil
}

func NewClient(client *http.Client) *Client {
	if client == nil {
		client = &http.Client{
			Timeout: defaultTimeout,
		}
	}
	return &Client{
		client: client,
	}
}
