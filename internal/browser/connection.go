package browser

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/meetupaws/airport_boarding/internal/webclient"
)

var ErrNoResponse = errors.New("no_response")

// WebConnection delivers the HTML served at a URL.
type WebConnection interface {
	GetResponse(ctx context.Context, url string) (string, error)
}

// HTTPWebConnection fetches pages over HTTP.
type HTTPWebConnection struct {
	client *webclient.Client
}

func (c *HTTPWebConnection) GetResponse(ctx context.Context, url string) (string, error) {
	return c.client.GetContent(ctx, url)
}

func NewHTTPWebConnection(client *webclient.Client) *HTTPWebConnection {
	return &HTTPWebConnection{
		client: client,
	}
}

// MockWebConnection serves canned HTML per URL.
type MockWebConnection struct {
	mu        sync.Mutex
	responses map[string]string
	requested []string
}

func (c *MockWebConnection) SetResponse(url string, html string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.responses[url] = html
}

// SetResponseFromFile serves the content of path at url.
func (c *MockWebConnection) SetResponseFromFile(url string, path string) error {
	html, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	c.SetResponse(url, string(html))
	return nil
}

func (c *MockWebConnection) GetResponse(_ context.Context, url string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.requested = append(c.requested, url)
	html, ok := c.responses[url]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNoResponse, url)
	}
	return html, nil
}

// RequestedURLs lists the URLs asked for, in order.
func (c *MockWebConnection) RequestedURLs() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.requested...)
}

func NewMockWebConnection() *MockWebConnection {
	return &MockWebConnection{
		responses: map[string]string{},
	}
}
