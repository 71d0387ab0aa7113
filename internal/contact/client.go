package contact

import (
	"context"
	"fmt"

	"github.com/handiism/sjt-catalog/internal/http"
)

// Client submits forms to a relay.
type Client struct {
	url  string
	http *http.Client
}

// NewClient creates a client for the relay at url.
func NewClient(url string, hc *http.Client) *Client {
	if hc == nil {
		hc = http.NewClient()
	}
	return &Client{url: url, http: hc}
}

// Submit passes f through the consent gate and posts it. On success it
// returns the acknowledgement to show. A rejection by the relay is a
// *RelayError whose Message is shown as is.
func (c *Client) Submit(ctx context.Context, f Form) (string, error) {
	if err := f.Gate(); err != nil {
		return "", &RelayError{Message: MsgConsentRequired}
	}

	resp, err := c.http.PostForm(ctx, c.url, f.Values())
	if err != nil {
		return "", fmt.Errorf("contact relay: %w", err)
	}
	if !resp.OK() {
		msg := resp.Body
		if msg == "" {
			msg = fmt.Sprintf("HTTP %d", resp.StatusCode)
		}
		return "", &RelayError{StatusCode: resp.StatusCode, Message: msg}
	}

	if resp.Body != "" && resp.StatusCode == 200 {
		return resp.Body, nil
	}
	return "Mensaje enviado.", nil
}
