package client

import (
	"net/http"
	"strings"
	"time"
)

// DefaultBaseURL is the root of the Cloudflare v4 API.
const DefaultBaseURL = "https://api.cloudflare.com/client/v4"

// Client is an API wrapper, providing a high-level interface to the Cloudflare Pages API.
type Client struct {
	token        string
	accountEmail string
	accountID    string
	client       *http.Client
	baseURL      string
}

func (c *Client) http() *http.Client {
	if c.client == nil {
		c.client = &http.Client{
			Timeout: 60 * time.Second,
		}
	}

	return c.client
}

// New creates a new instance of Client for a given API token.
//
// Without an account email the token is sent as a Bearer API token. Call
// WithAccountEmail to use a Global API Key instead.
func New(token string) *Client {
	return &Client{
		token:   token,
		baseURL: DefaultBaseURL,
	}
}

// WithAccountEmail switches the client to key+email authentication.
func (c *Client) WithAccountEmail(email string) *Client {
	c.accountEmail = email
	return c
}

// WithAccountID sets the account used when a request does not name one.
func (c *Client) WithAccountID(accountID string) *Client {
	c.accountID = accountID
	return c
}

// WithBaseURL points the client at a different API root.
func (c *Client) WithBaseURL(baseURL string) *Client {
	if baseURL != "" {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
	return c
}

// WithHTTPClient overrides the http.Client used for requests.
func (c *Client) WithHTTPClient(h *http.Client) *Client {
	c.client = h
	return c
}

// AccountID returns the default account for the client.
func (c *Client) AccountID() string {
	return c.accountID
}

func (c *Client) account(accountID string) string {
	if accountID != "" {
		return accountID
	}
	return c.accountID
}
