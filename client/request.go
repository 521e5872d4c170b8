package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

/*
 * version is the tagged version of this repository. It is overridden at build time by ldflags.
 */
var version = "dev"

// APIError is an error type that exposes additional information about why an API request failed.
type APIError struct {
	Code       int    `json:"code"`
	Message    string `json:"message"`
	StatusCode int
	RawMessage []byte
}

// Error provides a user friendly error message.
func (e APIError) Error() string {
	if e.Code == 0 && e.Message == "" {
		return fmt.Sprintf("api request failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("%d - %s", e.Code, e.Message)
}

type clientRequest struct {
	ctx    context.Context
	method string
	url    string
	body   string
}

func (cr *clientRequest) toHTTPRequest() (*http.Request, error) {
	r, err := http.NewRequestWithContext(
		cr.ctx,
		cr.method,
		cr.url,
		strings.NewReader(cr.body),
	)
	if err != nil {
		return nil, err
	}
	r.Header.Set("User-Agent", fmt.Sprintf("terraform-provider-pages/%s", version))
	r.Header.Set("Accept", "application/json")
	if cr.body != "" {
		r.Header.Set("Content-Type", "application/json")
	}
	return r, nil
}

// authHeaders returns the authentication headers for a request. Exactly one
// scheme is used: key+email when an account email is configured, a Bearer
// API token otherwise.
func (c *Client) authHeaders() http.Header {
	h := http.Header{}
	if c.accountEmail != "" {
		h.Set("X-Auth-Key", c.token)
		h.Set("X-Auth-Email", c.accountEmail)
		return h
	}
	h.Set("Authorization", fmt.Sprintf("Bearer %s", c.token))
	return h
}

// doRequest is a helper function for consistently requesting data from Cloudflare.
// This manages:
// - Setting the default Content-Type for requests with a body
// - Setting the User-Agent
// - Authorization via either the Bearer token or the key+email pair
// - Converting error responses into an inspectable type
// - Unmarshaling responses
//
// The raw response body is returned alongside any error so callers can report it.
// A failed request is returned as is. There are no retries.
func (c *Client) doRequest(req clientRequest, v any) ([]byte, error) {
	r, err := req.toHTTPRequest()
	if err != nil {
		return nil, err
	}
	return c._doRequest(r, v)
}

func (c *Client) _doRequest(req *http.Request, v any) ([]byte, error) {
	for k, vs := range c.authHeaders() {
		for _, hv := range vs {
			req.Header.Add(k, hv)
		}
	}
	resp, err := c.http().Do(req)
	if err != nil {
		return nil, fmt.Errorf("error doing http request: %w", err)
	}

	defer resp.Body.Close()
	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response body: %w", err)
	}

	if resp.StatusCode >= 300 {
		var errorResponse APIError
		if string(responseBody) == "" {
			errorResponse.StatusCode = resp.StatusCode
			return responseBody, errorResponse
		}
		var envelope struct {
			Errors []APIError `json:"errors"`
		}
		err = json.Unmarshal(responseBody, &envelope)
		if err != nil {
			return responseBody, fmt.Errorf("error unmarshaling response for status code %d: %w: %s", resp.StatusCode, err, string(responseBody))
		}
		if len(envelope.Errors) == 0 {
			return responseBody, fmt.Errorf("error performing API request: %d %s", resp.StatusCode, string(responseBody))
		}
		errorResponse = envelope.Errors[0]
		errorResponse.StatusCode = resp.StatusCode
		errorResponse.RawMessage = responseBody
		return responseBody, errorResponse
	}

	// An empty body decodes to nothing and leaves v untouched.
	if v == nil || len(bytes.TrimSpace(responseBody)) == 0 {
		return responseBody, nil
	}

	err = json.Unmarshal(responseBody, v)
	if err != nil {
		return responseBody, fmt.Errorf("error unmarshaling response %s: %w", responseBody, err)
	}

	return responseBody, nil
}
