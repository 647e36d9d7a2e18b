package kraken

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// APIError is an error Kraken reports inside an otherwise-200 JSON body.
type APIError struct {
	Errors []string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("kraken api error: %s", strings.Join(e.Errors, ", "))
}

// envelope is the common shape of every public endpoint response.
type envelope struct {
	Error  []string        `json:"error"`
	Result json.RawMessage `json:"result"`
}

// getJSON performs a GET against path, validates the envelope and
// unmarshals the result payload into out.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	for key, values := range c.header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("performing request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(res.Body, 2<<10))
		return fmt.Errorf("GET %s -> %d: %s", path, res.StatusCode, string(b))
	}

	var env envelope
	if err := json.NewDecoder(res.Body).Decode(&env); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	// Kraken reports failures through the error array with a 200 status.
	if len(env.Error) > 0 {
		return &APIError{Errors: env.Error}
	}
	if len(env.Result) == 0 {
		return fmt.Errorf("empty result for %s", path)
	}
	if err := json.Unmarshal(env.Result, out); err != nil {
		return fmt.Errorf("decoding result: %w", err)
	}
	return nil
}
