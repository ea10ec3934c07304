package recipes

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// upstreamTimeout bounds every call to the recipe provider so a stalled
// upstream surfaces as an error instead of a hung request.
const upstreamTimeout = 10 * time.Second

// checkResp reads the response body and returns an error if the status is not 2xx.
// On error it includes the upstream body for debugging.
func checkResp(resp *http.Response, path string) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	body, _ := io.ReadAll(resp.Body)
	return fmt.Errorf("recipe-api %s returned %d: %s", path, resp.StatusCode, string(body))
}

// SearchClient calls the external recipe provider over HTTP. The API key is
// injected here, server-side, and never reaches the browser.
type SearchClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewSearchClient(baseURL, apiKey string) *SearchClient {
	return &SearchClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: upstreamTimeout},
	}
}

// Search calls the provider's complex-search endpoint. number and offset are
// passed through verbatim; the provider's result list is relayed untouched.
func (c *SearchClient) Search(ctx context.Context, query, number, offset string) (json.RawMessage, error) {
	q := url.Values{}
	q.Set("query", query)
	if number != "" {
		q.Set("number", number)
	}
	if offset != "" {
		q.Set("offset", offset)
	}

	var payload struct {
		Results json.RawMessage `json:"results"`
	}
	if err := c.get(ctx, "/recipes/complexSearch", q, &payload); err != nil {
		return nil, err
	}
	if payload.Results == nil {
		return json.RawMessage("[]"), nil
	}
	return payload.Results, nil
}

// Detail calls the provider's single-recipe information endpoint and relays
// the full payload verbatim.
func (c *SearchClient) Detail(ctx context.Context, recipeID string) (json.RawMessage, error) {
	var payload json.RawMessage
	path := fmt.Sprintf("/recipes/%s/information", url.PathEscape(recipeID))
	if err := c.get(ctx, path, url.Values{}, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

func (c *SearchClient) get(ctx context.Context, path string, q url.Values, out interface{}) error {
	q.Set("apiKey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return fmt.Errorf("recipe-api %s: %w", path, err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("recipe-api %s: %w", path, err)
	}
	defer resp.Body.Close()

	if err := checkResp(resp, path); err != nil {
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("recipe-api %s: decode: %w", path, err)
	}
	return nil
}
