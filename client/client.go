// Package client is a typed HTTP client for the portal API, used by the CLI.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"hospital-portal/core/faqs"
	"hospital-portal/core/incidents"
	"hospital-portal/core/store"
)

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int
	Message string `json:"error"`
	Field   string `json:"field"`
	Rule    string `json:"rule"`
}

func (e *APIError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%d: %s (field %s, rule %s)", e.Status, e.Message, e.Field, e.Rule)
	}
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

// IsNotFound reports whether err is a 404 from the server.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

type DeleteResult struct {
	Message   string `json:"message"`
	DeletedID int64  `json:"deletedId"`
}

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) ListFAQs(ctx context.Context) ([]store.FAQ, error) {
	var out []store.FAQ
	err := c.do(ctx, http.MethodGet, "/api/faqs", nil, &out)
	return out, err
}

func (c *Client) GetFAQ(ctx context.Context, id int64) (*store.FAQ, error) {
	var out store.FAQ
	if err := c.do(ctx, http.MethodGet, "/api/faqs/"+strconv.FormatInt(id, 10), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SearchFAQs lists everything for a blank keyword.
func (c *Client) SearchFAQs(ctx context.Context, keyword string) ([]store.FAQ, error) {
	if strings.TrimSpace(keyword) == "" {
		return c.ListFAQs(ctx)
	}
	var out []store.FAQ
	err := c.do(ctx, http.MethodGet, "/api/faqs/search/"+url.PathEscape(keyword), nil, &out)
	return out, err
}

// FAQsByCategory lists everything for a blank category.
func (c *Client) FAQsByCategory(ctx context.Context, category string) ([]store.FAQ, error) {
	if strings.TrimSpace(category) == "" {
		return c.ListFAQs(ctx)
	}
	var out []store.FAQ
	err := c.do(ctx, http.MethodGet, "/api/faqs/category/"+url.PathEscape(category), nil, &out)
	return out, err
}

func (c *Client) AddFAQ(ctx context.Context, in faqs.Input) (*store.FAQ, error) {
	var out store.FAQ
	if err := c.do(ctx, http.MethodPost, "/api/faqs", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateFAQ(ctx context.Context, id int64, in faqs.Input) (*store.FAQ, error) {
	var out store.FAQ
	if err := c.do(ctx, http.MethodPut, "/api/faqs/"+strconv.FormatInt(id, 10), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteFAQ(ctx context.Context, id int64) (*DeleteResult, error) {
	var out DeleteResult
	if err := c.do(ctx, http.MethodDelete, "/api/faqs/"+strconv.FormatInt(id, 10), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListIncidents(ctx context.Context) ([]store.IncidentReport, error) {
	var out []store.IncidentReport
	err := c.do(ctx, http.MethodGet, "/api/incidents", nil, &out)
	return out, err
}

func (c *Client) GetIncident(ctx context.Context, id int64) (*store.IncidentReport, error) {
	var out store.IncidentReport
	if err := c.do(ctx, http.MethodGet, "/api/incidents/"+strconv.FormatInt(id, 10), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SearchIncidents lists everything for a blank keyword.
func (c *Client) SearchIncidents(ctx context.Context, keyword string) ([]store.IncidentReport, error) {
	if strings.TrimSpace(keyword) == "" {
		return c.ListIncidents(ctx)
	}
	var out []store.IncidentReport
	err := c.do(ctx, http.MethodGet, "/api/incidents/search/"+url.PathEscape(keyword), nil, &out)
	return out, err
}

func (c *Client) AddIncident(ctx context.Context, in incidents.Input) (*store.IncidentReport, error) {
	var out store.IncidentReport
	if err := c.do(ctx, http.MethodPost, "/api/incidents", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteIncident(ctx context.Context, id int64) (*DeleteResult, error) {
	var out DeleteResult
	if err := c.do(ctx, http.MethodDelete, "/api/incidents/"+strconv.FormatInt(id, 10), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
		if json.Unmarshal(raw, apiErr) != nil || apiErr.Message == "" {
			apiErr.Message = strings.TrimSpace(string(raw))
			if apiErr.Message == "" {
				apiErr.Message = http.StatusText(resp.StatusCode)
			}
		}
		return apiErr
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}
