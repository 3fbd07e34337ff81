package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gauravscripts/empdir"
	"github.com/gauravscripts/empdir/types"
	"github.com/gauravscripts/empdir/wirejson"
)

// Compile-time interface check.
var _ empdir.Connection = (*Client)(nil)

// Client implements empdir.Connection against a REST directory.
type Client struct {
	base string
	hc   *http.Client
}

// NewClient creates a client for the directory at baseURL, e.g.
// "http://127.0.0.1:8080". A nil hc uses http.DefaultClient.
func NewClient(baseURL string, hc *http.Client) *Client {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{base: strings.TrimRight(baseURL, "/"), hc: hc}
}

func (c *Client) GetEmployee(ctx context.Context, id int32) (types.Employee, error) {
	body, err := c.do(ctx, http.MethodGet, "/employee/"+strconv.FormatInt(int64(id), 10), nil, id)
	if err != nil {
		return types.Employee{}, err
	}
	return wirejson.UnmarshalEmployee(body)
}

func (c *Client) AddEmployee(ctx context.Context, e types.Employee) (types.Employee, error) {
	payload, err := wirejson.MarshalEmployee(e)
	if err != nil {
		return types.Employee{}, err
	}
	body, err := c.do(ctx, http.MethodPost, "/employee", payload, 0)
	if err != nil {
		return types.Employee{}, err
	}
	return wirejson.UnmarshalEmployee(body)
}

func (c *Client) ListEmployees(ctx context.Context) ([]types.Employee, error) {
	body, err := c.do(ctx, http.MethodGet, "/employees", nil, 0)
	if err != nil {
		return nil, err
	}
	return wirejson.UnmarshalEmployees(body)
}

// Close releases idle connections.
func (c *Client) Close() error {
	c.hc.CloseIdleConnections()
	return nil
}

// do performs one request and returns the body of a 200 response.
// Error statuses are mapped back onto the directory's typed errors.
func (c *Client) do(ctx context.Context, method, path string, payload []byte, id int32) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("empdir rest: build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if reqID := RequestIDFrom(ctx); reqID != "" {
		req.Header.Set(RequestIDHeader, reqID)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("empdir rest: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("empdir rest: read response: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return body, nil
	case http.StatusNotFound:
		return nil, empdir.NewNotFoundError(id)
	case http.StatusBadRequest:
		return nil, empdir.NewBadRequestError("", errorMessage(body))
	default:
		return nil, fmt.Errorf("empdir rest: %s %s: status %d: %s", method, path, resp.StatusCode, errorMessage(body))
	}
}

func errorMessage(body []byte) string {
	var eb ErrorBody
	if err := json.Unmarshal(body, &eb); err != nil || eb.Message == "" {
		return strings.TrimSpace(string(body))
	}
	return eb.Message
}
