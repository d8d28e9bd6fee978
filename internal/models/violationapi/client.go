package violationapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"parking-violations/internal/models"
)

const RequestIDHeader = "X-Request-ID"

type Client struct {
	baseURL string
	http    *http.Client
}

func NewHTTPClient(timeout time.Duration) *http.Client {
	tr := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		DialContext:         (&net.Dialer{Timeout: 5 * time.Second, KeepAlive: 60 * time.Second}).DialContext,
		MaxIdleConns:        10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &http.Client{Timeout: timeout, Transport: tr}
}

func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = NewHTTPClient(10 * time.Second)
	}
	return &Client{baseURL: baseURL, http: httpClient}
}

func (c *Client) GetViolations(ctx context.Context) ([]models.Violation, error) {
	endpoint, err := url.JoinPath(c.baseURL, "violations")
	if err != nil {
		return nil, err
	}

	var violations []models.Violation
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &violations); err != nil {
		return nil, err
	}
	if violations == nil {
		violations = []models.Violation{}
	}
	return violations, nil
}

func (c *Client) UpdateViolationStatus(ctx context.Context, id string, resolved bool) (models.Violation, error) {
	endpoint, err := url.JoinPath(c.baseURL, "violations", url.PathEscape(id))
	if err != nil {
		return models.Violation{}, err
	}

	var violation models.Violation
	if err := c.do(ctx, http.MethodPatch, endpoint, StatusBody{Resolved: resolved}, &violation); err != nil {
		return models.Violation{}, err
	}
	return violation, nil
}

func (c *Client) do(ctx context.Context, method, endpoint string, in, out any) error {
	var body io.Reader
	if in != nil {
		bs, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(bs)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, uuid.NewString())
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb ErrorBody
		_ = json.Unmarshal(data, &eb)
		return &APIError{StatusCode: resp.StatusCode, Message: eb.Error}
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
