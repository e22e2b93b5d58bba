package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

const maxResponseBytes = 8 << 20

// Order is a PostgREST order clause.
type Order struct {
	Column     string
	Descending bool
}

// NewestFirst orders rows by created_at descending.
var NewestFirst = Order{Column: "created_at", Descending: true}

func (o Order) String() string {
	if o.Column == "" {
		return ""
	}
	if o.Descending {
		return o.Column + ".desc"
	}
	return o.Column + ".asc"
}

// ListOptions narrows a List call. Zero Limit means no limit.
type ListOptions struct {
	Order  Order
	Limit  int
	Offset int
}

// StoreClient talks to the hosted table store over its REST interface. Each
// method is a single round-trip; nothing is retried.
type StoreClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
	logger  *zap.Logger
}

// NewStoreClient returns a client for the store at baseURL authenticating
// with apiKey.
func NewStoreClient(baseURL, apiKey string, timeout time.Duration, logger *zap.Logger) *StoreClient {
	return &StoreClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		logger: logger.Named("store_client"),
	}
}

// Insert adds record to table and decodes the stored row into out.
func (c *StoreClient) Insert(ctx context.Context, table string, record any, out any) error {
	body, err := c.do(ctx, http.MethodPost, table, nil, []any{record}, "return=representation")
	if err != nil {
		return err
	}
	return decodeSingle(body, out)
}

// List decodes every row of table into out, which must point to a slice.
func (c *StoreClient) List(ctx context.Context, table string, opts ListOptions, out any) error {
	query := url.Values{"select": {"*"}}
	if order := opts.Order.String(); order != "" {
		query.Set("order", order)
	}
	if opts.Limit > 0 {
		query.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.Offset > 0 {
		query.Set("offset", strconv.Itoa(opts.Offset))
	}

	body, err := c.do(ctx, http.MethodGet, table, query, nil, "")
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		c.logger.Error("Failed to decode list response", zap.String("table", table), zap.Error(err))
		return fmt.Errorf("decode %s rows: %w", table, err)
	}
	return nil
}

// Get decodes the row with the given id into out. It returns ErrNotFound when
// no row matches.
func (c *StoreClient) Get(ctx context.Context, table, id string, out any) error {
	query := url.Values{"select": {"*"}, "id": {"eq." + id}}
	body, err := c.do(ctx, http.MethodGet, table, query, nil, "")
	if err != nil {
		return err
	}
	return decodeSingle(body, out)
}

// Update applies patch to the row with the given id and decodes the updated
// row into out.
func (c *StoreClient) Update(ctx context.Context, table, id string, patch any, out any) error {
	query := url.Values{"id": {"eq." + id}}
	body, err := c.do(ctx, http.MethodPatch, table, query, patch, "return=representation")
	if err != nil {
		return err
	}
	return decodeSingle(body, out)
}

// DeleteByID removes the row with the given id. Deleting a missing row is not
// an error.
func (c *StoreClient) DeleteByID(ctx context.Context, table, id string) error {
	query := url.Values{"id": {"eq." + id}}
	_, err := c.do(ctx, http.MethodDelete, table, query, nil, "return=minimal")
	return err
}

func (c *StoreClient) do(ctx context.Context, method, table string, query url.Values, payload any, prefer string) ([]byte, error) {
	endpoint := fmt.Sprintf("%s/rest/v1/%s", c.baseURL, url.PathEscape(table))
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode %s payload: %w", table, err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", method, err)
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if prefer != "" {
		req.Header.Set("Prefer", prefer)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Error("Record store request failed",
			zap.String("method", method),
			zap.String("table", table),
			zap.Error(err))
		return nil, fmt.Errorf("%s %s: %w", method, table, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", table, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		storeErr := parseStoreError(resp.StatusCode, body)
		c.logger.Error("Record store returned error",
			zap.String("method", method),
			zap.String("table", table),
			zap.Int("status", resp.StatusCode),
			zap.String("code", storeErr.Code),
			zap.String("message", storeErr.Message))
		return nil, storeErr
	}

	return body, nil
}

func decodeSingle(body []byte, out any) error {
	var rows []json.RawMessage
	if err := json.Unmarshal(body, &rows); err != nil {
		return fmt.Errorf("decode rows: %w", err)
	}
	if len(rows) == 0 {
		return ErrNotFound
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(rows[0], out); err != nil {
		return fmt.Errorf("decode row: %w", err)
	}
	return nil
}
