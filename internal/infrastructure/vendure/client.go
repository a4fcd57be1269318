package vendure

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/cahoico/storefront/internal/domain/shared"
)

const headerChannelToken = "vendure-token"

// Client is a GraphQL client for the Vendure shop API. It holds the
// session cookie jar, so one Client is one shop session; concurrent
// identical requests are collapsed into a single upstream call for as
// long as the first one is in flight.
type Client struct {
	httpClient *http.Client
	apiURL     string
	token      string
	logger     *zap.Logger
	group      singleflight.Group
}

// NewClient creates a shop-API client. The channel token is attached to
// every request; session state lives in the cookie jar.
func NewClient(apiURL, token string, timeout time.Duration, logger *zap.Logger) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}

	return &Client{
		httpClient: &http.Client{
			Jar:     jar,
			Timeout: timeout,
		},
		apiURL: apiURL,
		token:  token,
		logger: logger.Named("vendure"),
	}, nil
}

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphqlError struct {
	Message string `json:"message"`
}

type graphqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphqlError  `json:"errors"`
}

// Execute runs one GraphQL operation and decodes the data payload into
// out. Identical in-flight operations share one round trip; the result
// is not cached beyond completion, so the next call hits the API again.
func (c *Client) Execute(ctx context.Context, query string, variables map[string]any, out any) error {
	key, err := requestKey(query, variables)
	if err != nil {
		return fmt.Errorf("build request key: %w", err)
	}

	raw, err, _ := c.group.Do(key, func() (any, error) {
		return c.post(ctx, query, variables)
	})
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw.(json.RawMessage), out); err != nil {
		return fmt.Errorf("decode shop api payload: %w", err)
	}
	return nil
}

func (c *Client) post(ctx context.Context, query string, variables map[string]any) (json.RawMessage, error) {
	body, err := json.Marshal(graphqlRequest{Query: query, Variables: variables})
	if err != nil {
		return nil, fmt.Errorf("encode shop api request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build shop api request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(headerChannelToken, c.token)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("shop api transport failure", zap.Error(err))
		return nil, shared.NewNetworkError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		c.logger.Warn("shop api non-success status",
			zap.Int("status", resp.StatusCode),
			zap.Duration("elapsed", time.Since(start)),
		)
		return nil, shared.NewNetworkStatusError(resp.StatusCode)
	}

	var envelope graphqlResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, shared.NewNetworkError(fmt.Errorf("decode response: %w", err))
	}
	if len(envelope.Errors) > 0 {
		c.logger.Warn("shop api graphql error", zap.String("message", envelope.Errors[0].Message))
		return nil, shared.NewBackendError(envelope.Errors[0].Message)
	}

	c.logger.Debug("shop api call", zap.Duration("elapsed", time.Since(start)))
	return envelope.Data, nil
}

// requestKey canonicalizes an operation and its variables. json.Marshal
// sorts map keys, so two calls with the same variables in different
// construction order collapse to the same key.
func requestKey(query string, variables map[string]any) (string, error) {
	if len(variables) == 0 {
		return query, nil
	}
	vars, err := json.Marshal(variables)
	if err != nil {
		return "", err
	}
	return query + "|" + string(vars), nil
}
