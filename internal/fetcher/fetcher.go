// Package fetcher reads the remote user collection.
package fetcher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"users-table/internal/model"

	"github.com/go-playground/validator/v10"
)

// DefaultURL 公開示範 API 的使用者清單
const DefaultURL = "https://jsonplaceholder.typicode.com/users"

// maxBodyBytes caps the response read from the upstream.
const maxBodyBytes = 1 << 20

// ErrFetchFailure covers every way a fetch can fail: transport, status,
// decoding and schema validation alike.
var ErrFetchFailure = errors.New("fetch failure")

// Doer is the subset of *http.Client used by Client.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client fetches users from a fixed endpoint.
type Client struct {
	url      string
	http     Doer
	validate *validator.Validate
}

// New returns a Client for url. A nil doer uses http.DefaultClient.
func New(url string, doer Doer, v *validator.Validate) *Client {
	if url == "" {
		url = DefaultURL
	}
	if doer == nil {
		doer = http.DefaultClient
	}
	if v == nil {
		v = validator.New()
	}
	return &Client{url: url, http: doer, validate: v}
}

// Fetch issues one GET and returns the parsed, validated collection.
func (c *Client) Fetch(ctx context.Context) ([]model.User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, failure("build request", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, failure("request", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, failure("status", fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var users []model.User
	dec := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes))
	if err := dec.Decode(&users); err != nil {
		return nil, failure("decode", err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, failure("decode", errors.New("unexpected data after user list"))
	}
	if err := c.check(users); err != nil {
		return nil, failure("validate", err)
	}
	if users == nil {
		users = []model.User{}
	}
	return users, nil
}

// check rejects records with missing fields and duplicate ids.
func (c *Client) check(users []model.User) error {
	for i := range users {
		if err := c.validate.Struct(&users[i]); err != nil {
			return fmt.Errorf("user at index %d: %w", i, err)
		}
	}
	if err := c.validate.Var(users, "unique=ID"); err != nil {
		return fmt.Errorf("duplicate user id: %w", err)
	}
	return nil
}

func failure(stage string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrFetchFailure, stage, err)
}
