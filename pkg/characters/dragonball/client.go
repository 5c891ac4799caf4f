// Package dragonball is a thin HTTP client for the public Dragon Ball API
// (https://dragonball-api.com). It is the only place that knows about the
// upstream's varying response shapes.
package dragonball

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/artem13815/dragonball/pkg/characters"
)

const defaultBaseURL = "https://dragonball-api.com/api"

type Client struct {
	baseURL string
	httpDo  *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		httpDo:  &http.Client{Timeout: timeout},
	}
}

func (c *Client) List(ctx context.Context, page, limit int) (characters.Result, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))
	return c.get(ctx, "/characters?"+q.Encode())
}

func (c *Client) GetByID(ctx context.Context, id int) (characters.Result, error) {
	return c.get(ctx, "/characters/"+strconv.Itoa(id))
}

func (c *Client) Search(ctx context.Context, name string) (characters.Result, error) {
	q := url.Values{}
	q.Set("name", name)
	return c.get(ctx, "/characters?"+q.Encode())
}

func (c *Client) get(ctx context.Context, path string) (characters.Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return characters.Result{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpDo.Do(req)
	if err != nil {
		return characters.Result{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return characters.Result{}, fmt.Errorf("dragonball api http %d", resp.StatusCode)
	}

	var raw json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return characters.Result{}, err
	}
	return normalize(raw)
}

// normalize maps the upstream's three response shapes (paginated object,
// bare array, single object) onto the tagged union exactly once, at the
// proxy boundary.
func normalize(raw json.RawMessage) (characters.Result, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return characters.Result{Kind: characters.KindEmpty}, nil
	}

	if trimmed[0] == '[' {
		var items []characters.Character
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return characters.Result{}, err
		}
		if len(items) == 0 {
			return characters.Result{Kind: characters.KindEmpty}, nil
		}
		return characters.Result{Kind: characters.KindList, Items: items}, nil
	}

	var page struct {
		Items []characters.Character `json:"items"`
		Meta  characters.PageMeta    `json:"meta"`
	}
	if err := json.Unmarshal(trimmed, &page); err == nil && page.Items != nil {
		if len(page.Items) == 0 {
			return characters.Result{Kind: characters.KindEmpty}, nil
		}
		return characters.Result{Kind: characters.KindPaginated, Items: page.Items, Meta: page.Meta}, nil
	}

	var single characters.Character
	if err := json.Unmarshal(trimmed, &single); err != nil {
		return characters.Result{}, err
	}
	if single.ID == 0 {
		return characters.Result{Kind: characters.KindEmpty}, nil
	}
	return characters.Result{Kind: characters.KindSingle, Items: []characters.Character{single}}, nil
}

var _ characters.Catalog = (*Client)(nil)
