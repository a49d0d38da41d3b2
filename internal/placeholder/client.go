// Package placeholder is a client for a JSON posts API, such as the public
// placeholder API.
package placeholder

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

	"github.com/leg100/postie/internal/logging"
	"github.com/leg100/postie/internal/post"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL   = "https://jsonplaceholder.typicode.com"
	DefaultRateLimit = 5

	// maxBodySize caps the size of response bodies read into memory.
	maxBodySize = 10 << 20
)

type ClientOptions struct {
	BaseURL    string
	HTTPClient *http.Client
	// RateLimit is the maximum number of requests per second. Zero means no
	// limit.
	RateLimit float64
	Logger    logging.Interface
}

type Client struct {
	baseURL *url.URL
	client  *http.Client
	limiter *rate.Limiter
	logger  logging.Interface
}

func NewClient(opts ClientOptions) (*Client, error) {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	u, err := url.Parse(opts.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url must use http or https: %s", opts.BaseURL)
	}
	u.Path = strings.TrimSuffix(u.Path, "/")

	c := &Client{
		baseURL: u,
		client:  opts.HTTPClient,
		limiter: rate.NewLimiter(rate.Inf, 0),
		logger:  opts.Logger,
	}
	if c.client == nil {
		c.client = &http.Client{Timeout: 30 * time.Second}
	}
	if c.logger == nil {
		c.logger = logging.Discard
	}
	if opts.RateLimit > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), max(1, int(opts.RateLimit)))
	}
	return c, nil
}

// ListPosts retrieves all posts.
func (c *Client) ListPosts(ctx context.Context) ([]post.Post, error) {
	return c.listPosts(ctx, nil)
}

// ListPostsByUser retrieves the posts authored by the given user.
func (c *Client) ListPostsByUser(ctx context.Context, userID int) ([]post.Post, error) {
	return c.listPosts(ctx, url.Values{"userId": {strconv.Itoa(userID)}})
}

func (c *Client) listPosts(ctx context.Context, query url.Values) ([]post.Post, error) {
	var posts []post.Post
	u, err := c.do(ctx, http.MethodGet, "/posts", query, nil, &posts)
	if err != nil {
		return nil, err
	}
	if posts == nil {
		return nil, &ParseError{URL: u, Err: errors.New("response is not a collection")}
	}
	seen := make(map[int]struct{}, len(posts))
	for _, p := range posts {
		if p.ID == 0 {
			return nil, &ParseError{URL: u, Err: errors.New("post without id")}
		}
		if _, ok := seen[p.ID]; ok {
			return nil, &ParseError{URL: u, Err: fmt.Errorf("duplicate post id: %d", p.ID)}
		}
		seen[p.ID] = struct{}{}
	}
	return posts, nil
}

// GetUser retrieves a user.
func (c *Client) GetUser(ctx context.Context, id int) (post.User, error) {
	var user post.User
	if _, err := c.do(ctx, http.MethodGet, "/users/"+strconv.Itoa(id), nil, nil, &user); err != nil {
		return post.User{}, err
	}
	return user, nil
}

// UpdatePost partially updates a post, returning the updated post.
func (c *Client) UpdatePost(ctx context.Context, patch post.Patch) (post.Post, error) {
	var updated post.Post
	if _, err := c.do(ctx, http.MethodPatch, "/posts/"+strconv.Itoa(patch.ID), nil, patch, &updated); err != nil {
		return post.Post{}, err
	}
	return updated, nil
}

// do sends a request and decodes the JSON response into dst, returning the
// request URL.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, dst any) (string, error) {
	u := c.baseURL.JoinPath(path)
	u.RawQuery = query.Encode()
	target := u.String()

	if err := c.limiter.Wait(ctx); err != nil {
		return target, &TransportError{Method: method, URL: target, Err: err}
	}

	var reqBody io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return target, fmt.Errorf("marshaling request body: %w", err)
		}
		reqBody = bytes.NewReader(buf)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reqBody)
	if err != nil {
		return target, fmt.Errorf("constructing request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json; charset=UTF-8")
	}

	c.logger.Debug("sending request", "method", method, "url", target)
	resp, err := c.client.Do(req)
	if err != nil {
		return target, &TransportError{Method: method, URL: target, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return target, &StatusError{
			Method: method,
			URL:    target,
			Code:   resp.StatusCode,
			Status: resp.Status,
		}
	}

	buf, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
	if err != nil {
		return target, &TransportError{Method: method, URL: target, Err: err}
	}
	if len(buf) > maxBodySize {
		return target, &ParseError{URL: target, Err: fmt.Errorf("response exceeds %d bytes", maxBodySize)}
	}
	if err := json.Unmarshal(buf, dst); err != nil {
		return target, &ParseError{URL: target, Err: err}
	}
	c.logger.Debug("received response", "method", method, "url", target, "status", resp.StatusCode, "bytes", len(buf))
	return target, nil
}
