// Package api is a small HTTP client for the newsroom REST API. Error
// responses are mapped back onto the sentinel errors in internal/common.
package api

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

	"github.com/dmitrijs2005/newsroom/internal/common"
)

type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	IsAdmin   bool      `json:"is_admin"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

type Article struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	OwnerID   int64     `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Client struct {
	baseURL *url.URL
	http    *http.Client
}

// New returns a client for the server at baseURL, e.g. "http://localhost:8000".
func New(baseURL string, timeout time.Duration) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid server url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid server url %q: scheme must be http or https", baseURL)
	}
	return &Client{baseURL: u, http: &http.Client{Timeout: timeout}}, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*Token, error) {
	form := url.Values{"username": {email}, "password": {password}}
	req, err := c.newRequest(ctx, http.MethodPost, "/token", "", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var tok Token
	if err := c.do(req, http.StatusOK, &tok); err != nil {
		if errors.Is(err, common.ErrUnauthenticated) {
			return nil, common.ErrAuthenticationFailed
		}
		return nil, err
	}
	return &tok, nil
}

// Register creates an account. token may be empty unless isAdmin is set.
func (c *Client) Register(ctx context.Context, token, email, password string, isAdmin bool) (*User, error) {
	var u User
	body := map[string]any{"email": email, "password": password, "is_admin": isAdmin}
	if err := c.doJSON(ctx, http.MethodPost, "/users/", token, body, http.StatusOK, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) Me(ctx context.Context, token string) (*User, error) {
	var u User
	if err := c.doJSON(ctx, http.MethodGet, "/users/me/", token, nil, http.StatusOK, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) ListArticles(ctx context.Context, skip, limit int) ([]Article, error) {
	q := url.Values{}
	q.Set("skip", strconv.Itoa(skip))
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	var out []Article
	if err := c.doJSON(ctx, http.MethodGet, "/news/?"+q.Encode(), "", nil, http.StatusOK, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetArticle(ctx context.Context, id int64) (*Article, error) {
	var a Article
	if err := c.doJSON(ctx, http.MethodGet, articlePath(id), "", nil, http.StatusOK, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (c *Client) CreateArticle(ctx context.Context, token, title, content string) (*Article, error) {
	var a Article
	body := map[string]string{"title": title, "content": content}
	if err := c.doJSON(ctx, http.MethodPost, "/news/", token, body, http.StatusCreated, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (c *Client) UpdateArticle(ctx context.Context, token string, id int64, title, content string) (*Article, error) {
	var a Article
	body := map[string]string{"title": title, "content": content}
	if err := c.doJSON(ctx, http.MethodPut, articlePath(id), token, body, http.StatusOK, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (c *Client) DeleteArticle(ctx context.Context, token string, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, articlePath(id), token, nil, http.StatusNoContent, nil)
}

func articlePath(id int64) string {
	return "/news/" + strconv.FormatInt(id, 10)
}

func (c *Client) newRequest(ctx context.Context, method, path, token string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.String()+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

func (c *Client) doJSON(ctx context.Context, method, path, token string, in any, want int, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}
	req, err := c.newRequest(ctx, method, path, token, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(req, want, out)
}

func (c *Client) do(req *http.Request, want int, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		return responseError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
