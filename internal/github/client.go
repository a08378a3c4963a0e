package github

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client commits generated site files through the GitHub contents API.
type Client struct {
	token      string
	owner      string
	repo       string
	branch     string
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a new GitHub contents client.
func NewClient(token, owner, repo, branch string) *Client {
	return &Client{
		token:   token,
		owner:   owner,
		repo:    repo,
		branch:  branch,
		baseURL: "https://api.github.com",
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// NewClientWithBaseURL creates a client against a custom API endpoint.
func NewClientWithBaseURL(token, owner, repo, branch, baseURL string) *Client {
	c := NewClient(token, owner, repo, branch)
	c.baseURL = strings.TrimRight(baseURL, "/")
	return c
}

// File is a repository file returned by GetFile. SHA is the blob hash
// required as a precondition for updates and deletes.
type File struct {
	Path    string
	SHA     string
	Content []byte
}

type contentsResponse struct {
	Path     string `json:"path"`
	SHA      string `json:"sha"`
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
}

type putRequest struct {
	Message string `json:"message"`
	Content string `json:"content"`
	Branch  string `json:"branch,omitempty"`
	SHA     string `json:"sha,omitempty"`
}

type deleteRequest struct {
	Message string `json:"message"`
	SHA     string `json:"sha"`
	Branch  string `json:"branch,omitempty"`
}

// GetFile reads a file and its blob SHA. Returns nil without error when
// the file does not exist.
func (c *Client) GetFile(ctx context.Context, path string) (*File, error) {
	resp, err := c.do(ctx, "GET", c.contentsURL(path), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, c.apiError("getting", path, resp)
	}

	var cr contentsResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return nil, fmt.Errorf("decoding contents response for %s: %w", path, err)
	}

	decoded, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(cr.Content, "\n", ""))
	if err != nil {
		return nil, fmt.Errorf("decoding content of %s: %w", path, err)
	}

	return &File{Path: cr.Path, SHA: cr.SHA, Content: decoded}, nil
}

// PutFile creates or updates a file. The existing blob SHA is looked up
// first so updates carry the required precondition.
func (c *Client) PutFile(ctx context.Context, path, message string, content []byte) error {
	existing, err := c.GetFile(ctx, path)
	if err != nil {
		return err
	}

	req := putRequest{
		Message: message,
		Content: base64.StdEncoding.EncodeToString(content),
		Branch:  c.branch,
	}
	if existing != nil {
		req.SHA = existing.SHA
	}

	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshaling put request: %w", err)
	}

	resp, err := c.do(ctx, "PUT", c.contentsURL(path), bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return c.apiError("writing", path, resp)
	}
	return nil
}

// DeleteFile removes a file. Deleting a missing file is a no-op.
func (c *Client) DeleteFile(ctx context.Context, path, message string) error {
	existing, err := c.GetFile(ctx, path)
	if err != nil {
		return err
	}
	if existing == nil {
		return nil
	}

	req := deleteRequest{
		Message: message,
		SHA:     existing.SHA,
		Branch:  c.branch,
	}
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshaling delete request: %w", err)
	}

	resp, err := c.do(ctx, "DELETE", c.contentsURL(path), bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.apiError("deleting", path, resp)
	}
	return nil
}

func (c *Client) contentsURL(path string) string {
	escaped := (&url.URL{Path: path}).EscapedPath()
	u := fmt.Sprintf("%s/repos/%s/%s/contents/%s", c.baseURL, c.owner, c.repo, escaped)
	if c.branch != "" {
		u += "?ref=" + url.QueryEscape(c.branch)
	}
	return u
}

func (c *Client) do(ctx context.Context, method, url string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/vnd.github+json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}
	return resp, nil
}

func (c *Client) apiError(verb, path string, resp *http.Response) error {
	payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
	return fmt.Errorf("%s %s: GitHub API returned status %d: %s", verb, path, resp.StatusCode, strings.TrimSpace(string(payload)))
}
