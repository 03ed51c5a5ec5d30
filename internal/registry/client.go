package registry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/pagemill/pagemill/pkg/logger"
)

const (
	DefaultTimeout = 30 * time.Second
)

var (
	ErrMissingToken  = errors.New("registry token is missing")
	ErrUnauthorized  = errors.New("registry rejected the token")
	ErrVersionExists = errors.New("version already published")
)

// Artifact is a packaged build output to publish.
type Artifact struct {
	Name    string
	Version string
	Path    string
}

// Client talks to the artifact registry's HTTP API. Calls make a
// single attempt; the pipeline treats any failure as final.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *logger.Logger
}

func NewClient(baseURL string, log *logger.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		logger: log,
	}
}

func (c *Client) artifactURL(name, version string) string {
	return fmt.Sprintf("%s/api/v1/artifacts/%s/%s",
		c.baseURL, url.PathEscape(name), url.PathEscape(version))
}

// Exists reports whether the registry already holds the given version.
func (c *Client) Exists(ctx context.Context, name, version string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.artifactURL(name, version), nil)
	if err != nil {
		return false, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("failed to query registry: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	default:
		return false, fmt.Errorf("unexpected registry response: %s", resp.Status)
	}
}

// Publish uploads the artifact under bearer-token auth. An already
// published version and a bad token are distinct, terminal failures.
func (c *Client) Publish(ctx context.Context, artifact Artifact, token string) error {
	if token == "" {
		return ErrMissingToken
	}

	f, err := os.Open(artifact.Path)
	if err != nil {
		return fmt.Errorf("failed to open artifact %s: %w", artifact.Path, err)
	}
	defer f.Close()

	req, err := http.NewRequestWithContext(ctx, http.MethodPut,
		c.artifactURL(artifact.Name, artifact.Version)+"/upload", f)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/octet-stream")

	c.logger.Debug("Publishing %s %s to %s", artifact.Name, artifact.Version, c.baseURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to publish: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		c.logger.Info("Published %s %s", artifact.Name, artifact.Version)
		return nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrUnauthorized, resp.Status)
	case resp.StatusCode == http.StatusConflict:
		return fmt.Errorf("%w: %s %s", ErrVersionExists, artifact.Name, artifact.Version)
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("registry returned %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}
}
