package cloud

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
)

const (
	listCacheKey        = "projects"
	listCacheTTL        = 30 * time.Second
	listCacheCleanup    = time.Minute
	defaultHTTPTimeout  = 30 * time.Second
	maxErrorBodyPreview = 4096
)

// StatusError is returned when the document store answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("document store: HTTP %d: %s", e.StatusCode, e.Body)
}

// saveResponse is the body returned by POST and PUT.
type saveResponse struct {
	ID string `json:"id"`
}

// listResponse is the body returned by GET /projects.
type listResponse struct {
	Projects []ProjectSummary `json:"projects"`
}

// HTTPProvider talks to the document store over its JSON API.
type HTTPProvider struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	listCache  *cache.Cache
}

// NewHTTPProvider creates a provider for the document store at baseURL.
// A nil client uses a client with a 30 second timeout.
func NewHTTPProvider(baseURL string, client *http.Client, logger *slog.Logger) *HTTPProvider {
	if client == nil {
		client = &http.Client{Timeout: defaultHTTPTimeout}
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &HTTPProvider{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: client,
		logger:     logger,
		listCache:  cache.New(listCacheTTL, listCacheCleanup),
	}
}

// SaveProject creates or overwrites a project document.
func (p *HTTPProvider) SaveProject(ctx context.Context, id string, doc *Project) (string, error) {
	method := http.MethodPost
	endpoint := p.baseURL + "/projects"
	if id != "" {
		method = http.MethodPut
		endpoint += "/" + url.PathEscape(id)
	}

	var resp saveResponse
	if err := p.do(ctx, method, endpoint, doc, &resp); err != nil {
		return "", fmt.Errorf("save project: %w", err)
	}
	if resp.ID == "" {
		resp.ID = id
	}
	p.listCache.Delete(listCacheKey)

	p.logger.Info("project saved", "project_id", resp.ID, "clips", len(doc.Clips))
	return resp.ID, nil
}

// LoadProject fetches a project document. A missing document yields (nil, nil).
func (p *HTTPProvider) LoadProject(ctx context.Context, id string) (*Project, error) {
	var doc Project
	err := p.do(ctx, http.MethodGet, p.baseURL+"/projects/"+url.PathEscape(id), nil, &doc)
	if err != nil {
		var se *StatusError
		if errors.As(err, &se) && se.StatusCode == http.StatusNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("load project %s: %w", id, err)
	}
	doc.ID = id
	doc.Normalize()
	return &doc, nil
}

// ListProjects returns up to ListLimit project summaries, newest first.
// Results are cached briefly and dropped whenever a project is saved.
func (p *HTTPProvider) ListProjects(ctx context.Context) ([]ProjectSummary, error) {
	if cached, ok := p.listCache.Get(listCacheKey); ok {
		return slices.Clone(cached.([]ProjectSummary)), nil
	}

	var resp listResponse
	endpoint := fmt.Sprintf("%s/projects?limit=%d", p.baseURL, ListLimit)
	if err := p.do(ctx, http.MethodGet, endpoint, nil, &resp); err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	projects := resp.Projects
	if len(projects) > ListLimit {
		projects = projects[:ListLimit]
	}
	for i := range projects {
		if projects[i].Title == "" {
			projects[i].Title = DefaultTitle
		}
	}
	p.listCache.SetDefault(listCacheKey, slices.Clone(projects))
	return projects, nil
}

// do sends a JSON request and decodes a JSON response into out.
func (p *HTTPProvider) do(ctx context.Context, method, endpoint string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		preview, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyPreview))
		return &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(preview))}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
