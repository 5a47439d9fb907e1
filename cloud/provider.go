package cloud

import (
	"context"
	"errors"
	"net/url"
)

// ListLimit caps the number of projects returned by a listing.
const ListLimit = 20

// ShareParam is the query parameter carrying the project id in share links.
const ShareParam = "project"

// ErrInvalidShareURL is returned when a share link cannot be parsed.
var ErrInvalidShareURL = errors.New("cloud: invalid share url")

// Provider saves and loads project documents.
type Provider interface {
	// SaveProject overwrites the document with the given id, or creates a new
	// one when id is empty. It returns the document id.
	SaveProject(ctx context.Context, id string, doc *Project) (string, error)
	// LoadProject returns the document, or nil with no error when it does not exist.
	LoadProject(ctx context.Context, id string) (*Project, error)
	// ListProjects returns the most recently updated projects, newest first.
	ListProjects(ctx context.Context) ([]ProjectSummary, error)
}

// ShareURL returns base with only the project parameter set.
func ShareURL(base, projectID string) string {
	u, err := url.Parse(base)
	if err != nil || base == "" {
		return "?" + ShareParam + "=" + url.QueryEscape(projectID)
	}
	u.RawQuery = url.Values{ShareParam: []string{projectID}}.Encode()
	u.Fragment = ""
	return u.String()
}

// ProjectIDFromURL extracts the project id from a share link. It returns an
// empty string when the link carries no project parameter.
func ProjectIDFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", errors.Join(ErrInvalidShareURL, err)
	}
	return u.Query().Get(ShareParam), nil
}
