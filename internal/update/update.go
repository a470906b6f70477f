// Package update checks GitHub for newer releases of the CLI.
package update

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/mod/semver"
)

const (
	// DefaultReleasesURL is the latest-release endpoint for this project.
	DefaultReleasesURL = "https://api.github.com/repos/talentlms/talentlms-go/releases/latest"
	CheckTimeout       = 5 * time.Second
)

// Release is the subset of the GitHub release payload we read.
type Release struct {
	TagName string `json:"tag_name"`
	HTMLURL string `json:"html_url"`
}

// Result describes the outcome of a successful check.
type Result struct {
	CurrentVersion  string
	LatestVersion   string
	UpdateURL       string
	UpdateAvailable bool
}

// Checker queries a releases endpoint.
type Checker struct {
	URL    string
	Client *http.Client
}

// NewChecker returns a Checker for the project's GitHub releases.
func NewChecker() *Checker {
	return &Checker{URL: DefaultReleasesURL, Client: http.DefaultClient}
}

// Check compares current with the latest release. Development builds are
// never checked and return a nil Result.
func (c *Checker) Check(ctx context.Context, current string) (*Result, error) {
	if current == "" || current == "dev" {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, CheckTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	client := c.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("release check failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("release check failed: status %d", resp.StatusCode)
	}

	var release Release
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return nil, fmt.Errorf("invalid release payload: %w", err)
	}

	result := &Result{
		CurrentVersion: current,
		LatestVersion:  strings.TrimPrefix(release.TagName, "v"),
		UpdateURL:      release.HTMLURL,
	}
	cur, latest := canonical(current), canonical(release.TagName)
	if semver.IsValid(cur) && semver.IsValid(latest) {
		result.UpdateAvailable = semver.Compare(latest, cur) > 0
	}
	return result, nil
}

func canonical(v string) string {
	v = strings.TrimSpace(v)
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return v
}
