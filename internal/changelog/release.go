package changelog

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// Release is the subset of the GitHub release object the changelog needs.
// PublishedAt stays a string; rendering parses it best-effort.
type Release struct {
	TagName     string `json:"tag_name"`
	Name        string `json:"name"`
	PublishedAt string `json:"published_at"`
	Body        string `json:"body"`
}

const defaultBaseURL = "https://api.github.com"

// Client fetches releases from the GitHub API.
type Client struct {
	baseURL string
	token   string
	httpc   *http.Client
	log     *zap.SugaredLogger
}

func NewClient(token string, log *zap.SugaredLogger) *Client {
	return &Client{
		baseURL: defaultBaseURL,
		token:   token,
		httpc:   http.DefaultClient,
		log:     log,
	}
}

// FetchReleases returns the repo's releases in the API's order, newest
// first.
func (c *Client) FetchReleases(repo string) ([]Release, error) {
	url := fmt.Sprintf("%s/repos/%s/releases", c.baseURL, repo)
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building releases request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "token "+c.token)
	}

	c.log.Debugf("fetching releases from %s", url)
	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching releases: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("fetching releases: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var releases []Release
	if err := json.NewDecoder(resp.Body).Decode(&releases); err != nil {
		return nil, fmt.Errorf("decoding releases: %w", err)
	}
	return releases, nil
}

// FilterSince returns the releases newer than sinceVersion, stopping at the
// first release whose tag equals it. An empty sinceVersion keeps everything.
// Leading "v" prefixes are ignored on both sides.
func FilterSince(releases []Release, sinceVersion string) []Release {
	if sinceVersion == "" {
		return releases
	}
	since := strings.TrimPrefix(sinceVersion, "v")

	var filtered []Release
	for _, r := range releases {
		tag := strings.TrimPrefix(r.TagName, "v")
		if tag == "" || tag == since {
			break
		}
		filtered = append(filtered, r)
	}
	return filtered
}
