// Package portal reads a student's data from the MyCampus web portal: the
// completed-course enrollment feed and the study program shown on the portal
// page itself. Both rely on the student's existing portal session.
package portal

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultBaseURL is the MyCampus portal root.
const DefaultBaseURL = "https://mycampus.hslu.ch"

// enrollmentFeedPath is the fixed-shape JSON feed behind the portal's course
// list page.
const enrollmentFeedPath = "/de-ch/api/anlasslist/load/?page=1&per_page=69&total_entries=69&datasourceid=5158ceaf-061f-49aa-b270-fc309c1a5f69"

// Client handles HTTP requests to the MyCampus portal.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a portal client. An empty baseURL falls back to the
// public portal.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    strings.TrimSuffix(baseURL, "/"),
	}
}

func (c *Client) get(path string) (*http.Response, error) {
	req, err := http.NewRequest("GET", c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", path, err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status code %d when fetching %s", resp.StatusCode, path)
	}

	return resp, nil
}

// FetchEnrollments returns the raw completed-course feed for the logged-in
// student.
func (c *Client) FetchEnrollments() ([]RawEnrollment, error) {
	resp, err := c.get(enrollmentFeedPath)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read enrollment feed: %w", err)
	}

	var feed struct {
		Items []RawEnrollment `json:"items"`
	}
	if err := json.Unmarshal(body, &feed); err != nil {
		return nil, fmt.Errorf("failed to decode enrollment feed: %w", err)
	}

	return feed.Items, nil
}

// FetchStudyProgram loads the portal start page and extracts the student's
// study program code from it.
func (c *Client) FetchStudyProgram() (string, error) {
	resp, err := c.get("/de-ch/")
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	return ExtractStudyProgram(resp.Body)
}
