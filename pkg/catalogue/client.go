// Package catalogue is a read-only client for the hslu-study-data module
// catalogue API.
package catalogue

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL is the public catalogue endpoint.
const DefaultBaseURL = "https://hslu-study-data.ch"

// accessKeyHeader carries the static catalogue access key.
const accessKeyHeader = "X-Access-Key"

// Client handles HTTP requests to the catalogue API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	accessKey  string
}

// NewClient creates a catalogue client. An empty baseURL falls back to the
// public endpoint.
func NewClient(baseURL, accessKey string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		accessKey:  accessKey,
	}
}

// get fetches a catalogue path and decodes the "result" envelope into out.
func (c *Client) get(path string, out any) error {
	req, err := http.NewRequest("GET", c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set(accessKeyHeader, c.accessKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code %d when fetching %s", resp.StatusCode, path)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response for %s: %w", path, err)
	}

	var envelope struct {
		Result json.RawMessage `json:"result"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return fmt.Errorf("failed to decode response for %s: %w", path, err)
	}
	if err := json.Unmarshal(envelope.Result, out); err != nil {
		return fmt.Errorf("failed to decode result for %s: %w", path, err)
	}

	return nil
}

// semesterData fetches the shared per-semester document holding both the
// module list and the module-event list.
func (c *Client) semesterData(semester string) (*semesterDocument, error) {
	var doc semesterDocument
	if err := c.get("/modules/"+url.PathEscape(semester), &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// ModulesForSemester returns the catalogue module list for a semester code.
func (c *Client) ModulesForSemester(semester string) ([]Module, error) {
	doc, err := c.semesterData(semester)
	if err != nil {
		return nil, err
	}
	return doc.Modules, nil
}

// ModuleEventsForSemester returns the module-event list for a semester code.
func (c *Client) ModuleEventsForSemester(semester string) ([]ModuleEvent, error) {
	doc, err := c.semesterData(semester)
	if err != nil {
		return nil, err
	}
	return doc.ModuleEvents, nil
}

// CombinedModuleData outer-joins the module list with the module-event list
// on module short name. Every module appears in the result; modules without
// an event carry empty event fields.
func (c *Client) CombinedModuleData(semester string) ([]CombinedModule, error) {
	doc, err := c.semesterData(semester)
	if err != nil {
		return nil, err
	}

	eventsByName := make(map[string]ModuleEvent, len(doc.ModuleEvents))
	for _, event := range doc.ModuleEvents {
		if _, ok := eventsByName[event.ModuleShortName]; !ok {
			eventsByName[event.ModuleShortName] = event
		}
	}

	combined := make([]CombinedModule, 0, len(doc.Modules))
	for _, module := range doc.Modules {
		cm := CombinedModule{Module: module}
		if event, ok := eventsByName[module.ShortName]; ok {
			cm.LessonFormats = event.LessonFormats
			cm.Dates = event.Dates
		}
		combined = append(combined, cm)
	}

	return combined, nil
}

// ECTSRequirements returns the required credits per module type for a degree
// program code such as "i" or "aiml".
func (c *Client) ECTSRequirements(program string) (*ECTSRequirements, error) {
	var reqs ECTSRequirements
	if err := c.get("/ects/"+url.PathEscape(strings.ToLower(program)), &reqs); err != nil {
		return nil, err
	}
	return &reqs, nil
}

// AvailableSemesters returns the semester codes the catalogue has data for.
func (c *Client) AvailableSemesters() ([]string, error) {
	var result struct {
		Semesters []string `json:"semesters"`
	}
	if err := c.get("/semesters/available", &result); err != nil {
		return nil, err
	}
	return result.Semesters, nil
}
