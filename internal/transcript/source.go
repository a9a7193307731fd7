package transcript

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
)

const (
	sourceTimeout = 30 * time.Second

	// maxPages bounds pagination so a misbehaving service cannot keep
	// the client looping forever.
	maxPages = 50
)

// Source fetches transcript records from the remote transcript service.
// Fetching, paging, and auth live here; the analytics engine only ever
// sees the resulting []Record.
type Source struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewSource returns a Source for the given service base URL. The API key
// may be empty for unauthenticated deployments.
func NewSource(baseURL, apiKey string) *Source {
	return &Source{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: sourceTimeout},
	}
}

// listResponse is one page of the service's transcript listing.
type listResponse struct {
	Records  []Record `json:"records"`
	NextPage int      `json:"nextPage"`
}

// Fetch retrieves all transcript records, following pagination until the
// service reports no further pages. Records without an id are assigned a
// UUID so the engine's id-uniqueness invariant holds downstream.
func (s *Source) Fetch(ctx context.Context) ([]Record, error) {
	var all []Record

	page := 1
	for n := 0; n < maxPages; n++ {
		resp, err := s.fetchPage(ctx, page)
		if err != nil {
			return nil, err
		}
		all = append(all, resp.Records...)

		if resp.NextPage <= page {
			break
		}
		page = resp.NextPage
	}

	fillMissingIDs(all)
	return all, nil
}

func (s *Source) fetchPage(ctx context.Context, page int) (*listResponse, error) {
	u, err := url.Parse(s.baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing source URL: %w", err)
	}
	u = u.JoinPath("transcripts")
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching transcripts: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("transcript service returned status %d: %.200s", resp.StatusCode, string(body))
	}

	var list listResponse
	if err := json.Unmarshal(body, &list); err != nil {
		// Some deployments return a bare array instead of a page object.
		var records []Record
		if arrErr := json.Unmarshal(body, &records); arrErr == nil {
			return &listResponse{Records: records}, nil
		}
		return nil, fmt.Errorf("decoding transcript list: %w", err)
	}

	return &list, nil
}

// LoadFile reads transcript records from a local JSON export. The file may
// contain either a bare array of records or a {"records": [...]} object.
func LoadFile(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading export: %w", err)
	}

	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		var wrapped listResponse
		if objErr := json.Unmarshal(data, &wrapped); objErr != nil {
			return nil, fmt.Errorf("decoding export %s: %w", path, err)
		}
		records = wrapped.Records
	}

	fillMissingIDs(records)
	return records, nil
}

func fillMissingIDs(records []Record) {
	for i := range records {
		if records[i].ID == "" {
			records[i].ID = uuid.NewString()
		}
	}
}
