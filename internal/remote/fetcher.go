// Package remote retrieves the monthly report set from the reports endpoint.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/xolan/hours/internal/entry"
)

// Fetcher returns the full monthly report set from a remote source
type Fetcher interface {
	Fetch(ctx context.Context) (entry.MonthlyCollection, error)
}

// RetrievalError reports a failed fetch from URL
type RetrievalError struct {
	URL string
	Err error
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf("fetch reports from %s: %v", e.URL, e.Err)
}

func (e *RetrievalError) Unwrap() error {
	return e.Err
}

// ErrNoReports is returned when the endpoint answers with an empty list
var ErrNoReports = errors.New("response holds no report set")

// HTTPFetcher fetches reports with a GET request to URL.
//
// The endpoint answers with a list of employee records and the reports of the
// first record are used:
//
//	[{"monthlyReports": {"2024-01": [...], "2024-02": [...]}}]
//
// A bare report object ({"2024-01": [...]}) is accepted as well.
type HTTPFetcher struct {
	URL    string
	Client *http.Client
}

// NewHTTPFetcher creates an HTTPFetcher using http.DefaultClient
func NewHTTPFetcher(url string) *HTTPFetcher {
	return &HTTPFetcher{URL: url, Client: http.DefaultClient}
}

// Fetch implements Fetcher. Every failure is returned as a *RetrievalError.
func (f *HTTPFetcher) Fetch(ctx context.Context) (entry.MonthlyCollection, error) {
	c, err := f.fetch(ctx)
	if err != nil {
		return entry.NewMonthlyCollection(), &RetrievalError{URL: f.URL, Err: err}
	}
	return c, nil
}

func (f *HTTPFetcher) fetch(ctx context.Context) (entry.MonthlyCollection, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL, nil)
	if err != nil {
		return entry.MonthlyCollection{}, err
	}
	req.Header.Set("Accept", "application/json")

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return entry.MonthlyCollection{}, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return entry.MonthlyCollection{}, fmt.Errorf("unexpected status %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return entry.MonthlyCollection{}, fmt.Errorf("read body: %w", err)
	}

	return DecodeReports(body)
}

type employeeRecord struct {
	MonthlyReports entry.MonthlyCollection `json:"monthlyReports"`
}

// DecodeReports parses a reports payload, either a list of employee records
// or a bare month-keyed object.
func DecodeReports(body []byte) (entry.MonthlyCollection, error) {
	trimmed := bytes.TrimSpace(body)

	if len(trimmed) > 0 && trimmed[0] == '[' {
		var records []employeeRecord
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return entry.MonthlyCollection{}, fmt.Errorf("decode reports: %w", err)
		}
		if len(records) == 0 {
			return entry.MonthlyCollection{}, ErrNoReports
		}
		if records[0].MonthlyReports.IsEmpty() {
			return entry.NewMonthlyCollection(), nil
		}
		return records[0].MonthlyReports, nil
	}

	var c entry.MonthlyCollection
	if err := json.Unmarshal(trimmed, &c); err != nil {
		return entry.MonthlyCollection{}, fmt.Errorf("decode reports: %w", err)
	}
	return c, nil
}
