// Package reputation queries the AbuseIPDB check endpoint.
package reputation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/ppiankov/ipspectre/internal/models"
)

// DefaultBaseURL is the AbuseIPDB v2 check endpoint
const DefaultBaseURL = "https://api.abuseipdb.com/api/v2/check"

// maxErrorBody caps how much of a failed response is read for diagnostics
const maxErrorBody = 4096

// Checker looks up one IP address
type Checker interface {
	Check(ctx context.Context, ip string) Result
}

// Result is either a record or the reason there is none
type Result struct {
	Record *models.AbuseRecord
	Err    error
}

// OK reports whether the lookup produced a record
func (r Result) OK() bool {
	return r.Err == nil && r.Record != nil
}

// Success wraps a record
func Success(record *models.AbuseRecord) Result {
	return Result{Record: record}
}

// Failure wraps a lookup error
func Failure(err error) Result {
	if err == nil {
		err = errors.New("lookup failed")
	}
	return Result{Err: err}
}

// StatusError is returned for non-2xx responses
type StatusError struct {
	Code   int
	Status string
	Detail string
}

func (e *StatusError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("HTTP error %s: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("HTTP error %s", e.Status)
}

// ResponseError is returned when a 2xx body does not have the expected shape
type ResponseError struct {
	Reason string
	Err    error
}

func (e *ResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("unexpected response: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("unexpected response: %s", e.Reason)
}

func (e *ResponseError) Unwrap() error {
	return e.Err
}

// Options configures a Client
type Options struct {
	BaseURL        string
	APIKey         string
	MaxAgeDays     int  // 0 leaves the service default
	IncludeReports bool // request the reports array (verbose mode)
	HTTPClient     *http.Client
}

// Client issues one GET per Check call. It never retries.
type Client struct {
	baseURL        string
	apiKey         string
	maxAgeDays     int
	includeReports bool
	http           *http.Client
}

// NewClient creates a new reputation client
func NewClient(opts Options) *Client {
	baseURL := strings.TrimSpace(opts.BaseURL)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		baseURL:        baseURL,
		apiKey:         opts.APIKey,
		maxAgeDays:     opts.MaxAgeDays,
		includeReports: opts.IncludeReports,
		http:           httpClient,
	}
}

type checkResponse struct {
	Data *checkData `json:"data"`
}

type checkData struct {
	AbuseConfidenceScore *int              `json:"abuseConfidenceScore"`
	Reports              []json.RawMessage `json:"reports"`
	LastReportedAt       *string           `json:"lastReportedAt"`
}

type errorResponse struct {
	Errors []struct {
		Detail string `json:"detail"`
	} `json:"errors"`
}

// Check looks up ip. Every failure is returned in the Result.
func (c *Client) Check(ctx context.Context, ip string) Result {
	record, err := c.check(ctx, ip)
	if err != nil {
		slog.Debug("reputation lookup failed",
			slog.String("ip", ip),
			slog.String("error", err.Error()),
		)
		return Failure(err)
	}

	slog.Debug("reputation lookup succeeded",
		slog.String("ip", ip),
		slog.Int("score", record.Score),
		slog.Int("reports", record.Reports),
	)
	return Success(record)
}

func (c *Client) check(ctx context.Context, ip string) (*models.AbuseRecord, error) {
	endpoint, err := c.requestURL(ip)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Key", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, statusError(resp)
	}

	var payload checkResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, &ResponseError{Reason: "invalid JSON body", Err: err}
	}
	if payload.Data == nil {
		return nil, &ResponseError{Reason: "missing data object"}
	}
	if payload.Data.AbuseConfidenceScore == nil {
		return nil, &ResponseError{Reason: "missing abuseConfidenceScore"}
	}

	return &models.AbuseRecord{
		Score:          *payload.Data.AbuseConfidenceScore,
		Reports:        len(payload.Data.Reports),
		LastReportedAt: payload.Data.LastReportedAt,
	}, nil
}

func (c *Client) requestURL(ip string) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base URL %q: %w", c.baseURL, err)
	}

	q := u.Query()
	q.Set("ipAddress", ip)
	if c.maxAgeDays > 0 {
		q.Set("maxAgeInDays", strconv.Itoa(c.maxAgeDays))
	}
	if c.includeReports {
		q.Set("verbose", "true")
	}
	u.RawQuery = q.Encode()

	return u.String(), nil
}

func statusError(resp *http.Response) error {
	statusErr := &StatusError{Code: resp.StatusCode, Status: resp.Status}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(body) == 0 {
		return statusErr
	}

	var payload errorResponse
	if err := json.Unmarshal(body, &payload); err == nil && len(payload.Errors) > 0 {
		details := make([]string, 0, len(payload.Errors))
		for _, e := range payload.Errors {
			if detail := strings.TrimSpace(e.Detail); detail != "" {
				details = append(details, detail)
			}
		}
		statusErr.Detail = strings.Join(details, "; ")
	}

	return statusErr
}
