package medqueue

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/medqueue/medqueue-go/internal/domain/entities"
	"github.com/medqueue/medqueue-go/internal/domain/providers"
	apperrors "github.com/medqueue/medqueue-go/pkg/errors"
)

// Client is the remote directory client for the MedQueue backend. Every call
// is a single network round trip against one configured origin; no retries
// are performed here.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

var _ providers.DirectoryClient = (*Client)(nil)

// NewClient creates a directory client for the given origin, e.g.
// "http://127.0.0.1:8001".
func NewClient(origin string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(origin, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// ListHospitals returns the hospital directory.
func (c *Client) ListHospitals(ctx context.Context) ([]entities.Hospital, error) {
	endpoint := fmt.Sprintf("%s/api/hospitals/", c.baseURL)

	resp, err := c.do(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, apperrors.NewTransportError("directory is unreachable", err)
	}
	defer resp.Body.Close()

	if !success(resp.StatusCode) {
		return nil, apperrors.NewTransportError(
			fmt.Sprintf("directory returned status %d", resp.StatusCode), nil)
	}

	var hospitals []entities.Hospital
	if err := json.NewDecoder(resp.Body).Decode(&hospitals); err != nil {
		return nil, apperrors.NewTransportError("failed to decode hospital listing", err)
	}
	return hospitals, nil
}

// CreateAppointment books a queue slot. A non-success response with a
// parseable field-keyed JSON body becomes a validation error carrying the
// backend's message verbatim; anything else is a transport error.
func (c *Client) CreateAppointment(ctx context.Context, req *entities.AppointmentRequest) (*entities.Appointment, error) {
	endpoint := fmt.Sprintf("%s/api/appointments/", c.baseURL)

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, apperrors.NewTransportError("failed to encode appointment request", err)
	}

	resp, err := c.do(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, apperrors.NewTransportError("directory is unreachable", err)
	}
	defer resp.Body.Close()

	if !success(resp.StatusCode) {
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			if msg := fieldErrorMessage(resp.Body); msg != "" {
				return nil, apperrors.NewValidationError(msg)
			}
		}
		return nil, apperrors.NewTransportError(
			fmt.Sprintf("directory returned status %d", resp.StatusCode), nil)
	}

	appointment := &entities.Appointment{}
	if err := json.NewDecoder(resp.Body).Decode(appointment); err != nil {
		return nil, apperrors.NewTransportError("failed to decode appointment", err)
	}
	return appointment, nil
}

// LookupAppointment resolves a reservation code. The code is normalized to
// uppercase before the request; any non-success response means no active
// reservation matches.
func (c *Client) LookupAppointment(ctx context.Context, code string) (*entities.Appointment, error) {
	normalized := NormalizeCode(code)
	endpoint := fmt.Sprintf("%s/api/appointments/check/%s/", c.baseURL, url.PathEscape(normalized))

	resp, err := c.do(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, apperrors.NewTransportError("directory is unreachable", err)
	}
	defer resp.Body.Close()

	if !success(resp.StatusCode) {
		return nil, apperrors.NewNotFoundError(
			fmt.Sprintf("no active reservation for code %s", normalized))
	}

	appointment := &entities.Appointment{}
	if err := json.NewDecoder(resp.Body).Decode(appointment); err != nil {
		return nil, apperrors.NewTransportError("failed to decode appointment", err)
	}
	return appointment, nil
}

// CancelAppointment cancels the reservation identified by code. Cancelling an
// unknown or already-cancelled code fails with a not found error.
func (c *Client) CancelAppointment(ctx context.Context, code string) error {
	normalized := NormalizeCode(code)
	endpoint := fmt.Sprintf("%s/api/appointments/cancel/", c.baseURL)

	payload, err := json.Marshal(map[string]string{"code": normalized})
	if err != nil {
		return apperrors.NewTransportError("failed to encode cancel request", err)
	}

	resp, err := c.do(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return apperrors.NewTransportError("directory is unreachable", err)
	}
	defer resp.Body.Close()

	if !success(resp.StatusCode) {
		return apperrors.NewNotFoundError(
			fmt.Sprintf("no active reservation for code %s", normalized))
	}

	io.Copy(io.Discard, resp.Body)
	return nil
}

// NormalizeCode trims and uppercases a reservation code so lookups are
// case-insensitive.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func (c *Client) do(ctx context.Context, method, endpoint string, body io.Reader) (*http.Response, error) {
	httpReq, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, err
	}
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	return c.httpClient.Do(httpReq)
}

func success(status int) bool {
	return status >= 200 && status < 300
}

// fieldErrorMessage extracts the first human-readable message from a
// field-keyed error body such as {"datetime": ["..."]} or {"error": "..."}.
// Known fields are checked in a fixed order so the surfaced message is
// deterministic.
func fieldErrorMessage(body io.Reader) string {
	var fields map[string]json.RawMessage
	if err := json.NewDecoder(body).Decode(&fields); err != nil {
		return ""
	}

	known := []string{"datetime", "hospital", "patient_name", "specialty", "phone", "non_field_errors", "error", "detail"}
	for _, field := range known {
		if raw, ok := fields[field]; ok {
			if msg := firstMessage(raw); msg != "" {
				return msg
			}
		}
	}
	for _, raw := range fields {
		if msg := firstMessage(raw); msg != "" {
			return msg
		}
	}
	return ""
}

func firstMessage(raw json.RawMessage) string {
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil && len(list) > 0 {
		return list[0]
	}
	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		return single
	}
	return ""
}
