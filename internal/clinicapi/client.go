package clinicapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("github.com/ccsfp-clinic/clinic-gateway/clinicapi")

// BackendMetrics records backend call outcomes. May be nil.
type BackendMetrics interface {
	RecordBackendCall(ctx context.Context, method, path string, statusCode int, durationMs float64)
}

// Client talks to the clinic REST backend. It owns no state beyond the
// connection pool; every list it returns is the backend's full snapshot.
type Client struct {
	baseURL    string
	httpClient *http.Client
	metrics    BackendMetrics
}

// NewClient creates a backend client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// SetMetrics attaches a call recorder.
func (c *Client) SetMetrics(m BackendMetrics) {
	c.metrics = m
}

// do executes a request, tagging it with a correlation ID and a span, and
// decodes the response into out when out is non-nil. Any non-2xx status is
// returned as an *APIError.
func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	ctx, span := tracer.Start(ctx, "clinicapi."+method+" "+path,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", method),
			attribute.String("http.route", path),
		),
	)
	defer span.End()

	var body *bytes.Buffer
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewBuffer(payload)
	} else {
		body = &bytes.Buffer{}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-ID", uuid.New().String())

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		span.SetStatus(codes.Error, "transport failure")
		if c.metrics != nil {
			c.metrics.RecordBackendCall(ctx, method, path, 0, float64(time.Since(start).Milliseconds()))
		}
		return fmt.Errorf("%w: %v", ErrBackendRequest, err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	if c.metrics != nil {
		c.metrics.RecordBackendCall(ctx, method, path, resp.StatusCode, float64(time.Since(start).Milliseconds()))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := decodeAPIError(resp)
		log.Printf("Clinic backend %s %s failed: %d - %s", method, path, apiErr.Status, apiErr.Detail)
		span.SetStatus(codes.Error, apiErr.Detail)
		return apiErr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// ListConsultations fetches the full consultation snapshot.
func (c *Client) ListConsultations(ctx context.Context) ([]Consultation, error) {
	var list []Consultation
	if err := c.do(ctx, http.MethodGet, "/consultations", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// CreateConsultation saves a new consultation record.
func (c *Client) CreateConsultation(ctx context.Context, rec Consultation) error {
	return c.do(ctx, http.MethodPost, "/consultations", rec, nil)
}

// UpdateConsultation replaces the record with the given ID.
func (c *Client) UpdateConsultation(ctx context.Context, id string, rec Consultation) error {
	return c.do(ctx, http.MethodPut, "/consultations/"+url.PathEscape(id), rec, nil)
}

// DeleteConsultation removes the record with the given ID.
func (c *Client) DeleteConsultation(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/consultations/"+url.PathEscape(id), nil, nil)
}

// ListAppointments fetches the full appointment snapshot, accepted entries
// included; callers filter.
func (c *Client) ListAppointments(ctx context.Context) ([]Appointment, error) {
	var list []Appointment
	if err := c.do(ctx, http.MethodGet, "/appointments", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// CreateAppointment books a new appointment.
func (c *Client) CreateAppointment(ctx context.Context, apt Appointment) error {
	return c.do(ctx, http.MethodPost, "/appointments", apt, nil)
}

// AcceptAppointment marks the appointment accepted server-side.
func (c *Client) AcceptAppointment(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPatch, "/appointments/"+url.PathEscape(id)+"/accept", nil, nil)
}

// DeleteAppointment removes the appointment with the given ID.
func (c *Client) DeleteAppointment(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/appointments/"+url.PathEscape(id), nil, nil)
}

// ListRecords fetches the accepted-records snapshot.
func (c *Client) ListRecords(ctx context.Context) ([]AcceptedRecord, error) {
	var list []AcceptedRecord
	if err := c.do(ctx, http.MethodGet, "/records", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// CreateRecord stores an accepted appointment in the records collection.
func (c *Client) CreateRecord(ctx context.Context, rec AcceptedRecord) error {
	return c.do(ctx, http.MethodPost, "/records", rec, nil)
}

// ListAdminUsers fetches the staff directory.
func (c *Client) ListAdminUsers(ctx context.Context) ([]AdminUser, error) {
	var list []AdminUser
	if err := c.do(ctx, http.MethodGet, "/admin-users", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// Register creates a staff account pending approval.
func (c *Client) Register(ctx context.Context, req RegisterRequest) error {
	return c.do(ctx, http.MethodPost, "/register", req, nil)
}

// ApproveUser activates a pending staff account.
func (c *Client) ApproveUser(ctx context.Context, username string) error {
	payload := map[string]string{"username": username}
	return c.do(ctx, http.MethodPost, "/approve-user", payload, nil)
}

// DeleteUser removes a staff account by username.
func (c *Client) DeleteUser(ctx context.Context, username string) error {
	return c.do(ctx, http.MethodDelete, "/delete-user/"+url.PathEscape(username), nil, nil)
}

// Login authenticates and returns the account role.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	var result LoginResult
	if err := c.do(ctx, http.MethodPost, "/login", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
