package adapter

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-health-keeper/internal/config"
	"github.com/MKhiriev/go-health-keeper/internal/logger"
	"github.com/MKhiriev/go-health-keeper/internal/utils"
	"github.com/MKhiriev/go-health-keeper/models"
)

type httpServerAdapter struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of [ServerAdapter].
// It normalises and validates the base URL from adapterCfg.HTTPAddress and
// configures the underlying HTTP client with the resolved base URL and request
// timeout.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed as a
// valid URL.
func NewHTTPServerAdapter(adapterCfg config.ClientAdapter, logger *logger.Logger) (ServerAdapter, error) {
	baseURL := utils.NormalizeBaseURL(adapterCfg.HTTPAddress)
	if baseURL == "" {
		return nil, errors.New("invalid adapter http address: empty address")
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}
	if u.Host == "" {
		return nil, errors.New("invalid adapter http address: address must include host")
	}

	return &httpServerAdapter{
		client: utils.NewHTTPClient(baseURL, adapterCfg.RequestTimeout),
		logger: logger,
	}, nil
}

// SetToken implements [ServerAdapter]. It stores token (whitespace-trimmed) for
// use in the Authorization header of all subsequent authenticated requests.
func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	h.token = strings.TrimSpace(token)
	h.mu.Unlock()
}

// Token implements [ServerAdapter].
func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// Register implements [ServerAdapter]. It POSTs the credentials to
// POST /api/user/register.
func (h *httpServerAdapter) Register(ctx context.Context, user models.User) (models.Session, error) {
	return h.authenticate(ctx, "/api/user/register", user)
}

// Login implements [ServerAdapter]. It POSTs the credentials to
// POST /api/user/login.
func (h *httpServerAdapter) Login(ctx context.Context, user models.User) (models.Session, error) {
	return h.authenticate(ctx, "/api/user/login", user)
}

func (h *httpServerAdapter) authenticate(ctx context.Context, path string, user models.User) (models.Session, error) {
	var body models.LoginResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.User{Login: user.Login, Password: user.Password}).
		SetResult(&body).
		Post(path)
	if err != nil {
		return models.Session{}, fmt.Errorf("%s request: %w", path, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Session{}, err
	}

	token, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return models.Session{}, fmt.Errorf("%s parse bearer token: %w", path, err)
	}
	if body.SubjectID == "" {
		return models.Session{}, fmt.Errorf("%s: response has no subject id", path)
	}

	expiresAt, err := utils.PeekJWTExpiry(token)
	if err != nil {
		return models.Session{}, fmt.Errorf("%s: %w", path, err)
	}

	h.SetToken(token)
	return models.Session{
		SubjectID: body.SubjectID,
		Token:     token,
		KeySalt:   body.KeySalt,
		ExpiresAt: expiresAt,
	}, nil
}

// CheckSession implements [ServerAdapter] via GET /api/session. A 401 is
// reported as an invalid session rather than an error.
func (h *httpServerAdapter) CheckSession(ctx context.Context) (models.SessionState, error) {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return models.SessionState{}, nil
	}

	var state models.SessionState
	resp, err := req.SetResult(&state).Get("/api/session")
	if err != nil {
		return models.SessionState{}, fmt.Errorf("check session request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		if errors.Is(err, ErrUnauthorized) {
			return models.SessionState{}, nil
		}
		return models.SessionState{}, err
	}

	return state, nil
}

// SignOut implements [ServerAdapter] via DELETE /api/session.
func (h *httpServerAdapter) SignOut(ctx context.Context) error {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return nil
	}
	defer h.SetToken("")

	resp, err := req.Delete("/api/session")
	if err != nil {
		return fmt.Errorf("sign out request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil && !errors.Is(err, ErrUnauthorized) {
		return err
	}
	return nil
}

// CreateRecord implements [ServerAdapter] via POST /api/records/.
func (h *httpServerAdapter) CreateRecord(ctx context.Context, record models.StoredRecord) (models.StoredRecord, error) {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return models.StoredRecord{}, err
	}

	var created models.StoredRecord
	resp, err := req.
		SetHeader("Content-Type", "application/json").
		SetBody(record).
		SetResult(&created).
		Post("/api/records/")
	if err != nil {
		return models.StoredRecord{}, fmt.Errorf("create record request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.StoredRecord{}, err
	}

	return created, nil
}

// GetRecord implements [ServerAdapter] via GET /api/records/{id}.
func (h *httpServerAdapter) GetRecord(ctx context.Context, id string) (models.StoredRecord, error) {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return models.StoredRecord{}, err
	}

	var record models.StoredRecord
	resp, err := req.
		SetPathParam("id", id).
		SetResult(&record).
		Get("/api/records/{id}")
	if err != nil {
		return models.StoredRecord{}, fmt.Errorf("get record request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.StoredRecord{}, err
	}

	return record, nil
}

// ListRecords implements [ServerAdapter] via GET /api/records/?kind=.
func (h *httpServerAdapter) ListRecords(ctx context.Context, kind models.EntityKind) ([]models.StoredRecord, error) {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return nil, err
	}
	if kind != "" {
		req.SetQueryParam("kind", string(kind))
	}

	var list models.RecordListResponse
	resp, err := req.SetResult(&list).Get("/api/records/")
	if err != nil {
		return nil, fmt.Errorf("list records request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return list.Records, nil
}

// UpdateRecord implements [ServerAdapter] via PUT /api/records/{id}.
func (h *httpServerAdapter) UpdateRecord(ctx context.Context, record models.StoredRecord) (models.StoredRecord, error) {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return models.StoredRecord{}, err
	}

	var updated models.StoredRecord
	resp, err := req.
		SetHeader("Content-Type", "application/json").
		SetPathParam("id", record.ID).
		SetBody(record).
		SetResult(&updated).
		Put("/api/records/{id}")
	if err != nil {
		return models.StoredRecord{}, fmt.Errorf("update record request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.StoredRecord{}, err
	}

	return updated, nil
}

// DeleteRecord implements [ServerAdapter] via DELETE /api/records/{id}.
func (h *httpServerAdapter) DeleteRecord(ctx context.Context, id string) error {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return err
	}

	resp, err := req.SetPathParam("id", id).Delete("/api/records/{id}")
	if err != nil {
		return fmt.Errorf("delete record request: %w", err)
	}

	return mapHTTPError(resp)
}

// Append implements [ServerAdapter] via POST /api/audit/.
func (h *httpServerAdapter) Append(ctx context.Context, entry models.AuditEntry) error {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return err
	}

	resp, err := req.
		SetHeader("Content-Type", "application/json").
		SetBody(entry).
		Post("/api/audit/")
	if err != nil {
		return fmt.Errorf("append audit request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) (*resty.Request, error) {
	token := h.Token()
	if token == "" {
		return nil, ErrNoToken
	}
	return h.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+token), nil
}
