package catalogservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
)

// maxErrorBody сколько байт тела ошибки попадает в текст ошибки
const maxErrorBody = 512

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type cachedBusiness struct {
	business  Business
	expiresAt time.Time
}

// Client HTTP клиент каталога бизнесов и услуг.
// Успешные ответы кэшируются на cacheTTL; 404 не кэшируется.
type Client struct {
	baseURL    string
	httpClient *http.Client
	cacheTTL   time.Duration

	mu    sync.RWMutex
	cache map[int64]cachedBusiness
	now   func() time.Time

	log Logger
}

// NewClient создает клиента без кэша
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		cache: make(map[int64]cachedBusiness),
		now:   time.Now,
		log:   log,
	}
}

// WithCacheTTL включает кэш ответов каталога
func (c *Client) WithCacheTTL(ttl time.Duration) *Client {
	c.cacheTTL = ttl
	return c
}

// GetBusiness получает бизнес вместе со списком услуг
func (c *Client) GetBusiness(ctx context.Context, businessID int64) (*Business, error) {
	if b, ok := c.cached(businessID); ok {
		return b, nil
	}

	business, err := c.fetchBusiness(ctx, businessID)
	if err != nil {
		return nil, err
	}

	if c.cacheTTL > 0 {
		c.mu.Lock()
		c.cache[businessID] = cachedBusiness{business: *business, expiresAt: c.now().Add(c.cacheTTL)}
		c.mu.Unlock()
	}
	return business, nil
}

func (c *Client) cached(businessID int64) (*Business, bool) {
	if c.cacheTTL <= 0 {
		return nil, false
	}

	c.mu.RLock()
	entry, ok := c.cache[businessID]
	c.mu.RUnlock()

	if !ok || c.now().After(entry.expiresAt) {
		return nil, false
	}
	b := entry.business
	return &b, true
}

func (c *Client) fetchBusiness(ctx context.Context, businessID int64) (*Business, error) {
	url := fmt.Sprintf("%s/internal/businesses/%d", c.baseURL, businessID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("CatalogService request failed for business_id=%d: %v", businessID, err)
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, ErrBusinessNotFound
	default:
		c.log.Warn("CatalogService returned status=%d for business_id=%d", resp.StatusCode, businessID)
		return nil, fmt.Errorf("%w: status %d: %s", ErrInvalidResponse, resp.StatusCode, errorMessage(resp.Body))
	}

	var business Business
	if err := json.NewDecoder(resp.Body).Decode(&business); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}
	if business.ID != businessID {
		return nil, fmt.Errorf("%w: asked for business %d, got %d", ErrInvalidResponse, businessID, business.ID)
	}

	return &business, nil
}

// errorMessage достаёт message из ErrorResponse, иначе возвращает начало тела
func errorMessage(body io.Reader) string {
	raw, _ := io.ReadAll(io.LimitReader(body, maxErrorBody))

	var errResp ErrorResponse
	if err := json.Unmarshal(raw, &errResp); err == nil && errResp.Message != "" {
		return errResp.Message
	}
	return strings.TrimSpace(string(raw))
}
