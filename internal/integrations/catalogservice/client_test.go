package catalogservice

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/pkg/logger"
)

const businessJSON = `{
	"id": 1,
	"name": "Salon Belle",
	"category": {"id": 2, "name": "Hair", "slug": "hair"},
	"address": "1 rue de Rivoli",
	"city": "Paris",
	"rating": 4.8,
	"totalReviews": 120,
	"services": [{"id": 10, "name": "Haircut", "duration": 30, "price": 25, "description": "Classic cut"}],
	"professionalIds": [7]
}`

func TestClient_GetBusiness(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/internal/businesses/1":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(businessJSON))
		case "/internal/businesses/2":
			w.WriteHeader(http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusBadGateway)
		}
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, logger.NewNop())
	ctx := context.Background()

	business, err := client.GetBusiness(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Salon Belle", business.Name)
	require.Len(t, business.Services, 1)
	assert.Equal(t, 30, business.Services[0].DurationMinutes)

	d := business.ToDomain()
	assert.Equal(t, "Hair", d.Category)
	service, ok := d.FindService(10)
	require.True(t, ok)
	assert.Equal(t, int64(1), service.BusinessID)

	_, err = client.GetBusiness(ctx, 2)
	assert.ErrorIs(t, err, ErrBusinessNotFound)

	_, err = client.GetBusiness(ctx, 3)
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestClient_CachesBusinesses(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if r.URL.Path != "/internal/businesses/1" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(businessJSON))
	}))
	defer srv.Close()

	now := time.Date(2030, time.January, 1, 10, 0, 0, 0, time.UTC)
	client := NewClient(srv.URL+"/", time.Second, logger.NewNop()).WithCacheTTL(time.Minute)
	client.now = func() time.Time { return now }
	ctx := context.Background()

	_, err := client.GetBusiness(ctx, 1)
	require.NoError(t, err)
	_, err = client.GetBusiness(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int32(1), calls.Load())

	now = now.Add(2 * time.Minute)
	_, err = client.GetBusiness(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())

	_, err = client.GetBusiness(ctx, 5)
	assert.ErrorIs(t, err, ErrBusinessNotFound)
	_, err = client.GetBusiness(ctx, 5)
	assert.ErrorIs(t, err, ErrBusinessNotFound)
	assert.Equal(t, int32(4), calls.Load())
}

func TestClient_ErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"code":503,"message":"catalog is warming up"}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, time.Second, logger.NewNop()).GetBusiness(context.Background(), 1)
	require.ErrorIs(t, err, ErrInvalidResponse)
	assert.Contains(t, err.Error(), "catalog is warming up")
}

func TestClient_MismatchedID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(businessJSON))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, time.Second, logger.NewNop()).GetBusiness(context.Background(), 2)
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestClient_Unreachable(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", 100*time.Millisecond, logger.NewNop())
	_, err := client.GetBusiness(context.Background(), 1)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestLoadStaticClient(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte("["+businessJSON+"]"), 0o600))

	client, err := LoadStaticClient(path)
	require.NoError(t, err)

	business, err := client.GetBusiness(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Paris", business.City)

	_, err = client.GetBusiness(context.Background(), 9)
	assert.ErrorIs(t, err, ErrBusinessNotFound)
}
