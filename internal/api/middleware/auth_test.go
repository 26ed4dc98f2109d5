package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gduffy1993-png/casebrain-hub-sub007/internal/domain"
	"github.com/gduffy1993-png/casebrain-hub-sub007/internal/store"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockTenantStore struct {
	tenants map[string]*domain.Tenant
}

func (m *mockTenantStore) Create(ctx context.Context, t *domain.Tenant) error {
	m.tenants[t.APIKeyHash] = t
	return nil
}

func (m *mockTenantStore) GetByAPIKeyHash(ctx context.Context, hash string) (*domain.Tenant, error) {
	t, ok := m.tenants[hash]
	if !ok {
		return nil, store.ErrNotFound
	}
	return t, nil
}

func TestAPIKeyAuth(t *testing.T) {
	apiKey := "cbk_test_key"
	tenant := &domain.Tenant{ID: uuid.New(), Name: "Test Chambers", APIKeyHash: HashAPIKey(apiKey)}
	ts := &mockTenantStore{tenants: map[string]*domain.Tenant{tenant.APIKeyHash: tenant}}

	var seen *domain.Tenant
	handler := APIKeyAuth(ts)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = TenantFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{"valid key", "Bearer " + apiKey, http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + apiKey, http.StatusUnauthorized},
		{"unknown key", "Bearer cbk_wrong", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = nil
			req := httptest.NewRequest(http.MethodGet, "/v1/cases", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				require.NotNil(t, seen)
				assert.Equal(t, tenant.ID, seen.ID)
			} else {
				assert.Nil(t, seen)
				assert.Contains(t, rec.Body.String(), `"ok":false`)
			}
		})
	}
}

func TestHashAPIKey_Deterministic(t *testing.T) {
	a := HashAPIKey("cbk_same")
	b := HashAPIKey("cbk_same")
	assert.Equal(t, a, b)
	assert.Len(t, a, 64)
	assert.NotEqual(t, a, HashAPIKey("cbk_other"))
}
