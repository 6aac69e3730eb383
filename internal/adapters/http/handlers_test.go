package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/orderdesk/orderdesk/internal/adapters/memory"
	"github.com/orderdesk/orderdesk/internal/adapters/security"
	"github.com/orderdesk/orderdesk/internal/application"
)

func newTestRouter(t *testing.T, cfg application.Config) http.Handler {
	t.Helper()
	store := memory.NewStore()
	service := application.NewService(application.Dependencies{
		Config:    cfg,
		Users:     store.Users,
		Clients:   store.Clients,
		Orders:    store.Orders,
		Tasks:     store.Tasks,
		Notes:     store.Notes,
		Templates: store.Templates,
		Reminders: store.Reminders,
		Dashboard: store.Dashboard,
		Verifier:  security.NewTelegramVerifier("123456:test-bot-token", time.Hour),
		Tokens:    security.NewTokenCodec("test-secret", time.Hour),
	})
	return NewRouter(service, nil)
}

func doJSON(t *testing.T, router http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func loginDev(t *testing.T, router http.Handler, telegramID int64, name string) (string, string) {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/auth/telegram", "", map[string]any{
		"devUser": map[string]any{"telegramId": telegramID, "name": name},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Mode  string `json:"mode"`
		Token string `json:"token"`
		User  struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "dev", resp.Mode)
	require.NotEmpty(t, resp.Token)
	return resp.Token, resp.User.ID
}

func TestLoginAndMe(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t, application.Config{BotTokenConfigured: true})

	token, userID := loginDev(t, router, 42, "Ada")

	rec := doJSON(t, router, http.MethodGet, "/auth/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		User struct {
			ID         string `json:"id"`
			TelegramID string `json:"telegramId"`
			Name       string `json:"name"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, userID, resp.User.ID)
	require.Equal(t, "42", resp.User.TelegramID)
	require.Equal(t, "Ada", resp.User.Name)
}

func TestUnauthorizedWithoutCredentials(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t, application.Config{Production: true, BotTokenConfigured: true})

	rec := doJSON(t, router, http.MethodGet, "/clients/", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var resp struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "unauthorized", resp.Error.Code)
	require.Equal(t, "unauthorized", resp.Error.Message)
}

func TestClientLifecycle(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t, application.Config{BotTokenConfigured: true})
	token, _ := loginDev(t, router, 42, "Ada")

	rec := doJSON(t, router, http.MethodPost, "/clients/", token, map[string]any{
		"name":    "Acme",
		"contact": "acme@example.com",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created struct {
		Item struct {
			ID      string  `json:"id"`
			Name    string  `json:"name"`
			Contact *string `json:"contact"`
		} `json:"item"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.Equal(t, "Acme", created.Item.Name)
	require.NotNil(t, created.Item.Contact)

	rec = doJSON(t, router, http.MethodPatch, "/clients/"+created.Item.ID, token, map[string]any{
		"contact": nil,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var patched struct {
		Item struct {
			Contact *string `json:"contact"`
		} `json:"item"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &patched))
	require.Nil(t, patched.Item.Contact)

	rec = doJSON(t, router, http.MethodDelete, "/clients/"+created.Item.ID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"success":true}`, rec.Body.String())
}

func TestCrossTenantClientPatchIs404(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t, application.Config{BotTokenConfigured: true})
	aliceToken, _ := loginDev(t, router, 1, "Alice")
	bobToken, _ := loginDev(t, router, 2, "Bob")

	rec := doJSON(t, router, http.MethodPost, "/clients/", aliceToken, map[string]any{"name": "Acme"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created struct {
		Item struct {
			ID string `json:"id"`
		} `json:"item"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = doJSON(t, router, http.MethodPatch, "/clients/"+created.Item.ID, bobToken, map[string]any{"name": "Hijacked"})
	require.Equal(t, http.StatusNotFound, rec.Code, rec.Body.String())
}

func TestOrderStatusEndpoint(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t, application.Config{BotTokenConfigured: true})
	token, _ := loginDev(t, router, 42, "Ada")

	rec := doJSON(t, router, http.MethodPost, "/clients/", token, map[string]any{"name": "Acme"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var client struct {
		Item struct {
			ID string `json:"id"`
		} `json:"item"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &client))

	rec = doJSON(t, router, http.MethodPost, "/orders/", token, map[string]any{
		"clientId": client.Item.ID,
		"title":    "Site build",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var order struct {
		Item struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		} `json:"item"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &order))
	require.Equal(t, "NEW", order.Item.Status)

	rec = doJSON(t, router, http.MethodPost, "/orders/"+order.Item.ID+"/status", token, map[string]any{"status": "IN_PROGRESS"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(t, router, http.MethodPost, "/orders/"+order.Item.ID+"/status", token, map[string]any{"status": "BOGUS"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUnknownBodyFieldRejected(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t, application.Config{BotTokenConfigured: true})
	token, _ := loginDev(t, router, 42, "Ada")

	rec := doJSON(t, router, http.MethodPost, "/clients/", token, map[string]any{
		"name":       "Acme",
		"unexpected": true,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthz(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t, application.Config{BotTokenConfigured: true})

	rec := doJSON(t, router, http.MethodGet, "/healthz", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}
