package wallet_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/spendio/spendio-api/internal/domain/wallet"
	"github.com/spendio/spendio-api/internal/middleware"
	"github.com/spendio/spendio-api/internal/pkg/jwt"
)

type walletAPIResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func TestWalletEndpointsIntegration(t *testing.T) {
	db := setupTestDB(t)
	defer cleanupTestDB(db)

	userID := createTestUser(t, db)

	repo := wallet.NewRepository(db)
	svc := wallet.NewService(repo, nil, nil)
	h := wallet.NewHandler(svc)

	jwtSvc := jwt.NewService("wallet-integration-secret", time.Hour, 24*time.Hour)
	token, err := jwtSvc.GenerateAccessToken(userID)
	if err != nil {
		t.Fatalf("generate token failed: %v", err)
	}

	r := chi.NewRouter()
	r.Mount("/api/v1/wallets", h.Routes(middleware.Auth(jwtSvc)))

	var walletID string

	t.Run("POST / creates wallet", func(t *testing.T) {
		resp := performWalletRequest(t, r, token, http.MethodPost, "/api/v1/wallets/", map[string]interface{}{
			"name":           "Checking",
			"initial_amount": "100",
		})
		if resp.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
		}
		body := decodeWalletResponse(t, resp)
		if !body.Success {
			t.Fatalf("expected success=true, got %s", resp.Body.String())
		}

		var created struct {
			ID     string `json:"id"`
			Name   string `json:"name"`
			Amount string `json:"amount"`
		}
		if err := json.Unmarshal(body.Data, &created); err != nil {
			t.Fatalf("decode data failed: %v", err)
		}
		if created.Name != "Checking" || created.Amount != "100" {
			t.Fatalf("unexpected wallet payload: %s", body.Data)
		}
		walletID = created.ID
	})

	t.Run("GET / lists wallets", func(t *testing.T) {
		resp := performWalletRequest(t, r, token, http.MethodGet, "/api/v1/wallets/", nil)
		if resp.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", resp.Code)
		}
		body := decodeWalletResponse(t, resp)
		var list []json.RawMessage
		if err := json.Unmarshal(body.Data, &list); err != nil {
			t.Fatalf("decode data failed: %v", err)
		}
		if len(list) != 1 {
			t.Fatalf("expected 1 wallet, got %d", len(list))
		}
	})

	t.Run("PATCH /{id} renames wallet", func(t *testing.T) {
		resp := performWalletRequest(t, r, token, http.MethodPatch, "/api/v1/wallets/"+walletID, map[string]interface{}{
			"name": "Daily spending",
		})
		if resp.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
		}
	})

	t.Run("GET /{id} unknown wallet is 404", func(t *testing.T) {
		resp := performWalletRequest(t, r, token, http.MethodGet, "/api/v1/wallets/00000000-0000-0000-0000-000000000000", nil)
		if resp.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", resp.Code)
		}
	})

	t.Run("requests without token are rejected", func(t *testing.T) {
		resp := performWalletRequest(t, r, "", http.MethodGet, "/api/v1/wallets/", nil)
		if resp.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", resp.Code)
		}
	})

	t.Run("DELETE /{id} removes wallet", func(t *testing.T) {
		resp := performWalletRequest(t, r, token, http.MethodDelete, "/api/v1/wallets/"+walletID, nil)
		if resp.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", resp.Code)
		}
	})
}

func performWalletRequest(t *testing.T, r chi.Router, token, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reqBody *bytes.Buffer
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body failed: %v", err)
		}
		reqBody = bytes.NewBuffer(raw)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func decodeWalletResponse(t *testing.T, resp *httptest.ResponseRecorder) walletAPIResponse {
	t.Helper()
	var body walletAPIResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response failed: %v: %s", err, resp.Body.String())
	}
	return body
}
