package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"math/big"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pandodao/passkey-wallet/core"
)

type fakeAccounts struct {
	session   core.Session
	err       error
	loginMode core.LoginMode
	sent      [2]string
}

func (f *fakeAccounts) Signup(context.Context) error { return f.err }

func (f *fakeAccounts) Login(_ context.Context, mode core.LoginMode) error {
	f.loginMode = mode
	return f.err
}

func (f *fakeAccounts) Logout(context.Context) { f.session = core.Session{} }

func (f *fakeAccounts) Restore(context.Context) bool { return false }

func (f *fakeAccounts) Session() core.Session { return f.session }

func (f *fakeAccounts) SendTransaction(_ context.Context, to, amount string) (common.Hash, error) {
	f.sent = [2]string{to, amount}
	return common.HexToHash("0x01"), f.err
}

func (f *fakeAccounts) GetBalance(context.Context) (string, error) { return "1.5", f.err }

func (f *fakeAccounts) GetTransactions(context.Context) ([]*core.Transfer, error) {
	return []*core.Transfer{}, f.err
}

func TestErrorStatus(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not authenticated", core.ErrNotAuthenticated, http.StatusUnauthorized, "not_authenticated"},
		{"unsupported device", core.ErrUnsupportedDevice, http.StatusPreconditionFailed, "unsupported_device"},
		{"invalid argument", core.ErrInvalidArgument, http.StatusBadRequest, "invalid_argument"},
		{
			"insufficient funds",
			&core.InsufficientFundsError{Balance: big.NewInt(1e17), Required: big.NewInt(1e18)},
			http.StatusUnprocessableEntity,
			"insufficient_funds",
		},
		{"upstream", core.Upstream("chain", "get_balance", errors.New("timeout")), http.StatusBadGateway, "upstream"},
		{"internal", errors.New("boom"), http.StatusInternalServerError, "internal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(&fakeAccounts{err: tt.err}, slog.New(slog.NewTextHandler(io.Discard, nil)))

			w := httptest.NewRecorder()
			s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/balance", nil))

			if w.Code != tt.status {
				t.Errorf("status = %d, want %d", w.Code, tt.status)
			}

			var body struct {
				Error errorBody `json:"error"`
			}
			if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
				t.Fatalf("decode body: %v", err)
			}

			if body.Error.Code != tt.code {
				t.Errorf("code = %q, want %q", body.Error.Code, tt.code)
			}
		})
	}
}

func TestLoginMode(t *testing.T) {
	tests := []struct {
		name string
		body string
		want core.LoginMode
	}{
		{"empty body", "", core.FreshLogin{}},
		{"partial", `{"organization_id":"org-1"}`, core.FreshLogin{}},
		{
			"restore",
			`{"organization_id":"org-1","address":"0x71C7656EC7ab88b098defB751B7401B5f6d8976F"}`,
			core.RestoreLogin{OrganizationID: "org-1", Address: "0x71C7656EC7ab88b098defB751B7401B5f6d8976F"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			accounts := &fakeAccounts{}
			s := New(accounts, slog.New(slog.NewTextHandler(io.Discard, nil)))

			w := httptest.NewRecorder()
			s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(tt.body)))

			if w.Code != http.StatusOK {
				t.Fatalf("status = %d", w.Code)
			}

			if accounts.loginMode != tt.want {
				t.Errorf("mode = %#v, want %#v", accounts.loginMode, tt.want)
			}
		})
	}
}

func TestSendTransaction(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"ok", `{"to":"0x71C7656EC7ab88b098defB751B7401B5f6d8976F","amount":"0.1"}`, http.StatusOK},
		{"missing amount", `{"to":"0x71C7656EC7ab88b098defB751B7401B5f6d8976F"}`, http.StatusBadRequest},
		{"bad amount", `{"to":"0x71C7656EC7ab88b098defB751B7401B5f6d8976F","amount":"lots"}`, http.StatusBadRequest},
		{"malformed", `{`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			accounts := &fakeAccounts{}
			s := New(accounts, slog.New(slog.NewTextHandler(io.Discard, nil)))

			w := httptest.NewRecorder()
			s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/transactions", strings.NewReader(tt.body)))

			if w.Code != tt.status {
				t.Errorf("status = %d, want %d", w.Code, tt.status)
			}

			if tt.status == http.StatusOK {
				var body map[string]string
				_ = json.NewDecoder(w.Body).Decode(&body)
				if body["hash"] != common.HexToHash("0x01").Hex() {
					t.Errorf("hash = %q", body["hash"])
				}
			}
		})
	}
}
