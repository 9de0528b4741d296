package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/asaskevich/govalidator"
	"github.com/go-chi/chi/v5"
	"github.com/pandodao/passkey-wallet/core"
)

func New(accounts core.AccountService, logger *slog.Logger) *Server {
	return &Server{
		accounts: accounts,
		logger:   logger.With("server", "api"),
	}
}

type Server struct {
	accounts core.AccountService
	logger   *slog.Logger
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Get("/session", s.session)
	r.Post("/signup", s.signup)
	r.Post("/login", s.login)
	r.Post("/logout", s.logout)
	r.Get("/balance", s.balance)
	r.Get("/transactions", s.listTransactions)
	r.Post("/transactions", s.sendTransaction)

	return r
}

func (s *Server) session(w http.ResponseWriter, r *http.Request) {
	renderJSON(w, http.StatusOK, s.accounts.Session())
}

func (s *Server) signup(w http.ResponseWriter, r *http.Request) {
	if err := s.accounts.Signup(r.Context()); err != nil {
		s.renderError(w, err)
		return
	}

	renderJSON(w, http.StatusOK, s.accounts.Session())
}

type loginRequest struct {
	OrganizationID string `json:"organization_id"`
	Address        string `json:"address"`
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		s.renderError(w, core.ErrInvalidArgument)
		return
	}

	var mode core.LoginMode = core.FreshLogin{}
	if req.OrganizationID != "" && req.Address != "" {
		mode = core.RestoreLogin{OrganizationID: req.OrganizationID, Address: req.Address}
	}

	if err := s.accounts.Login(r.Context(), mode); err != nil {
		s.renderError(w, err)
		return
	}

	renderJSON(w, http.StatusOK, s.accounts.Session())
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	s.accounts.Logout(r.Context())
	renderJSON(w, http.StatusOK, s.accounts.Session())
}

func (s *Server) balance(w http.ResponseWriter, r *http.Request) {
	balance, err := s.accounts.GetBalance(r.Context())
	if err != nil {
		s.renderError(w, err)
		return
	}

	renderJSON(w, http.StatusOK, map[string]string{
		"address": s.accounts.Session().Address,
		"balance": balance,
	})
}

type sendRequest struct {
	To     string `json:"to" valid:"required"`
	Amount string `json:"amount" valid:"required,float"`
}

func (s *Server) sendTransaction(w http.ResponseWriter, r *http.Request) {
	var req sendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.renderError(w, core.ErrInvalidArgument)
		return
	}

	if _, err := govalidator.ValidateStruct(req); err != nil {
		s.renderError(w, errors.Join(core.ErrInvalidArgument, err))
		return
	}

	hash, err := s.accounts.SendTransaction(r.Context(), req.To, req.Amount)
	if err != nil {
		s.renderError(w, err)
		return
	}

	renderJSON(w, http.StatusOK, map[string]string{"hash": hash.Hex()})
}

func (s *Server) listTransactions(w http.ResponseWriter, r *http.Request) {
	transfers, err := s.accounts.GetTransactions(r.Context())
	if err != nil {
		s.renderError(w, err)
		return
	}

	renderJSON(w, http.StatusOK, transfers)
}
