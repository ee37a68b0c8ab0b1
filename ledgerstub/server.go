package ledgerstub

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/jeovahfialho/banking-frontend/types"
)

type Server struct {
	Ledger *Ledger
	Auth   *Authority
}

func NewServer(l *Ledger, auth *Authority) *Server {
	return &Server{Ledger: l, Auth: auth}
}

func (s *Server) Router() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/login", s.login).Methods(http.MethodPost)

	protected := r.NewRoute().Subrouter()
	protected.Use(s.requireToken)
	protected.HandleFunc("/balance", s.balance).Methods(http.MethodGet).Queries("account_id", "{account_id}")
	protected.HandleFunc("/event", s.event).Methods(http.MethodPost)
	protected.HandleFunc("/reset", s.reset).Methods(http.MethodPost)
	return r
}

func (s *Server) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
		if !ok || !strings.EqualFold(scheme, "bearer") || token == "" {
			writeErr(w, http.StatusUnauthorized, "authorization header required")
			return
		}
		if _, err := s.Auth.Verify(token); err != nil {
			writeErr(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req types.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	token, err := s.Auth.Login(req.Username, req.Pass)
	if err != nil {
		writeErr(w, http.StatusUnauthorized, err.Error())
		return
	}
	slog.Info("issued token", "username", req.Username)
	writeJSON(w, http.StatusOK, types.LoginResponse{Token: token})
}

func (s *Server) balance(w http.ResponseWriter, r *http.Request) {
	balance, err := s.Ledger.Balance(mux.Vars(r)["account_id"])
	if err != nil {
		writeJSON(w, http.StatusNotFound, 0)
		return
	}
	writeJSON(w, http.StatusOK, types.AccountBalance{Balance: balance})
}

func (s *Server) event(w http.ResponseWriter, r *http.Request) {
	var ev types.Event
	if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}

	var (
		result types.EventResult
		err    error
	)
	switch ev.Type {
	case types.TxDeposit:
		var dest types.AccountBalance
		dest, err = s.Ledger.Deposit(ev.Destination, ev.Amount)
		result.Destination = &dest
	case types.TxWithdraw:
		var origin types.AccountBalance
		origin, err = s.Ledger.Withdraw(ev.Origin, ev.Amount)
		result.Origin = &origin
	case types.TxTransfer:
		var origin, dest types.AccountBalance
		origin, dest, err = s.Ledger.Transfer(ev.Origin, ev.Destination, ev.Amount)
		result.Origin, result.Destination = &origin, &dest
	default:
		writeErr(w, http.StatusBadRequest, "unknown event type")
		return
	}
	if err != nil {
		writeErr(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

func (s *Server) reset(w http.ResponseWriter, r *http.Request) {
	s.Ledger.Reset()
	slog.Info("ledger reset")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrAccountNotFound):
		return http.StatusNotFound
	default:
		return http.StatusBadRequest
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, types.ErrorBody{Error: msg})
}
