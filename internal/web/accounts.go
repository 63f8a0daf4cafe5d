package web

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tolyara/webshop/internal/domain"
	"github.com/tolyara/webshop/internal/messaging/kafka"
)

type addAccountRequest struct {
	Role     string `json:"role"`
	Login    string `json:"login"`
	Password string `json:"password"`
}

func (s *Server) listAccounts(w http.ResponseWriter, _ *http.Request) {
	accounts, err := s.storage.Accounts()
	if err != nil {
		s.writeError(w, err)
		return
	}

	type accountPayload struct {
		Login  string `json:"login"`
		Active bool   `json:"active"`
	}
	payload := make(map[string]accountPayload, len(accounts))
	for login, account := range accounts {
		payload[login] = accountPayload{Login: account.Login, Active: account.Active}
	}
	writeJSON(w, http.StatusOK, payload)
}

func (s *Server) addAccount(w http.ResponseWriter, r *http.Request) {
	var req addAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	role := req.Role
	if role == "" {
		role = domain.RoleUser
	}

	// Новые аккаунты создаются активными, как и при регистрации в магазине.
	account := domain.Account{Login: req.Login, Password: req.Password, Active: true}
	if errs := account.ValidateInvariants(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": errs[0].Error()})
		return
	}

	if err := s.storage.AddAccount(role, account); err != nil {
		s.writeError(w, err)
		return
	}

	s.publishAccountEvent(kafka.NewAccountEvent(kafka.EventTypeAccountCreated, account.Login, true))
	writeJSON(w, http.StatusCreated, map[string]string{"login": account.Login, "role": role})
}

// changeAccountStatus сохраняет форму исходного сервлета: клиент передаёт
// login и currentStatus, сервер записывает противоположное значение.
// Параметр currentStatus принимается для совместимости, фактическая
// операция — переключение текущего флага в хранилище.
func (s *Server) changeAccountStatus(w http.ResponseWriter, r *http.Request) {
	login := chi.URLParam(r, "login")

	active, err := s.storage.ToggleAccountActive(login)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.publishAccountEvent(kafka.NewAccountEvent(kafka.EventTypeAccountStatusChanged, login, active))
	writeJSON(w, http.StatusOK, map[string]any{"login": login, "active": active})
}

type loginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	authenticated, err := s.storage.CheckLoginPassword(req.Login, req.Password)
	if err != nil {
		s.writeError(w, err)
		return
	}

	role := ""
	if authenticated {
		role, err = s.storage.AccountRole(req.Login)
		if err != nil {
			s.writeError(w, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"authenticated": authenticated, "role": role})
}
