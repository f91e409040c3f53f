// Package web hosts the login page fixture: the HTTP surface that puts
// the credential validation core behind a form-submission boundary and
// exposes the status region automated drivers assert against.
package web

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/csrf"
	"go.uber.org/zap"

	"github.com/dstokesj/loginbench/internal/login"
	"github.com/dstokesj/loginbench/internal/version"
)

// Handlers holds dependencies for HTTP handlers
type Handlers struct {
	validator *login.Validator
	logger    *zap.Logger
}

// NewHandlers creates a new Handlers instance
func NewHandlers(validator *login.Validator, logger *zap.Logger) *Handlers {
	return &Handlers{
		validator: validator,
		logger:    logger,
	}
}

// Login renders the login page with the status region in its initial
// blank state.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	data := TemplateData{
		CSRFToken: csrf.Token(r),
		Version:   version.Get(),
	}

	if err := renderTemplate(w, "login", data); err != nil {
		h.logger.Error("Error rendering login template", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// Submit handles the plain form submission path (no client script). The
// page is re-rendered from scratch, so the status region is cleared
// before the new outcome is written into it.
func (h *Handlers) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	outcome := h.validator.Evaluate(username, password)

	data := TemplateData{
		Username:  strings.TrimSpace(username),
		Status:    login.Present(outcome),
		CSRFToken: csrf.Token(r),
		Version:   version.Get(),
	}

	if err := renderTemplate(w, "login", data); err != nil {
		h.logger.Error("Error rendering login template", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Outcome login.Outcome `json:"outcome"`
	login.StatusDisplay
}

// APILogin handles the scripted submission path. The in-page script
// intercepts the native form submit, posts the fields here, and applies
// the returned text and style class to the status region.
func (h *Handlers) APILogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	outcome := h.validator.Evaluate(req.Username, req.Password)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(loginResponse{
		Outcome:       outcome,
		StatusDisplay: login.Present(outcome),
	}); err != nil {
		h.logger.Error("Error encoding login response", zap.Error(err))
	}
}

// Healthz reports readiness; the harness polls it after booting the
// fixture server.
func (h *Handlers) Healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok"))
}

// NotFound handles unknown routes
func (h *Handlers) NotFound(w http.ResponseWriter, r *http.Request) {
	http.Error(w, "Not Found", http.StatusNotFound)
}
