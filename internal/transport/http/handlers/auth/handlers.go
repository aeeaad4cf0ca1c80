package authhandler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"staffdesk/internal/domain/auth"
	"staffdesk/internal/transport/http/api"
	"staffdesk/internal/transport/http/middleware"
	"staffdesk/internal/transport/http/shared"
)

type Handler struct {
	Gate   *auth.Gate
	Secret string
	TTL    time.Duration
	Now    func() time.Time
}

func NewHandler(gate *auth.Gate, secret string, ttl time.Duration) *Handler {
	return &Handler{Gate: gate, Secret: secret, TTL: ttl, Now: time.Now}
}

type sessionResponse struct {
	Authenticated bool                  `json:"authenticated"`
	User          *auth.SessionIdentity `json:"user"`
	Token         string                `json:"token,omitempty"`
}

// RegisterRoutes mounts the auth endpoints. limit wraps the credential
// submissions and may be nil.
func (h *Handler) RegisterRoutes(r chi.Router, limit func(http.Handler) http.Handler) {
	r.Route("/auth", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			if limit != nil {
				r.Use(limit)
			}
			r.Post("/login", h.handleLogin)
			r.Post("/signup", h.handleSignup)
		})
		r.Post("/logout", h.handleLogout)
		r.Get("/session", h.handleSession)
	})
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	var form auth.LoginForm
	if !shared.DecodeJSON(w, r, requestID, &form) {
		return
	}
	form = form.Normalize()
	if shared.Reject(w, requestID, form.Validate()) {
		return
	}

	h.startSession(w, r, auth.IdentityFromLogin(form), http.StatusOK)
}

func (h *Handler) handleSignup(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	var form auth.SignupForm
	if !shared.DecodeJSON(w, r, requestID, &form) {
		return
	}
	form = form.Normalize()
	if shared.Reject(w, requestID, form.Validate()) {
		return
	}

	h.startSession(w, r, auth.IdentityFromSignup(form, h.Now()), http.StatusCreated)
}

func (h *Handler) startSession(w http.ResponseWriter, r *http.Request, identity auth.SessionIdentity, status int) {
	requestID := middleware.GetRequestID(r.Context())
	token, err := auth.IssueToken(h.Secret, identity, h.TTL, h.Now())
	if err != nil {
		slog.Error("issue session token failed", "err", err, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, api.CodeTokenError, "failed to issue token", requestID)
		return
	}
	if err := h.Gate.Login(r.Context(), identity, token); err != nil {
		slog.Error("persist session failed", "err", err, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, api.CodeSessionError, "failed to start session", requestID)
		return
	}

	slog.Info("session started", "userId", identity.ID, "role", identity.Role, "requestId", requestID)
	api.WriteJSON(w, status, api.Envelope{
		Success:   true,
		Data:      sessionResponse{Authenticated: true, User: &identity, Token: token},
		RequestID: requestID,
	})
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	if h.Gate.IsAuthenticated() && !h.Gate.TokenMatches(middleware.BearerToken(r)) {
		api.Fail(w, http.StatusUnauthorized, api.CodeInvalidToken, "session token is missing or does not match", requestID)
		return
	}
	if err := h.Gate.Logout(r.Context()); err != nil {
		slog.Error("clear session failed", "err", err, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, api.CodeSessionError, "failed to end session", requestID)
		return
	}
	api.Success(w, sessionResponse{Authenticated: false}, requestID)
}

func (h *Handler) handleSession(w http.ResponseWriter, r *http.Request) {
	resp := sessionResponse{Authenticated: h.Gate.IsAuthenticated()}
	if identity, ok := h.Gate.Identity(); ok && resp.Authenticated {
		resp.User = &identity
	}
	api.Success(w, resp, middleware.GetRequestID(r.Context()))
}
