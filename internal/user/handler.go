package user

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/ovaphlow/pitchfork/service-shop-go/internal/session"
	"github.com/ovaphlow/pitchfork/service-shop-go/internal/user/entity"
	"github.com/ovaphlow/pitchfork/service-shop-go/internal/validation"
	"github.com/ovaphlow/pitchfork/service-shop-go/pkg/utilities"
)

// Handler exposes HTTP endpoints for user operations (register / login / logout / me).
type Handler struct {
	svc     *UserService
	cookies session.CookiePolicy
	logger  *zap.SugaredLogger
}

func NewHandler(svc *UserService, cookies session.CookiePolicy, logger *zap.SugaredLogger) *Handler {
	return &Handler{svc: svc, cookies: cookies, logger: logger}
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	User    entity.PublicView `json:"user"`
	Token   string            `json:"token"`
}

// ProfileResponse is returned by me.
type ProfileResponse struct {
	Success bool         `json:"success"`
	User    *entity.User `json:"user"`
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	raw, err := utilities.DecodeJSON(r)
	if err != nil {
		h.logger.Debugw("invalid register payload", "err", err)
		utilities.Fail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	in, issues := ParseRegister(raw)
	if len(issues) > 0 {
		fields := validation.Project(issues, validation.FirstSegment)
		h.logger.Infow("register validation error", "errors", fields)
		utilities.FailFields(w, "Validation failed", fields)
		return
	}

	sess, err := h.svc.Register(r.Context(), in)
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			h.logger.Infow("register attempt with existing email", "email", in.Email)
			utilities.FailFields(w, "User already exists with this email",
				map[string]string{"email": "User already exists with this email"})
			return
		}
		h.logger.Errorw("register error", "err", err)
		utilities.Fail(w, http.StatusInternalServerError, "Server error")
		return
	}

	h.logger.Infow("new user registered", "user_id", sess.User.ID, "email", sess.User.Email)
	h.cookies.Set(w, sess.Token, sess.ExpiresAt)
	utilities.WriteJSON(w, http.StatusCreated, AuthResponse{
		Success: true,
		Message: "User registered successfully",
		User:    sess.User.Public(),
		Token:   sess.Token,
	})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	raw, err := utilities.DecodeJSON(r)
	if err != nil {
		h.logger.Debugw("invalid login payload", "err", err)
		utilities.Fail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	in, issues := ParseLogin(raw)
	if len(issues) > 0 {
		fields := validation.Project(issues, validation.FirstSegment)
		h.logger.Infow("login validation error", "errors", fields)
		utilities.FailFields(w, "Validation failed", fields)
		return
	}

	sess, err := h.svc.Login(r.Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, ErrUserNotFound):
			h.logger.Infow("login failed - user not found", "email", in.Email)
			utilities.FailFields(w, "User does not exist", map[string]string{"email": "User does not exist"})
		case errors.Is(err, ErrIncorrectPassword):
			h.logger.Infow("login failed - incorrect password", "email", in.Email)
			utilities.FailFields(w, "Incorrect password", map[string]string{"password": "Incorrect password"})
		default:
			h.logger.Errorw("login error", "err", err)
			utilities.Fail(w, http.StatusInternalServerError, "Server error")
		}
		return
	}

	h.logger.Infow("user logged in", "user_id", sess.User.ID, "email", sess.User.Email)
	h.cookies.Set(w, sess.Token, sess.ExpiresAt)
	utilities.WriteJSON(w, http.StatusOK, AuthResponse{
		Success: true,
		Message: "Login successful",
		User:    sess.User.Public(),
		Token:   sess.Token,
	})
}

// Logout clears the session cookie. Tokens are stateless, so a copy held
// elsewhere stays valid until it expires.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.cookies.Clear(w)
	utilities.WriteJSON(w, http.StatusOK, utilities.Envelope{Success: true, Message: "Logged out successfully"})
}

// Me must be mounted behind session.RequireAuth.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	id, ok := session.FromContext(r.Context())
	if !ok {
		utilities.Fail(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	u, err := h.svc.Profile(r.Context(), id.UserID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			utilities.Fail(w, http.StatusNotFound, "User does not exist")
			return
		}
		h.logger.Errorw("profile error", "user_id", id.UserID, "err", err)
		utilities.Fail(w, http.StatusInternalServerError, "Server error")
		return
	}
	utilities.WriteJSON(w, http.StatusOK, ProfileResponse{Success: true, User: u})
}
