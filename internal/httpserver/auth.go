package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/aura_shop/internal/auth"
	"github.com/Skotchmaster/aura_shop/internal/transport"
	"github.com/Skotchmaster/aura_shop/pkg/logging"
	"github.com/Skotchmaster/aura_shop/pkg/tokens"
)

type AuthHTTP struct {
	Svc              *auth.Service
	AdminRedirectURL string
	CookieSecure     bool
}

func (h *AuthHTTP) setTokenCookies(c echo.Context, p *tokens.Pair) {
	c.SetCookie(tokens.CreateCookie(tokens.AccessCookie, p.AccessToken, "/", p.AccessExp, h.CookieSecure))
	c.SetCookie(tokens.CreateCookie(tokens.RefreshCookie, p.RefreshToken, "/", p.RefreshExp, h.CookieSecure))
}

func (h *AuthHTTP) clearTokenCookies(c echo.Context) {
	c.SetCookie(tokens.DeleteCookie(tokens.AccessCookie, "/", h.CookieSecure))
	c.SetCookie(tokens.DeleteCookie(tokens.RefreshCookie, "/", h.CookieSecure))
}

func (h *AuthHTTP) SignUp(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.signup")

	var req transport.CredentialsRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("signup_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	u, err := h.Svc.SignUp(ctx, req.Email, req.Password)
	if err != nil {
		return httpError(err, "sign up failed")
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"email":   u.Email,
		"role":    u.Role,
		"message": "Account created!",
	})
}

func (h *AuthHTTP) SignIn(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.signin")

	var req transport.CredentialsRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("signin_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	pair, err := h.Svc.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			l.Warn("signin_failed", "status", 401)
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid login credentials")
		}
		l.Error("signin_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Authentication failed")
	}

	h.setTokenCookies(c, pair)
	l.Info("signin_success", "role", pair.Role)
	return c.JSON(http.StatusOK, transport.SignInResponse{
		Role:        pair.Role,
		RedirectURL: h.AdminRedirectURL,
	})
}

func (h *AuthHTTP) Refresh(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.refresh")

	ck, err := c.Cookie(tokens.RefreshCookie)
	if err != nil || ck.Value == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "refresh token missing")
	}

	pair, err := h.Svc.Refresh(ctx, ck.Value)
	if err != nil {
		l.Warn("refresh_failed", "status", statusFor(err), "error", err)
		h.clearTokenCookies(c)
		return httpError(err, "refresh failed")
	}

	h.setTokenCookies(c, pair)
	return c.JSON(http.StatusOK, echo.Map{"role": pair.Role})
}

func (h *AuthHTTP) LogOut(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.logout")

	if ck, err := c.Cookie(tokens.RefreshCookie); err == nil && ck.Value != "" {
		if err := h.Svc.LogOut(ctx, ck.Value); err != nil {
			h.clearTokenCookies(c)
			l.Error("logout_failed", "status", 500, "reason", "cannot revoke refresh token", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "logout failed")
		}
	}

	h.clearTokenCookies(c)
	l.Info("logout_success")
	return c.JSON(http.StatusOK, echo.Map{"message": "logged out"})
}
