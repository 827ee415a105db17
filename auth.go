package folio

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eringen/folio/content"
	"github.com/eringen/folio/internal/logger"
	"github.com/eringen/folio/views"
)

func (a *App) handleLoginForm(c echo.Context) error {
	if Capabilities(c).CanEdit() {
		return c.Redirect(http.StatusSeeOther, "/")
	}
	return Render(c, views.LoginForm(a.loginPage(c, &views.Login{})))
}

func (a *App) handleLogin(c echo.Context) error {
	ip := c.RealIP()
	email := c.FormValue("email")
	if !a.loginLimiter.Check(ip) {
		return RenderStatus(c, http.StatusTooManyRequests,
			views.LoginForm(a.loginPage(c, &views.Login{Email: email, Limited: true})))
	}
	o, err := a.Services.Owners.Authenticate(c.Request().Context(), email, c.FormValue("password"))
	if errors.Is(err, ErrInvalidCredentials) {
		a.loginLimiter.Record(ip)
		a.Log.Warn("failed login", logger.String("ip", ip))
		return RenderStatus(c, http.StatusUnauthorized,
			views.LoginForm(a.loginPage(c, &views.Login{Email: email, Error: "Invalid email or password."})))
	}
	if err != nil {
		return err
	}
	if err := setOwnerSession(c, o); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

func (a *App) handleLogout(c echo.Context) error {
	if err := clearOwnerSession(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

type tokenRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// handleToken exchanges owner credentials for a bearer token.
func (a *App) handleToken(c echo.Context) error {
	ip := c.RealIP()
	if !a.loginLimiter.Check(ip) {
		return c.JSON(http.StatusTooManyRequests, apiError{Error: "Too many login attempts"})
	}
	var req tokenRequest
	if err := decodeJSON(c, &req); err != nil {
		return c.JSON(http.StatusBadRequest, apiError{Error: "Invalid JSON"})
	}
	o, err := a.Services.Owners.Authenticate(c.Request().Context(), req.Email, req.Password)
	if errors.Is(err, ErrInvalidCredentials) {
		a.loginLimiter.Record(ip)
		return a.apiFail(c, content.ErrUnauthorized)
	}
	if err != nil {
		return a.apiFail(c, err)
	}
	tok, exp, err := a.Tokens.Issue(o)
	if err != nil {
		return a.apiFail(c, err)
	}
	return c.JSON(http.StatusOK, tokenResponse{Token: tok, ExpiresAt: exp})
}

// requireOwnerPage sends visitors of owner-only pages to the login form.
func (a *App) requireOwnerPage(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !Capabilities(c).CanEdit() {
			return c.Redirect(http.StatusSeeOther, "/login")
		}
		return next(c)
	}
}

func (a *App) loginPage(c echo.Context, l *views.Login) views.Page {
	p := a.basePage(c, content.PageMeta{
		Title: "Sign in | " + a.Config.Name,
		URL:   BuildURL(a.Config.URL, "login"),
	})
	p.Login = l
	return p
}
