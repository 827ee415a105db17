package folio

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/eringen/folio/content"
	"github.com/eringen/folio/internal/logger"
)

const sessionName = "owner_session"

func (a *App) setupMiddleware() {
	e := a.Echo

	e.IPExtractor = echo.ExtractIPFromXFFHeader(
		echo.TrustLoopback(true),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(true),
	)

	e.HTTPErrorHandler = a.httpErrorHandler

	e.Pre(middleware.NonWWWRedirect())

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			a.Log.Info("request",
				logger.String("method", v.Method),
				logger.String("uri", v.URI),
				logger.Int("status", v.Status),
				logger.Duration("latency", v.Latency),
				logger.String("request_id", v.RequestID),
			)
			return nil
		},
	}))

	e.Use(middleware.Recover())

	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		Level: 5,
		Skipper: func(c echo.Context) bool {
			return strings.HasPrefix(c.Request().URL.Path, "/public/")
		},
	}))

	e.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		ContentSecurityPolicy: "default-src 'self'; script-src 'self'; style-src 'self' 'unsafe-inline'; img-src 'self' https: data:; font-src 'self'; connect-src 'self'",
		HSTSMaxAge:            31536000,
		HSTSExcludeSubdomains: false,
	}))

	e.Use(session.Middleware(a.newSessionStore()))

	e.Use(middleware.CSRFWithConfig(middleware.CSRFConfig{
		ContextKey:     middleware.DefaultCSRFConfig.ContextKey,
		TokenLookup:    "header:X-CSRF-Token,form:_csrf",
		CookieName:     "_csrf",
		CookiePath:     "/",
		CookieSameSite: http.SameSiteLaxMode,
		CookieSecure:   a.Config.CookieSecure,
		Skipper:        skipCSRF,
		ErrorHandler: func(err error, c echo.Context) error {
			if isAPI(c) {
				return c.JSON(http.StatusForbidden, apiError{Error: "Forbidden"})
			}
			return c.String(http.StatusForbidden, "Forbidden")
		},
	}))

	e.Use(a.capabilitiesMiddleware)
	e.Use(cacheControlMiddleware)
}

// skipCSRF exempts requests that carry no ambient credentials: bearer
// token calls, the token endpoint, and API calls without a session cookie.
func skipCSRF(c echo.Context) bool {
	req := c.Request()
	if bearerToken(req) != "" || req.URL.Path == "/api/auth/token" {
		return true
	}
	if isAPI(c) {
		_, err := req.Cookie(sessionName)
		return err != nil
	}
	return false
}

// capabilitiesMiddleware resolves the requester from the session cookie or a
// bearer token and stores the result in the request context.
func (a *App) capabilitiesMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		caps := content.Visitor
		if tok := bearerToken(c.Request()); tok != "" {
			if claims, err := a.Tokens.Verify(tok); err == nil {
				caps = content.Capabilities{Owner: true, OwnerName: claims.Name}
			}
		} else if name, ok := ownerSession(c); ok {
			caps = content.Capabilities{Owner: true, OwnerName: name}
		}
		req := c.Request()
		c.SetRequest(req.WithContext(content.WithCapabilities(req.Context(), caps)))
		return next(c)
	}
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get(echo.HeaderAuthorization)
	if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

func cacheControlMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		path := c.Request().URL.Path
		switch {
		case strings.HasPrefix(path, "/public/uploads/"):
			c.Response().Header().Set("Cache-Control", "public, max-age=300")
		case strings.HasPrefix(path, "/public/"):
			c.Response().Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		case path == "/sitemap.xml" || path == "/feed.xml" || path == "/robots.txt":
			c.Response().Header().Set("Cache-Control", "public, max-age=3600")
		default:
			// Pages differ between visitors and the owner and change on
			// every edit.
			c.Response().Header().Set("Cache-Control", "no-store")
		}
		return next(c)
	}
}

func (a *App) newSessionStore() *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(a.Config.SessionSecret))
	store.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		MaxAge:   60 * 60 * 12,
		SameSite: http.SameSiteLaxMode,
		Secure:   a.Config.CookieSecure,
	}
	return store
}

// ownerSession reports whether the session cookie belongs to a signed-in
// owner, and the owner's display name.
func ownerSession(c echo.Context) (string, bool) {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return "", false
	}
	auth, ok := sess.Values["authenticated"].(bool)
	if !ok || !auth {
		return "", false
	}
	name, _ := sess.Values["owner_name"].(string)
	return name, true
}

func setOwnerSession(c echo.Context, o *Owner) error {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return err
	}
	sess.Values["authenticated"] = true
	sess.Values["owner_id"] = o.ID
	sess.Values["owner_name"] = o.Name
	return sess.Save(c.Request(), c.Response())
}

func clearOwnerSession(c echo.Context) error {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return err
	}
	sess.Options.MaxAge = -1
	return sess.Save(c.Request(), c.Response())
}

// Capabilities returns what the requester of c may do.
func Capabilities(c echo.Context) content.Capabilities {
	return content.CapabilitiesFrom(c.Request().Context())
}

// CsrfToken extracts the CSRF token from the Echo context.
func CsrfToken(c echo.Context) string {
	token, _ := c.Get(middleware.DefaultCSRFConfig.ContextKey).(string)
	return token
}

func isAPI(c echo.Context) bool {
	return strings.HasPrefix(c.Request().URL.Path, "/api/")
}
