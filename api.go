package folio

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/eringen/folio/content"
	"github.com/eringen/folio/internal/logger"
)

// apiError is the body of every failed API response.
type apiError struct {
	Error string `json:"error"`
}

type apiSuccess struct {
	Success bool `json:"success"`
}

func (a *App) registerAPI(g *echo.Group) {
	g.GET("/health", a.handleHealth)
	g.POST("/auth/token", a.handleToken)

	for _, k := range content.Kinds {
		if k == content.KindProfile {
			continue
		}
		path := "/" + string(k)
		g.GET(path, a.apiList(k))
		g.POST(path, a.apiCreate(k))
		g.PUT(path, a.apiUpdate(k))
		g.DELETE(path, a.apiDelete(k))
	}

	g.GET("/personal-info", a.apiList(content.KindProfile))
	g.PUT("/personal-info", a.apiUpdate(content.KindProfile))
	g.POST("/personal-info/photo", a.handlePhotoUpload)
}

// apiList answers the rows of k. The profile answers null when absent.
func (a *App) apiList(k content.Kind) echo.HandlerFunc {
	return func(c echo.Context) error {
		v, err := a.Services.List(c.Request().Context(), k)
		if err != nil {
			return a.apiFail(c, err)
		}
		return c.JSON(http.StatusOK, v)
	}
}

func (a *App) apiCreate(k content.Kind) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !Capabilities(c).CanEdit() {
			return a.apiFail(c, content.ErrUnauthorized)
		}
		payload := k.New()
		if err := decodeJSON(c, payload); err != nil {
			return c.JSON(http.StatusBadRequest, apiError{Error: "Invalid JSON"})
		}
		out, err := a.Services.Create(c.Request().Context(), k, payload)
		if err != nil {
			return a.apiFail(c, err)
		}
		return c.JSON(http.StatusOK, out)
	}
}

// apiUpdate replaces the row named by the body's id. For the profile a
// missing id means "the profile", creating it when absent.
func (a *App) apiUpdate(k content.Kind) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !Capabilities(c).CanEdit() {
			return a.apiFail(c, content.ErrUnauthorized)
		}
		payload := k.New()
		if err := decodeJSON(c, payload); err != nil {
			return c.JSON(http.StatusBadRequest, apiError{Error: "Invalid JSON"})
		}
		out, err := a.Services.Update(c.Request().Context(), k, content.IDOf(payload), payload)
		if err != nil {
			return a.apiFail(c, err)
		}
		return c.JSON(http.StatusOK, out)
	}
}

// apiDelete removes ?id=. A missing or malformed id deletes nothing and
// still succeeds.
func (a *App) apiDelete(k content.Kind) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !Capabilities(c).CanEdit() {
			return a.apiFail(c, content.ErrUnauthorized)
		}
		id, _ := strconv.ParseInt(c.QueryParam("id"), 10, 64)
		if err := a.Services.Delete(c.Request().Context(), k, id); err != nil {
			return a.apiFail(c, err)
		}
		return c.JSON(http.StatusOK, apiSuccess{Success: true})
	}
}

func (a *App) handleHealth(c echo.Context) error {
	if err := a.Store.Ping(c.Request().Context()); err != nil {
		return a.apiFail(c, storageError(err))
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// apiFail maps a service error onto the API's status codes. Storage and
// unexpected failures are logged and answered with a generic message.
func (a *App) apiFail(c echo.Context, err error) error {
	var ve *content.ValidationError
	switch {
	case errors.Is(err, content.ErrUnauthorized):
		return c.JSON(http.StatusUnauthorized, apiError{Error: "Unauthorized"})
	case errors.As(err, &ve):
		return c.JSON(http.StatusBadRequest, apiError{Error: ve.Error()})
	}
	a.Log.Error("api request failed",
		logger.String("method", c.Request().Method),
		logger.String("path", c.Request().URL.Path),
		logger.Error(err),
	)
	return c.JSON(http.StatusInternalServerError, apiError{Error: "Failed to fetch"})
}

func decodeJSON(c echo.Context, v any) error {
	return json.NewDecoder(c.Request().Body).Decode(v)
}
