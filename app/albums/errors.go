package albums

import (
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/albummanager/app/albums/views"
	"github.com/dmitrymomot/albummanager/core/logger"
	"github.com/dmitrymomot/albummanager/core/response"
)

// handleError renders failed responses as an HTML error page.
func (a *App) handleError(ctx *Context, err error) {
	httpErr := response.AsHTTPError(err)

	level := slog.LevelWarn
	if httpErr.Status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	a.logger.LogAttrs(ctx, level, "request failed",
		logger.Component("albums"),
		logger.Method(ctx.Request().Method),
		logger.Path(ctx.Request().URL.Path),
		logger.StatusCode(httpErr.Status),
		logger.Error(err),
	)

	message := httpErr.Message
	if httpErr.Status >= http.StatusInternalServerError {
		message = "Something went wrong. Please try again."
	}
	response.Render(ctx, response.TemplWithStatus(views.ErrorPage(httpErr.Status, message), httpErr.Status))
}
