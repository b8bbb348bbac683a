package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	log "github.com/carousell/ct-go/pkg/logger/log_context"
	"github.com/labstack/echo/v4"

	"github.com/eyal1999/DealHunt-fullstack-project-sub000/internal/models"
	pkgmdw "github.com/eyal1999/DealHunt-fullstack-project-sub000/internal/server/middleware"
)

// errorHandler maps domain errors onto the shared response envelope.
// Handlers mostly return sentinels and let the mapping happen here.
func errorHandler() echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if err == nil || c.Response().Committed {
			return
		}

		resp := &pkgmdw.ResponseError{
			Status: http.StatusInternalServerError,
			Err:    err,
		}

		switch v := err.(type) {
		case *echo.HTTPError:
			resp.Status = v.Code
			resp.ErrorMessage = fmt.Sprint(v.Message)
		case *pkgmdw.ResponseError:
			resp = v
		default:
			switch {
			case errors.Is(err, models.ErrSessionNotFound):
				resp.Status = http.StatusNotFound
				resp.ErrorCode = "session_not_found"
			case errors.Is(err, models.ErrUnknownMarketplace):
				resp.Status = http.StatusBadRequest
				resp.ErrorCode = "unknown_marketplace"
			case errors.Is(err, models.ErrAllSourcesFailed):
				resp.Status = http.StatusBadGateway
				resp.ErrorCode = "all_sources_failed"
			case errors.Is(err, context.Canceled) && c.Request().Context().Err() == context.Canceled:
				resp.Status = 499
				resp.ErrorCode = "request_cancelled"
			}
		}
		if resp.ErrorMessage == "" {
			resp.ErrorMessage = err.Error()
		}

		if c.Request().Method == http.MethodHead {
			if err := c.NoContent(resp.Status); err != nil {
				log.Errorw(c.Request().Context(), "could not respond", "code", resp.Status)
			}
			return
		}
		if err := c.JSON(resp.Status, resp); err != nil {
			log.Errorw(c.Request().Context(), "could not respond", "code", resp.Status, "response_body", resp)
		}
	}
}
