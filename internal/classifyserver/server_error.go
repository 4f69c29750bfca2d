package classifyserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (s *Server) serverError(c echo.Context, err error) error {
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}

func (s *Server) badRequest(c echo.Context, err error) error {
	return echo.NewHTTPError(http.StatusBadRequest, err.Error())
}
