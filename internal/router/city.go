package router

import (
	"net/http"

	"github.com/deppfellow/world-api/internal/handler"
	"github.com/labstack/echo/v4"
)

func registerCityRoutes(r *echo.Echo, h *handler.Handlers) {
	cities := r.Group("/cities")

	cities.GET("/:name", handler.Handle(h.City.Handler, h.City.GetCity, http.StatusOK))
	cities.GET("/:name/ratio", handler.Handle(h.City.Handler, h.City.GetCityRatio, http.StatusOK))
	cities.POST("", handler.Handle(h.City.Handler, h.City.CreateCity, http.StatusOK))
}
