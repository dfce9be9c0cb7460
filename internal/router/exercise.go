package router

import (
	"net/http"

	"github.com/deppfellow/world-api/internal/handler"
	"github.com/labstack/echo/v4"
)

func registerExerciseRoutes(r *echo.Echo, h *handler.Handlers) {
	ex := h.Exercise

	r.GET("/ping", ex.Ping)
	r.GET("/hello", ex.Hello)
	r.GET("/hello/:username", handler.HandleText(ex.Handler, ex.HelloUser, http.StatusOK))
	r.GET("/fizzbuzz", handler.HandleText(ex.Handler, ex.FizzBuzz, http.StatusOK))
	r.POST("/add", ex.Add)
	r.GET("/students/:classNumber/:studentNumber", handler.Handle(ex.Handler, ex.GetStudent, http.StatusOK))
	r.GET("/json", ex.GetJSON)
	r.POST("/json", handler.Handle(ex.Handler, ex.EchoJSON, http.StatusOK))
}
