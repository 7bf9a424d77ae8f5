package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func registerControllerEndpoints(rest *echo.Echo) {
	group := rest.Group("/controller")

	group.GET("/", getControllerSnapshot)
	group.GET("/switches/", getSwitches)
}

func getControllerSnapshot(c echo.Context) error {
	snapshot := loadController.Snapshot()
	return c.JSONPretty(http.StatusOK, snapshot, indentationChar)
}

func getSwitches(c echo.Context) error {
	snapshot := loadController.Snapshot()

	switches := snapshot.State.Switches()
	data := make([]bool, 0, len(switches))
	data = append(data, switches[:]...)

	return c.JSONPretty(http.StatusOK, data, indentationChar)
}
