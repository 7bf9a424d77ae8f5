package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type WindResult struct {
	Speed     float64 `json:"speed"`
	Gust      float64 `json:"gust"`
	Direction float64 `json:"direction"`
}

func registerWindEndpoints(rest *echo.Echo) {
	group := rest.Group("/wind")

	group.GET("/", getWind)
}

func getWind(c echo.Context) error {
	data := WindResult{
		Speed:     windSource.Speed(),
		Gust:      windSource.Gust(),
		Direction: windSource.Direction(),
	}
	return c.JSONPretty(http.StatusOK, data, indentationChar)
}
