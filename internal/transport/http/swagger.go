package http

import (
	"net/http"
	"os"
	"sync"

	"github.com/ghodss/yaml"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/njprem/Wanderly_APP_BackEnd/internal/util"
)

// RegisterSwagger serves the YAML document at specPath as JSON under
// /swagger/doc.json, plus the Swagger UI. The file is converted on first use.
func RegisterSwagger(e *echo.Echo, specPath string) {
	var (
		once     sync.Once
		jsonSpec []byte
		loadErr  error
	)
	load := func() {
		data, err := os.ReadFile(specPath)
		if err != nil {
			loadErr = err
			return
		}
		jsonSpec, loadErr = yaml.YAMLToJSON(data)
	}

	e.GET("/swagger/doc.json", func(c echo.Context) error {
		once.Do(load)
		if loadErr != nil {
			c.Logger().Errorf("load swagger spec %s: %v", specPath, loadErr)
			return c.JSON(http.StatusInternalServerError, util.Error("unable to load swagger spec").Code("internal"))
		}
		return c.Blob(http.StatusOK, echo.MIMEApplicationJSONCharsetUTF8, jsonSpec)
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)
}
