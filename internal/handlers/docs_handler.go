package handlers

import (
	"crypto/md5"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/labstack/echo/v4"
)

// DocsHandler serves the interactive API reference. The Scalar page is
// loaded once at startup; the OpenAPI document is read per request so a
// regenerated swagger.json is picked up without a restart.
type DocsHandler struct {
	scalarHTML []byte
	scalarETag string
	oas3Path   string
}

// NewDocsHandler creates a new documentation handler
func NewDocsHandler() *DocsHandler {
	scalarHTML, err := os.ReadFile(filepath.Join("docs", "scalar.html"))
	if err != nil {
		// Tolerate a missing page so the API still boots; the asset
		// ships with the repo but may be absent in stripped images
		scalarHTML = []byte{}
	}

	return &DocsHandler{
		scalarHTML: scalarHTML,
		scalarETag: generateETag(scalarHTML),
		oas3Path:   filepath.Join("docs", "swagger.json"),
	}
}

// ServeScalarUI serves the Scalar reference page
// @Summary API documentation UI
// @Description Serves the interactive Scalar documentation interface
// @Tags documentation
// @Produce html
// @Success 200 {string} string "HTML page"
// @Router /docs [get]
func (h *DocsHandler) ServeScalarUI(c echo.Context) error {
	c.Response().Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	c.Response().Header().Set("Pragma", "no-cache")

	if h.scalarETag != "" {
		c.Response().Header().Set("ETag", h.scalarETag)
		if match := c.Request().Header.Get("If-None-Match"); match == h.scalarETag {
			return c.NoContent(http.StatusNotModified)
		}
	}

	return c.HTMLBlob(http.StatusOK, h.scalarHTML)
}

// ServeOAS3JSON serves the OpenAPI document the Scalar page loads
// @Summary OpenAPI specification
// @Tags documentation
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /docs/swagger.json [get]
func (h *DocsHandler) ServeOAS3JSON(c echo.Context) error {
	c.Response().Header().Set("Access-Control-Allow-Origin", "*")
	c.Response().Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	c.Response().Header().Set("Access-Control-Allow-Headers", "Content-Type")
	c.Response().Header().Set("Cache-Control", "public, max-age=300")
	c.Response().Header().Set("Content-Type", "application/json; charset=utf-8")
	return c.File(h.oas3Path)
}

// generateETag creates an ETag hash for cache control
func generateETag(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	return fmt.Sprintf("%q", fmt.Sprintf("%x", md5.Sum(data)))
}
