package search

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/query", h.ProcessQuery)
	api.GET("/suggestions", h.GetSuggestions)
	api.GET("/examples", h.GetExamples)
	api.GET("/conditions", h.GetConditions)
	api.GET("/demo", h.Demo)
}

// ProcessQuery handles POST /api/query.
func (h *Handler) ProcessQuery(c echo.Context) error {
	var req QueryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"detail": "invalid request body"})
	}
	result, err := h.svc.ProcessQuery(c.Request().Context(), req.Text)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"detail": err.Error()})
	}
	return c.JSON(http.StatusOK, result)
}

// GetSuggestions handles GET /api/suggestions?prefix=...
func (h *Handler) GetSuggestions(c echo.Context) error {
	prefix := c.QueryParam("prefix")
	return c.JSON(http.StatusOK, h.svc.Suggestions(c.Request().Context(), prefix))
}

// GetExamples handles GET /api/examples.
func (h *Handler) GetExamples(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.Examples(c.Request().Context()))
}

// GetConditions handles GET /api/conditions.
func (h *Handler) GetConditions(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.Conditions(c.Request().Context()))
}

// Demo handles GET /api/demo: runs a fixed sample query end to end.
func (h *Handler) Demo(c echo.Context) error {
	const sample = "Show me all female diabetic patients over 50"
	result, err := h.svc.ProcessQuery(c.Request().Context(), sample)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"detail": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"demo_query":     sample,
		"explanation":    result.Explanation,
		"parameters":     result.ExtractedParameters,
		"sample_results": result.TotalResults,
		"statistics":     result.Statistics,
	})
}
