package http

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"shipping/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

const (
	defaultOrphanMinAge = 30 * time.Minute
	defaultOrphanLimit  = 100
)

// ListBoxes handles GET /api/v1/boxes?inStock=true.
func (s *Server) ListBoxes(c echo.Context) error {
	inStock := false
	if v := c.QueryParam("inStock"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: inStock: %v", errBadRequestBody, err)
		}
		inStock = b
	}

	boxes, err := s.h.ListBoxes.Handle(c.Request().Context(), queries.NewListBoxesQuery(inStock))
	if err != nil {
		return err
	}

	response := make([]Box, len(boxes))
	for i, b := range boxes {
		response[i] = toBox(b)
	}
	return c.JSON(http.StatusOK, response)
}

// GetOrphanedOrders handles GET /api/v1/journal/orphaned?minAge=30m&limit=100.
func (s *Server) GetOrphanedOrders(c echo.Context) error {
	minAge := defaultOrphanMinAge
	if v := c.QueryParam("minAge"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: minAge: %v", errBadRequestBody, err)
		}
		minAge = d
	}
	limit := defaultOrphanLimit
	if v := c.QueryParam("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: limit: %v", errBadRequestBody, err)
		}
		limit = n
	}

	q, err := queries.NewGetOrphanedOrdersQuery(minAge, limit)
	if err != nil {
		return err
	}
	orders, err := s.h.GetOrphanedOrders.Handle(c.Request().Context(), q)
	if err != nil {
		return err
	}

	response := make([]OrphanedOrder, len(orders))
	for i, o := range orders {
		response[i] = toOrphanedOrder(o)
	}
	return c.JSON(http.StatusOK, response)
}
