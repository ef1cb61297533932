package http

import (
	"fmt"
	"net/http"
	"strings"

	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/application/usecases/queries"
	"shipping/internal/core/domain/model/draft"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/operator"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/core/domain/model/wizard"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

const (
	headerUserID  = "X-User-ID"
	headerStoreID = "X-Store-ID"
)

// StartSession handles POST /api/v1/wizard/sessions. A body with orderId
// opens that order for editing; otherwise a new order of orderType (HQ when
// empty) is started.
func (s *Server) StartSession(c echo.Context) error {
	var req StartSessionRequest
	if c.Request().ContentLength != 0 {
		if err := c.Bind(&req); err != nil {
			return fmt.Errorf("%w: %v", errBadRequestBody, err)
		}
	}

	var (
		cmd commands.StartSessionCommand
		err error
	)
	if strings.TrimSpace(req.OrderID) != "" {
		cmd, err = commands.NewEditSessionCommand(req.OrderID)
	} else {
		orderType := draft.OrderType(strings.ToUpper(strings.TrimSpace(req.OrderType)))
		if orderType == "" {
			orderType = draft.HQ
		}
		cmd, err = commands.NewStartSessionCommand(orderType)
	}
	if err != nil {
		return err
	}

	id, err := s.h.StartSession.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, StartSessionResponse{SessionID: id.String()})
}

// GetSession handles GET /api/v1/wizard/sessions/:id. Pending
// notifications are handed out once.
func (s *Server) GetSession(c echo.Context) error {
	snapshot, err := s.snapshot(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSession(snapshot))
}

func (s *Server) UpdateDraft(c echo.Context) error {
	id, err := sessionID(c)
	if err != nil {
		return err
	}
	var d draft.Draft
	if err := c.Bind(&d); err != nil {
		return fmt.Errorf("%w: %v", errBadRequestBody, err)
	}
	d.OrderType = draft.OrderType(strings.ToUpper(strings.TrimSpace(string(d.OrderType))))

	cmd, err := commands.NewUpdateDraftCommand(id, d)
	if err != nil {
		return err
	}
	if err := s.h.UpdateDraft.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Next handles POST /api/v1/wizard/sessions/:id/next.
func (s *Server) Next(c echo.Context) error {
	id, err := sessionID(c)
	if err != nil {
		return err
	}
	cmd, err := commands.NewAdvanceStepCommand(id, wizard.EventForward, actingUser(c))
	if err != nil {
		return err
	}
	return s.transition(c, cmd)
}

// Fulfill handles POST /api/v1/wizard/sessions/:id/fulfill, the last step
// of an HQ order.
func (s *Server) Fulfill(c echo.Context) error {
	return s.complete(c, wizard.StepRate)
}

// Submit handles POST /api/v1/wizard/sessions/:id/submit, the last step of
// a partner order.
func (s *Server) Submit(c echo.Context) error {
	return s.complete(c, wizard.StepPricing)
}

func (s *Server) complete(c echo.Context, from wizard.Step) error {
	id, err := sessionID(c)
	if err != nil {
		return err
	}
	cmd, err := commands.NewCompleteStepCommand(id, from, actingUser(c))
	if err != nil {
		return err
	}
	return s.transition(c, cmd)
}

func (s *Server) transition(c echo.Context, cmd commands.AdvanceStepCommand) error {
	res, err := s.h.AdvanceStep.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	snapshot, err := s.snapshot(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTransition(res, snapshot))
}

func (s *Server) Back(c echo.Context) error {
	id, err := sessionID(c)
	if err != nil {
		return err
	}
	cmd, err := commands.NewGoBackCommand(id)
	if err != nil {
		return err
	}
	step, err := s.h.GoBack.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, StepResponse{Step: string(step)})
}

// GetRates handles GET /api/v1/wizard/sessions/:id/rates. The UI polls it
// while isLoading is true.
func (s *Server) GetRates(c echo.Context) error {
	id, err := sessionID(c)
	if err != nil {
		return err
	}
	q, err := queries.NewGetRatesQuery(id)
	if err != nil {
		return err
	}
	res, err := s.h.GetRates.Handle(c.Request().Context(), q)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, RatesResponse{
		IsLoading:  res.Loading,
		Progress:   res.Progress,
		Error:      res.Error,
		ShipmentID: res.ShipmentID,
		Rates:      toRates(res.Rates),
	})
}

func (s *Server) RefetchRates(c echo.Context) error {
	id, err := sessionID(c)
	if err != nil {
		return err
	}
	cmd, err := commands.NewRefetchRatesCommand(id)
	if err != nil {
		return err
	}
	if err := s.h.RefetchRates.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusAccepted)
}

func (s *Server) SelectRate(c echo.Context) error {
	id, err := sessionID(c)
	if err != nil {
		return err
	}
	var req SelectRateRequest
	if err := c.Bind(&req); err != nil {
		return fmt.Errorf("%w: %v", errBadRequestBody, err)
	}
	cmd, err := commands.NewSelectRateCommand(id, req.RateID, shipment.Override{
		Price:    req.OverridePrice,
		Currency: req.OverrideCurrency,
	})
	if err != nil {
		return err
	}
	if err := s.h.SelectRate.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) AbandonSession(c echo.Context) error {
	id, err := sessionID(c)
	if err != nil {
		return err
	}
	cmd, err := commands.NewAbandonSessionCommand(id)
	if err != nil {
		return err
	}
	if err := s.h.AbandonSession.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) snapshot(c echo.Context) (queries.GetSessionQueryResponse, error) {
	id, err := sessionID(c)
	if err != nil {
		return queries.GetSessionQueryResponse{}, err
	}
	q, err := queries.NewGetSessionQuery(id)
	if err != nil {
		return queries.GetSessionQueryResponse{}, err
	}
	return s.h.GetSession.Handle(c.Request().Context(), q)
}

func sessionID(c echo.Context) (kernel.UUID, error) {
	var raw string
	err := runtime.BindStyledParameterWithOptions("simple", "id", c.Param("id"), &raw, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Required:      true,
	})
	if err != nil {
		return kernel.UUID{}, fmt.Errorf("%w: session id: %v", errBadRequestBody, err)
	}
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return kernel.UUID{}, fmt.Errorf("%w: session id: %v", errBadRequestBody, err)
	}
	return id, nil
}

// actingUser reads the identity set by the upstream gateway. Missing
// headers give an unidentified user.
func actingUser(c echo.Context) operator.User {
	return operator.User{
		ID:      strings.TrimSpace(c.Request().Header.Get(headerUserID)),
		StoreID: strings.TrimSpace(c.Request().Header.Get(headerStoreID)),
	}
}
