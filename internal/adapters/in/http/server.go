// Package http exposes the wizard to the store UI over a JSON API served by echo.
package http

import (
	"context"
	"log/slog"
	"net/http"

	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/application/usecases/queries"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/wizard"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/routers"
	"github.com/labstack/echo/v4"
)

// Use cases the server drives. The application handlers satisfy them.
type (
	SessionStarter interface {
		Handle(ctx context.Context, command commands.StartSessionCommand) (kernel.UUID, error)
	}
	DraftUpdater interface {
		Handle(ctx context.Context, command commands.UpdateDraftCommand) error
	}
	StepAdvancer interface {
		Handle(ctx context.Context, command commands.AdvanceStepCommand) (commands.AdvanceStepResult, error)
	}
	StepReverter interface {
		Handle(ctx context.Context, command commands.GoBackCommand) (wizard.Step, error)
	}
	RateRefetcher interface {
		Handle(ctx context.Context, command commands.RefetchRatesCommand) error
	}
	RateSelector interface {
		Handle(ctx context.Context, command commands.SelectRateCommand) error
	}
	SessionAbandoner interface {
		Handle(ctx context.Context, command commands.AbandonSessionCommand) error
	}
	SessionReader interface {
		Handle(ctx context.Context, query queries.GetSessionQuery) (queries.GetSessionQueryResponse, error)
	}
	RatesReader interface {
		Handle(ctx context.Context, query queries.GetRatesQuery) (queries.GetRatesQueryResponse, error)
	}
	BoxLister interface {
		Handle(ctx context.Context, query queries.ListBoxesQuery) ([]queries.ListBoxesQueryResponse, error)
	}
	OrphanedOrdersReader interface {
		Handle(ctx context.Context, query queries.GetOrphanedOrdersQuery) ([]queries.GetOrphanedOrdersQueryResponse, error)
	}
)

// Handlers groups the use cases served over HTTP.
type Handlers struct {
	StartSession      SessionStarter
	UpdateDraft       DraftUpdater
	AdvanceStep       StepAdvancer
	GoBack            StepReverter
	RefetchRates      RateRefetcher
	SelectRate        RateSelector
	AbandonSession    SessionAbandoner
	GetSession        SessionReader
	GetRates          RatesReader
	ListBoxes         BoxLister
	GetOrphanedOrders OrphanedOrdersReader
}

// Server handles HTTP requests of the wizard UI and translates them into
// commands and queries. Requests are checked against the embedded OpenAPI
// description first.
type Server struct {
	h       Handlers
	doc     *openapi3.T
	router  routers.Router
	swagger echo.HandlerFunc
	logger  *slog.Logger
}

func NewServer(h Handlers, logger *slog.Logger) (*Server, error) {
	doc, err := LoadOpenAPI()
	if err != nil {
		return nil, err
	}
	router, err := newRouter(doc)
	if err != nil {
		return nil, err
	}

	s := &Server{h: h, doc: doc, router: router, logger: logger.With("component", "http")}
	if s.swagger, err = s.swaggerHandler(); err != nil {
		return nil, err
	}
	return s, nil
}

// Register mounts every route on e.
func (s *Server) Register(e *echo.Echo) {
	e.HTTPErrorHandler = s.errorHandler(e.DefaultHTTPErrorHandler)

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	e.GET("/swagger/*", s.swagger)

	v1 := e.Group("/api/v1", s.validateRequest)

	sessions := v1.Group("/wizard/sessions")
	sessions.POST("", s.StartSession)
	sessions.GET("/:id", s.GetSession)
	sessions.DELETE("/:id", s.AbandonSession)
	sessions.PUT("/:id/draft", s.UpdateDraft)
	sessions.POST("/:id/next", s.Next)
	sessions.POST("/:id/back", s.Back)
	sessions.GET("/:id/rates", s.GetRates)
	sessions.POST("/:id/rates/refetch", s.RefetchRates)
	sessions.PUT("/:id/rate", s.SelectRate)
	sessions.POST("/:id/fulfill", s.Fulfill)
	sessions.POST("/:id/submit", s.Submit)

	v1.GET("/boxes", s.ListBoxes)
	v1.GET("/journal/orphaned", s.GetOrphanedOrders)
}
