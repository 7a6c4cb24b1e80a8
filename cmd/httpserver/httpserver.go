// Package httpserver manages server creation and api routing.
package httpserver

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/go-petr/cashflow-bank/internal/accountdelivery"
	"github.com/go-petr/cashflow-bank/internal/accountrepo"
	"github.com/go-petr/cashflow-bank/internal/accountservice"
	"github.com/go-petr/cashflow-bank/internal/cashflowdelivery"
	"github.com/go-petr/cashflow-bank/internal/cashflowrepo"
	"github.com/go-petr/cashflow-bank/internal/cashflowservice"
	"github.com/go-petr/cashflow-bank/internal/dashboarddelivery"
	"github.com/go-petr/cashflow-bank/internal/dashboardrepo"
	"github.com/go-petr/cashflow-bank/internal/dashboardservice"
	"github.com/go-petr/cashflow-bank/internal/middleware"
	"github.com/go-petr/cashflow-bank/pkg/configpkg"
	"github.com/go-petr/cashflow-bank/pkg/currencypkg"
)

// Server holds db connection, handlers router and configuration.
type Server struct {
	DB     *sql.DB
	Engine *gin.Engine
	Config configpkg.Config
}

// ServeHTTP implements the http.Handler interface for the Server type.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

// New creates Server type with instantiated domains and routes.
func New(conn *sql.DB, logger zerolog.Logger, config configpkg.Config) (*Server, error) {
	accountRepo := accountrepo.NewRepoPGS(conn)
	cashflowRepo := cashflowrepo.NewRepoPGS(conn)
	dashboardRepo := dashboardrepo.NewRepoPGS(conn)

	accountService := accountservice.New(accountRepo)
	cashflowService := cashflowservice.New(cashflowRepo)
	dashboardService := dashboardservice.New(dashboardRepo)

	accountHandler := accountdelivery.NewHandler(accountService)
	cashflowHandler := cashflowdelivery.NewHandler(cashflowService)
	dashboardHandler := dashboarddelivery.NewHandler(dashboardService)

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gin.Recovery())

	engine.POST("/accounts", accountHandler.Create)
	engine.GET("/accounts", accountHandler.List)
	engine.GET("/accounts/:id", accountHandler.Get)
	engine.PATCH("/accounts/:id", accountHandler.Update)
	engine.DELETE("/accounts/:id", accountHandler.Delete)

	engine.POST("/cashflows", cashflowHandler.Create)
	engine.GET("/cashflows", cashflowHandler.List)
	engine.GET("/cashflows/:id", cashflowHandler.Get)
	engine.PATCH("/cashflows/:id", cashflowHandler.Update)
	engine.DELETE("/cashflows/:id", cashflowHandler.Delete)

	engine.GET("/dashboard", dashboardHandler.Summary)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := v.RegisterValidation("currency", currencypkg.ValidCurrency); err != nil {
			return nil, errors.New("cannot register currency validator")
		}
		if err := v.RegisterValidation("accounttype", accountdelivery.ValidAccountType); err != nil {
			return nil, errors.New("cannot register account type validator")
		}
		if err := v.RegisterValidation("txntype", cashflowdelivery.ValidTxnType); err != nil {
			return nil, errors.New("cannot register transaction type validator")
		}
	}

	server := &Server{
		DB:     conn,
		Engine: engine,
		Config: config,
	}

	return server, nil
}
