// Package httpserver manages server creation and api routing.
package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/finvault/bookkeeper/internal/accountdelivery"
	"github.com/finvault/bookkeeper/internal/accountservice"
	"github.com/finvault/bookkeeper/internal/ledger"
	"github.com/finvault/bookkeeper/internal/middleware"
	"github.com/finvault/bookkeeper/internal/sessiondelivery"
	"github.com/finvault/bookkeeper/internal/sessionrepo"
	"github.com/finvault/bookkeeper/internal/sessionservice"
	"github.com/finvault/bookkeeper/internal/transferdelivery"
	"github.com/finvault/bookkeeper/internal/transferservice"
	"github.com/finvault/bookkeeper/internal/userdelivery"
	"github.com/finvault/bookkeeper/internal/userrepo"
	"github.com/finvault/bookkeeper/internal/userservice"
	"github.com/finvault/bookkeeper/pkg/configpkg"
	"github.com/finvault/bookkeeper/pkg/tokenpkg"
)

// Server holds the ledger, handlers router and configuration.
type Server struct {
	Ledger *ledger.Ledger
	Engine *gin.Engine
	Config configpkg.Config
}

// ServeHTTP implements the http.Handler interface for the Server type.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

// New creates Server type with instantiated domains and routes.
func New(logger zerolog.Logger, config configpkg.Config) (*Server, error) {
	accountLedger := ledger.New()
	userRepo := userrepo.NewRepoMem()
	sessionRepo := sessionrepo.NewRepoMem()

	tokenMaker, err := tokenpkg.NewPasetoMaker(config.TokenSymmetricKey)
	if err != nil {
		return nil, errors.New("cannot create token maker")
	}

	userService := userservice.New(userRepo)
	accountService := accountservice.New(accountLedger)
	transferService := transferservice.New(accountLedger)

	sessionService, err := sessionservice.New(sessionRepo, config, tokenMaker)
	if err != nil {
		return nil, errors.New("cannot initialize session service")
	}

	userHandler := userdelivery.NewHandler(userService, sessionService)
	accountHandler := accountdelivery.NewHandler(accountService)
	transferHandler := transferdelivery.NewHandler(transferService)
	sessionHandler := sessiondelivery.NewHandler(sessionService)

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gin.Recovery())

	engine.POST("/users", userHandler.Create)
	engine.POST("/users/login", userHandler.Login)
	engine.POST("/sessions", sessionHandler.RenewAccessToken)

	authRoutes := engine.Group("/").Use(middleware.AuthMiddleware(sessionService.TokenMaker))

	authRoutes.POST("/accounts", accountHandler.Create)
	authRoutes.GET("/accounts", accountHandler.List)
	authRoutes.GET("/accounts/:id", accountHandler.Get)
	authRoutes.GET("/accounts/:id/balance", accountHandler.Balance)
	authRoutes.GET("/accounts/:id/transactions", accountHandler.ListTransactions)
	authRoutes.POST("/accounts/:id/deposit", accountHandler.Deposit)
	authRoutes.POST("/accounts/:id/withdraw", accountHandler.Withdraw)

	authRoutes.POST("/transfers", transferHandler.Create)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := v.RegisterValidation("accountid", accountdelivery.ValidAccountID); err != nil {
			return nil, errors.New("cannot register accountid validator")
		}

		if err := v.RegisterValidation("amount", accountdelivery.ValidAmount); err != nil {
			return nil, errors.New("cannot register amount validator")
		}

		if err := v.RegisterValidation("initialbalance", accountdelivery.ValidInitialBalance); err != nil {
			return nil, errors.New("cannot register initialbalance validator")
		}
	}

	server := &Server{
		Ledger: accountLedger,
		Engine: engine,
		Config: config,
	}

	return server, nil
}
