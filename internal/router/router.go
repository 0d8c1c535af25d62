package router

import (
	"net/http"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"eldenbuilds/internal/auth"
	"eldenbuilds/internal/config"
	"eldenbuilds/internal/handler"
)

const requestTimeout = 10 * time.Second

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	sessionStore auth.SessionStoreInterface,
	authHandler *handler.AuthHandler,
	buildHandler *handler.BuildHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))
	e.Use(middleware.ContextTimeout(requestTimeout))

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Front-end assets
	e.Static("/css", filepath.Join(cfg.WebRoot, "css"))
	e.Static("/imagens", filepath.Join(cfg.WebRoot, "imagens"))

	api := e.Group("/api")

	// Public routes
	api.POST("/register", authHandler.Register)
	api.POST("/login", authHandler.Login)
	api.GET("/builds", buildHandler.List)
	api.GET("/builds/:id", buildHandler.Get)

	// Secured routes (require JWT authentication)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(cfg.JWTSecret),
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
	}), auth.RejectRevokedSessions(sessionStore))

	secured.POST("/logout", authHandler.Logout)
	secured.GET("/me", authHandler.Me)
	secured.PUT("/profile", authHandler.UpdateProfile)

	secured.POST("/builds", buildHandler.Create)
	secured.PUT("/builds/:id", buildHandler.Update)
	secured.DELETE("/builds/:id", buildHandler.Delete)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
