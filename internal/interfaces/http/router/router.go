package router

import (
	"regexp"

	"github.com/aswinkumar1126/JaiGuru-sub001/internal/infrastructure/auth"
	"github.com/aswinkumar1126/JaiGuru-sub001/internal/interfaces/http/handler"
	"github.com/aswinkumar1126/JaiGuru-sub001/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Config holds the router's collaborators
type Config struct {
	AppName    string
	AppVersion string
	JWTService *auth.JWTService
	Cart       *handler.CartHandler
	Order      *handler.OrderHandler
	Logger     *zap.Logger
}

var tagNoPattern = regexp.MustCompile(`^[A-Za-z0-9-]+$`)

// registerValidations adds custom binding validations to gin's validator
func registerValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("tagno", func(fl validator.FieldLevel) bool {
			return tagNoPattern.MatchString(fl.Field().String())
		})
	}
}

// New builds the gin engine with all middleware and routes wired
func New(cfg Config) *gin.Engine {
	registerValidations()

	engine := gin.New()
	engine.Use(
		middleware.RequestID(),
		middleware.AccessLog(cfg.Logger.Named("http")),
		middleware.Recovery(cfg.Logger.Named("http")),
	)

	system := handler.NewSystemHandler(cfg.AppName, cfg.AppVersion)
	engine.GET("/health", system.Health)

	api := engine.Group("/api/v1")
	api.Use(middleware.JWTAuth(cfg.JWTService, cfg.Logger.Named("auth")))

	cart := api.Group("/cart")
	{
		cart.GET("", cfg.Cart.GetView)
		cart.POST("/reload", cfg.Cart.Reload)
		cart.POST("/items", cfg.Cart.AddItem)
		cart.DELETE("/items/:lineId", cfg.Cart.RemoveItem)
		cart.POST("/selection/toggle", cfg.Cart.ToggleSelection)
		cart.POST("/selection/select-all", cfg.Cart.SelectAll)
	}

	api.POST("/products/:itemId/retry", cfg.Cart.RetryProduct)

	orders := api.Group("/orders")
	{
		orders.GET("/preview", cfg.Order.Preview)
		orders.POST("", cfg.Order.Place)
	}

	return engine
}
