package api

import (
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/mahmoudbymassen/station-managment/config"
	"github.com/mahmoudbymassen/station-managment/internal/auth"
	"github.com/mahmoudbymassen/station-managment/internal/mw"
	"github.com/mahmoudbymassen/station-managment/internal/scope"
	"github.com/mahmoudbymassen/station-managment/internal/store"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(cfg *config.Config, s store.Store, webpushOptions *webpush.Options) *gin.Engine {
	r := gin.Default()

	secret := []byte(cfg.Auth.JWTSecret)
	handler := NewHandler(s, scope.New(s.DB()), secret, cfg.Auth.TokenTTL, webpushOptions)

	rateLimit := cfg.Server.RateLimitPerSec
	if rateLimit <= 0 {
		rateLimit = 10
	}
	rateLimiter := mw.RateLimiter(rate.Limit(rateLimit), 5)

	cacheTTL := 5 * time.Minute
	if cfg.Server.CacheTTLSeconds > 0 {
		cacheTTL = time.Duration(cfg.Server.CacheTTLSeconds) * time.Second
	}
	cacheStore := cache.New(cacheTTL, 2*cacheTTL)
	caching := mw.Cache(cacheStore, cacheTTL)

	api := r.Group("/api")
	api.Use(rateLimiter)

	// Public routes
	api.POST("/auth/login", handler.Login)
	api.GET("/fuel-prices", caching, handler.ListFuelPrices)
	api.GET("/subscriptions", handler.GetSubscription)
	api.PUT("/subscriptions", handler.PutSubscription)
	api.DELETE("/subscriptions", handler.DeleteSubscription)
	api.GET("/vapid_public_key", handler.GetVAPIDPublicKey)

	// Everything below requires a valid token.
	authed := api.Group("")
	authed.Use(auth.Middleware(secret))
	{
		authed.POST("/auth/managers", handler.CreateManager)
		authed.GET("/auth/managers", handler.ListManagers)

		authed.GET("/stations", handler.ListStations)
		authed.POST("/stations", handler.CreateStation)
		authed.PUT("/stations/:id", handler.UpdateStation)
		authed.DELETE("/stations/:id", handler.DeleteStation)

		authed.GET("/employees", handler.ListEmployees)
		authed.POST("/employees", handler.CreateEmployee)
		authed.PUT("/employees/:id", handler.UpdateEmployee)
		authed.DELETE("/employees/:id", handler.DeleteEmployee)

		authed.GET("/tanks", handler.ListTanks)
		authed.POST("/tanks", handler.CreateTank)
		authed.PUT("/tanks/:id", handler.UpdateTank)
		authed.DELETE("/tanks/:id", handler.DeleteTank)

		authed.GET("/pumps", handler.ListPumps)
		authed.POST("/pumps", handler.CreatePump)
		authed.PUT("/pumps/:id", handler.UpdatePump)
		authed.DELETE("/pumps/:id", handler.DeletePump)

		authed.GET("/suppliers", handler.ListSuppliers)
		authed.POST("/suppliers", handler.CreateSupplier)
		authed.PUT("/suppliers/:id", handler.UpdateSupplier)
		authed.DELETE("/suppliers/:id", handler.DeleteSupplier)

		authed.GET("/products", handler.ListProducts)
		authed.POST("/products", handler.CreateProduct)
		authed.PUT("/products/:id", handler.UpdateProduct)
		authed.DELETE("/products/:id", handler.DeleteProduct)

		authed.GET("/sales", handler.ListSales)
		authed.POST("/sales", handler.CreateSale)
		authed.PUT("/sales/:id", handler.UpdateSale)
		authed.DELETE("/sales/:id", handler.DeleteSale)

		authed.GET("/services", handler.ListServices)
		authed.GET("/services/summary", handler.ServiceSummary)
		authed.POST("/services", handler.CreateService)
		authed.PUT("/services/:id", handler.UpdateService)
		authed.DELETE("/services/:id", handler.DeleteService)

		authed.GET("/stock", handler.ListStock)
		authed.POST("/stock", handler.UpdateStock)
		authed.GET("/stock/deliveries", handler.ListDeliveries)
		authed.POST("/stock/deliveries", handler.ScheduleDelivery)
		authed.GET("/stock/history", handler.ListStockHistory)

		authed.GET("/attendance", handler.ListAttendance)
		authed.POST("/attendance/checkin", handler.CheckIn)
		authed.POST("/attendance/checkout", handler.CheckOut)
		authed.DELETE("/attendance/:id", handler.DeleteAttendance)

		authed.POST("/fuel-prices", handler.SetFuelPrice)
	}

	return r
}
