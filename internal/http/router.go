package api

import (
	"database/sql"
	stdhttp "net/http"

	"github.com/gin-gonic/gin"

	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/cache"
	intconfig "github.com/tebarek94/ethiotourandtravelagency-sub000/internal/config"
	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/domain"
	h "github.com/tebarek94/ethiotourandtravelagency-sub000/internal/http/handlers"
	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/http/middleware"
	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/http/response"
	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/logger"
	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/metrics"
	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/services"
	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/storage"
)

// Deps are the shared resources the HTTP layer is built from.
type Deps struct {
	Env     intconfig.Env
	DB      *sql.DB
	Store   storage.Store
	Cache   *cache.RedisCache
	Metrics *metrics.Metrics
}

func NewRouter(d Deps) *gin.Engine {
	authSvc := services.AuthService{DB: d.DB, Secret: []byte(d.Env.JWTSecret), TTL: d.Env.JWTTTL}
	bookingSvc := services.BookingService{DB: d.DB, Store: d.Store, Cache: d.Cache, Metrics: d.Metrics}

	system := h.SystemHandler{DB: d.DB}
	auth := h.AuthHandler{Auth: authSvc}
	catalog := h.CatalogHandler{Catalog: services.CatalogService{DB: d.DB}}
	bookings := h.BookingHandler{
		Bookings:  bookingSvc,
		Documents: services.DocumentService{DB: d.DB, Store: d.Store},
		Invoices:  services.InvoiceService{DB: d.DB},
		Store:     d.Store,
	}
	logistics := h.LogisticsHandler{Logistics: services.LogisticsService{DB: d.DB}}
	dashboard := h.DashboardHandler{Dashboard: services.DashboardService{DB: d.DB, Cache: d.Cache, TTL: d.Env.DashboardCacheTTL}}

	r := gin.New()
	r.MaxMultipartMemory = 32 << 20
	r.Use(middleware.RequestID(), middleware.Logger(), middleware.Recovery(), middleware.CORS(d.Env.CORSAllowedOrigins))
	if d.Metrics != nil {
		r.Use(middleware.Metrics(d.Metrics))
		r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
	}

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Warn("failed to set trusted proxies", "error", err)
	}

	r.NoRoute(func(c *gin.Context) {
		response.Fail(c, stdhttp.StatusNotFound, "route not found")
	})

	authenticated := middleware.Authenticate(authSvc)
	optional := middleware.AuthOptional(authSvc)
	admin := middleware.RequireRoles(domain.RoleAdmin)
	customer := middleware.RequireRoles(domain.RoleUser, domain.RoleAdmin)
	uploads := middleware.Uploads(d.Store, middleware.UploadLimits{
		MaxFiles:    d.Env.UploadMaxFiles,
		MaxFileSize: d.Env.UploadMaxFileSize,
	})

	api := r.Group("/api")
	{
		api.GET("/health", system.Health)
		api.GET("/db-check", system.DBCheck)

		// Auth
		authGroup := api.Group("/auth")
		limited := middleware.RateLimit(d.Env.AuthRatePerMin)
		authGroup.POST("/register", limited, auth.Register)
		authGroup.POST("/login", limited, auth.Login)
		authGroup.GET("/me", authenticated, auth.Me)

		// Catalog
		packages := api.Group("/packages")
		packages.GET("", optional, catalog.ListPackages)
		packages.GET("/:id", optional, catalog.GetPackage)
		packages.POST("", authenticated, admin, catalog.CreatePackage)
		packages.PUT("/:id", authenticated, admin, catalog.UpdatePackage)
		packages.DELETE("/:id", authenticated, admin, catalog.DeletePackage)

		hotels := api.Group("/hotels")
		hotels.GET("", catalog.ListHotels)
		hotels.GET("/:id", catalog.GetHotel)
		hotels.POST("", authenticated, admin, catalog.CreateHotel)
		hotels.PUT("/:id", authenticated, admin, catalog.UpdateHotel)
		hotels.DELETE("/:id", authenticated, admin, catalog.DeleteHotel)

		// Bookings
		b := api.Group("/bookings", authenticated)
		b.POST("", customer, uploads, bookings.Create)
		b.GET("", bookings.List)
		b.GET("/:id", bookings.Get)
		b.PUT("/:id", bookings.Update)
		b.DELETE("/:id", bookings.Delete)
		b.GET("/:id/documents", bookings.ListDocuments)
		b.POST("/:id/documents", customer, uploads, bookings.UploadDocuments)
		b.GET("/:id/invoice", bookings.Invoice)
		b.GET("/documents/:documentId/download", bookings.DownloadDocument)
		b.DELETE("/documents/:documentId", bookings.DeleteDocument)

		// Logistics attached to a booking
		b.GET("/:id/flights", logistics.ListFlights)
		b.POST("/:id/flights", admin, logistics.CreateFlight)
		b.GET("/:id/hotel-stays", logistics.ListHotelStays)
		b.POST("/:id/hotel-stays", admin, logistics.CreateHotelStay)
		b.GET("/:id/transfers", logistics.ListTransfers)
		b.POST("/:id/transfers", admin, logistics.CreateTransfer)

		flights := api.Group("/flights", authenticated, admin)
		flights.PUT("/:id", logistics.UpdateFlight)
		flights.DELETE("/:id", logistics.DeleteFlight)

		stays := api.Group("/hotel-stays", authenticated, admin)
		stays.PUT("/:id", logistics.UpdateHotelStay)
		stays.DELETE("/:id", logistics.DeleteHotelStay)

		transfers := api.Group("/transfers", authenticated, admin)
		transfers.PUT("/:id", logistics.UpdateTransfer)
		transfers.DELETE("/:id", logistics.DeleteTransfer)

		// Admin
		adminGroup := api.Group("/admin", authenticated, admin)
		adminGroup.GET("/dashboard", dashboard.Stats)
		adminGroup.GET("/users", auth.ListUsers)
		adminGroup.PUT("/users/:id/role", auth.UpdateRole)
	}

	return r
}
