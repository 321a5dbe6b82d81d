package routes

import (
	"html/template"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"servicepro-server/config"
	"servicepro-server/middleware"
	"servicepro-server/services"
)

// App carries every dependency the handlers need.
type App struct {
	cfg        *config.Config
	logger     *zap.Logger
	auth       *services.AuthService
	catalog    *services.CatalogService
	bookings   *services.BookingService
	commission *services.CommissionService
	feedback   *services.FeedbackService
	workHours  *services.WorkHoursService
	dashboard  *services.DashboardService
	store      sessions.Store
}

// Deps groups the constructor arguments for App.
type Deps struct {
	Config     *config.Config
	Logger     *zap.Logger
	Auth       *services.AuthService
	Catalog    *services.CatalogService
	Bookings   *services.BookingService
	Commission *services.CommissionService
	Feedback   *services.FeedbackService
	WorkHours  *services.WorkHoursService
	Dashboard  *services.DashboardService
	Store      sessions.Store
}

func NewApp(d Deps) *App {
	return &App{
		cfg:        d.Config,
		logger:     d.Logger,
		auth:       d.Auth,
		catalog:    d.Catalog,
		bookings:   d.Bookings,
		commission: d.Commission,
		feedback:   d.Feedback,
		workHours:  d.WorkHours,
		dashboard:  d.Dashboard,
		store:      d.Store,
	}
}

// Register wires both surfaces onto the router: the JSON API under /api and
// the server-rendered pages at the root.
func (a *App) Register(router *gin.Engine, db *gorm.DB) {
	authn := middleware.NewAuthenticator(db, a.cfg.JWT.Secret, a.store, a.cfg.Session.Name)

	router.SetFuncMap(template.FuncMap{
		"money": func(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) },
	})
	router.LoadHTMLGlob("templates/*.html")

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	api.Use(middleware.CORS(a.cfg.CORS.AllowedOrigin))
	{
		authGroup := api.Group("/auth")
		authGroup.Use(middleware.AuthRateLimit())
		{
			authGroup.POST("/register", a.apiRegister)
			authGroup.POST("/login", a.apiLogin)
			authGroup.POST("/logout", a.apiLogout)
			authGroup.POST("/password-reset-request", a.apiPasswordResetRequest)
			authGroup.POST("/password-reset", a.apiPasswordReset)
			authGroup.GET("/me", authn.Required(), a.apiMe)
			authGroup.PUT("/profile", authn.Required(), a.apiUpdateProfile)
		}

		api.GET("/service-groups", a.apiListServiceGroups)
		api.GET("/service-groups/:id", a.apiGetServiceGroup)
		api.GET("/services", authn.Optional(), a.apiListServices)
		api.GET("/services/:id", authn.Optional(), a.apiGetService)

		// Customer-facing aliases at the API root; the SPA uses these.
		bookings := api.Group("/bookings", authn.Required())
		{
			bookings.GET("", a.apiListUserBookings)
			bookings.POST("", a.apiCreateBooking)
			bookings.GET("/:id", a.apiGetBooking)
		}
		api.POST("/feedback", authn.Required(), a.apiSubmitFeedback)

		user := api.Group("/user", authn.Required())
		{
			user.GET("/dashboard", a.apiUserDashboard)
			user.GET("/bookings", a.apiListUserBookings)
			user.POST("/bookings", a.apiCreateBooking)
			user.GET("/bookings/:id", a.apiGetBooking)
			user.POST("/feedback", a.apiSubmitFeedback)
		}

		handyman := api.Group("/handyman", authn.Required())
		{
			handyman.GET("/dashboard", a.apiHandymanDashboard)
			handyman.GET("/services", a.apiListOwnServices)
			handyman.POST("/services", a.apiCreateService)
			handyman.PUT("/services/:id", a.apiUpdateService)
			handyman.DELETE("/services/:id", a.apiDeleteService)
			handyman.GET("/bookings", a.apiListHandymanBookings)
			handyman.PUT("/bookings/:id/status", a.apiUpdateBookingStatus)
			handyman.GET("/feedback", a.apiHandymanFeedback)
			handyman.GET("/work-hours", a.apiListWorkHours)
			handyman.POST("/work-hours", a.apiAddWorkHours)
			handyman.DELETE("/work-hours/:id", a.apiDeleteWorkHours)
		}

		admin := api.Group("/admin", authn.Required())
		{
			admin.GET("/dashboard", a.apiAdminDashboard)
			admin.GET("/users", a.apiListUsers)
			admin.DELETE("/users/:id", a.apiDeleteUser)
			admin.POST("/users/:id/approve", a.apiApproveHandyman)
			admin.GET("/bookings", a.apiListAllBookings)
			admin.POST("/bookings/:id/approve", a.apiApproveBooking)
			admin.POST("/bookings/:id/decline", a.apiDeclineBooking)
			admin.POST("/bookings/:id/assign", a.apiAssignHandyman)
			admin.GET("/pending-services", a.apiPendingServices)
			admin.POST("/approve-service/:id", a.apiApproveService)
			admin.DELETE("/reject-service/:id", a.apiRejectService)
			admin.POST("/services", a.apiAdminCreateService)
			admin.POST("/service-groups", a.apiCreateServiceGroup)
			admin.PUT("/service-groups/:id", a.apiUpdateServiceGroup)
			admin.DELETE("/service-groups/:id", a.apiDeleteServiceGroup)
			admin.GET("/commissions", a.apiListCommissions)
			admin.POST("/commissions/:id/mark-paid", a.apiMarkCommissionPaid)
		}
	}

	a.registerPages(router, authn)
}

func parseUint(s string) (uint, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	return uint(v), err
}
