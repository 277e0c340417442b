package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"server/internal/domain"
	"server/internal/http/handlers"
	"server/internal/infra"
	"server/internal/middleware"
)

// Options carries the router's injected collaborators.
type Options struct {
	App      *handlers.App
	Verifier middleware.TokenVerifier
	Logger   infra.Logger
	Config   *infra.Config
	Country  middleware.CountryLookup
}

// NewRouter builds the chi router with the full middleware stack and the
// route groups laid out by auth policy: public, authenticated, role-guarded.
func NewRouter(opts Options) http.Handler {
	app := opts.App
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		middleware.CORS(opts.Config.CORSAllowedOrigins),
		middleware.Locale("en", opts.Country),
		middleware.Logger(opts.Logger),
	)

	publicWriteLimit := middleware.RateLimit(opts.Config.RateLimitPerMin, time.Minute)
	auth := middleware.Auth(opts.Verifier)
	adminOnly := app.RequireRole(domain.RoleAdmin)
	adminOrVolunteer := app.RequireRole(domain.RoleAdmin, domain.RoleVolunteer)

	// Public surface.
	r.Get("/", app.Root)
	r.Get("/healthz", app.Health)
	r.Handle("/metrics", promhttp.Handler())
	r.With(publicWriteLimit).Post("/add-user", app.RegisterUser)
	r.With(publicWriteLimit).Post("/donation-requests", app.CreateRequest)
	r.Get("/donation-requests", app.ListRequests)
	r.Get("/donation-requests/recent", app.RecentRequests)
	r.Get("/donation-requests/{id}", app.GetRequest)
	r.Get("/search-donation-requests", app.SearchRequests)
	r.Get("/live-counts", app.LiveCounts)

	// Any verified identity.
	r.Group(func(r chi.Router) {
		r.Use(auth)
		r.Get("/user-profile", app.UserProfile)
		r.Get("/get-user-role", app.UserRole)
		r.Patch("/users/{id}", app.UpdateUser)
		r.Patch("/donation-requests/{id}/confirm-donation", app.ConfirmDonation)
		r.Delete("/donation-requests/{id}", app.DeleteRequest)
		r.Get("/admin-dashboard-stats", app.DashboardStats)
		r.Get("/blogs", app.ListBlogs)
		r.Post("/create-payment-intent", app.CreatePaymentIntent)
		r.Post("/fundings", app.CreateFunding)
		r.Get("/fundings", app.ListFundings)
	})

	// Volunteers and admins.
	r.Group(func(r chi.Router) {
		r.Use(auth, adminOrVolunteer)
		r.Patch("/donation-requests/{id}/status", app.SetRequestStatus)
		r.Get("/admin/donation-requests", app.AdminListRequests)
		r.Post("/blogs", app.CreateBlog)
	})

	// Admins only.
	r.Group(func(r chi.Router) {
		r.Use(auth, adminOnly)
		r.Get("/users", app.ListUsers)
		r.Patch("/users/{id}/status", app.SetUserStatus)
		r.Patch("/users/{id}/role", app.SetUserRole)
		r.Patch("/donation-requests/{id}", app.UpdateRequest)
		r.Patch("/blogs/{id}/status", app.SetBlogStatus)
		r.Delete("/blogs/{id}", app.DeleteBlog)
	})

	return r
}
