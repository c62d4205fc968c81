package router // route registration for the clinic API

import (
	"database/sql"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/minamaher/clinic-booking/internal/handler"
	"github.com/minamaher/clinic-booking/internal/middleware"
)

// RegisterRoutes registers the operational endpoints: health check,
// Prometheus metrics and the static uploads directory that serves
// doctor photos.
func RegisterRoutes(e *echo.Echo, db *sql.DB) {
	e.GET("/healthz", handler.Health(db))
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.Static("/uploads", "uploads")
}

// RegisterAuth registers patient account routes. Unauthenticated
// operations live under /v1/auth, while protected endpoints live
// under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	// Logout accepts either a bearer token (revoke all sessions) or a
	// refresh_token body (revoke one), so it stays outside JWTAuth.
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1", middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
}

// RegisterCatalog registers the unauthenticated browse endpoints for
// doctors and vaccines. cache, when non-nil, is the Redis response
// cache; catalog reads are the hottest and most cacheable routes.
func RegisterCatalog(e *echo.Echo, h *handler.CatalogHandler, cache echo.MiddlewareFunc) {
	mws := []echo.MiddlewareFunc{}
	if cache != nil {
		mws = append(mws, cache)
	}
	e.GET("/v1/doctors", h.ListDoctors, mws...)
	e.GET("/v1/doctors/:id", h.GetDoctor, mws...)
	e.GET("/v1/doctors/name/:name", h.GetDoctorByName, mws...)
	e.GET("/v1/vaccines", h.ListVaccines, mws...)
}

// RegisterBookings registers both booking flows. Vaccination booking
// is open so walk-in kiosks can submit without an account;
// consultation booking requires a patient session.
func RegisterBookings(e *echo.Echo, vb *handler.VaccineBookingHandler, db *handler.DoctorBookingHandler, jwtSecret string) {
	v := e.Group("/v1/vaccine-bookings")
	v.POST("", vb.Create)
	v.GET("", vb.List)
	v.GET("/patient/:national_id", vb.History)
	v.GET("/:id", vb.Get)
	v.PATCH("/:id", vb.Update)
	v.DELETE("/:id", vb.Delete)

	d := e.Group("/v1/doctor-bookings", middleware.JWTAuth(jwtSecret))
	d.POST("", db.Create)
	d.GET("", db.List)
	d.GET("/email/:email", db.ListByEmail)
	d.GET("/:id", db.Get)
	d.PATCH("/:id", db.Update)
	d.DELETE("/:id", db.Delete)
}
