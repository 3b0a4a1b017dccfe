package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/kintai-hq/kintai-backend-go/internal/handler/http/middleware"
	"github.com/kintai-hq/kintai-backend-go/internal/pkg/jwt"
)

func NewRouter(
	jwtService jwt.Service,
	authHandler AuthHandler,
	attendanceHandler AttendanceHandler,
	shiftHandler ShiftHandler,
	leaveHandler LeaveHandler,
	payrollHandler PayrollHandler,
	rateHandler RateHandler,
	frontendURL string,
	env string,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "kintai-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{frontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)
			r.Post("/logout", authHandler.Logout)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/check-in", attendanceHandler.CheckIn)
				r.Put("/{id}/check-out", attendanceHandler.CheckOut)
				r.Get("/my", attendanceHandler.ListMyRecords)
				r.Get("/my/monthly", attendanceHandler.ListMonthlyRecords)

				r.Route("/adjustments", func(r chi.Router) {
					r.Post("/", attendanceHandler.CreateAdjustment)
					r.Get("/my", attendanceHandler.ListMyAdjustments)

					// Admin only
					r.Group(func(r chi.Router) {
						r.Use(middleware.AdminOnly)
						r.Get("/", attendanceHandler.ListAdjustments)
						r.Put("/{id}/decide", attendanceHandler.DecideAdjustment)
					})
				})

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/", attendanceHandler.ListAll)
				})
			})

			r.Route("/shifts", func(r chi.Router) {
				r.Post("/", shiftHandler.Create)
				r.Get("/my", shiftHandler.ListMyShifts)
				r.Delete("/{id}", shiftHandler.DeleteMyShift)
				r.Get("/projection/my", shiftHandler.Projection)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/", shiftHandler.ListAll)
					r.Put("/{id}/decide", shiftHandler.Decide)
					r.Get("/projection/{employeeID}", shiftHandler.Projection)
				})
			})

			r.Route("/leaves", func(r chi.Router) {
				r.Post("/", leaveHandler.CreateRequest)
				r.Get("/my", leaveHandler.ListMyRequests)
				r.Put("/{id}/cancel", leaveHandler.Cancel)
				r.Get("/balance/my", leaveHandler.MyBalance)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/", leaveHandler.ListAll)
					r.Put("/{id}/decide", leaveHandler.Decide)
					r.Get("/balance/{employeeID}", leaveHandler.BalanceOf)
					r.Post("/allocations", leaveHandler.Allocate)
				})
			})

			r.Route("/payslips", func(r chi.Router) {
				r.Get("/my", payrollHandler.ListMyPayslips)
				r.Get("/stats/my", payrollHandler.MonthlyStats)
				r.Get("/export/my", payrollHandler.ExportMyCSV)
				r.Get("/{id}", payrollHandler.GetPayslip)
				r.Get("/{id}/pdf", payrollHandler.ExportPDF)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/", payrollHandler.ListPayslips)
					r.Post("/calculate", payrollHandler.Calculate)
					r.Put("/{id}", payrollHandler.UpdatePayslip)
					r.Post("/{id}/confirm", payrollHandler.Confirm)
					r.Post("/{id}/mark-paid", payrollHandler.MarkPaid)
					r.Get("/export/csv", payrollHandler.ExportCSV)
					r.Get("/stats/{employeeID}", payrollHandler.MonthlyStats)
				})
			})

			r.Route("/holidays", func(r chi.Router) {
				r.Get("/", rateHandler.ListHolidays)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", rateHandler.CreateHoliday)
					r.Delete("/{id}", rateHandler.DeleteHoliday)
				})
			})

			// Admin only
			r.Group(func(r chi.Router) {
				r.Use(middleware.AdminOnly)

				r.Route("/settings", func(r chi.Router) {
					r.Get("/", rateHandler.GetSettings)
					r.Put("/", rateHandler.UpdateSettings)
				})

				r.Route("/rates", func(r chi.Router) {
					r.Route("/insurance", func(r chi.Router) {
						r.Get("/", rateHandler.ListInsuranceRates)
						r.Post("/", rateHandler.CreateInsuranceRate)
					})
					r.Route("/income-tax", func(r chi.Router) {
						r.Get("/", rateHandler.ListIncomeTaxRates)
						r.Post("/", rateHandler.CreateIncomeTaxRate)
					})
				})
			})
		})
	})
	return r
}
