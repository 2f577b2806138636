package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/greenpasture/payroll-backend-go/internal/domain/auth"
	"github.com/greenpasture/payroll-backend-go/internal/domain/user"
	"github.com/greenpasture/payroll-backend-go/internal/handler/http/middleware"
	"github.com/greenpasture/payroll-backend-go/internal/pkg/jwt"
)

type RouterOptions struct {
	Env            string
	AllowedOrigins []string
	LogLevel       slog.Level
}

func NewRouter(
	opts RouterOptions,
	jwtService jwt.Service,
	authService auth.AuthService,
	authHandler AuthHandler,
	timesheetHandler TimesheetHandler,
	payrollHandler PayrollHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(opts.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "payroll-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", opts.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  opts.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService))
			r.Use(middleware.RoleResolver(authService))

			r.Route("/auth", func(r chi.Router) {
				r.Post("/logout", authHandler.Logout)
				r.Get("/me", authHandler.Me)
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionTimesheetView))
				r.Post("/day-types/classify", timesheetHandler.ClassifyDay)
				r.Post("/timesheets/generate", timesheetHandler.Generate)
				r.Post("/timesheets/validate", timesheetHandler.Validate)
				r.Get("/employees/{employeeID}/timesheets", timesheetHandler.GetForEmployee)
				r.Get("/employees/{employeeID}/timesheets/validation", timesheetHandler.ValidateForEmployee)
			})

			r.With(middleware.RequirePermission(user.PermissionTimesheetGenerate)).
				Post("/employees/{employeeID}/timesheets", timesheetHandler.GenerateForEmployee)

			r.Route("/deductions", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionDeductionView))
				r.Get("/contributions", payrollHandler.Contributions)
				r.Get("/withholding-tax", payrollHandler.WithholdingTax)
			})

			// Salary data; account managers never get past DenySalaryAccess
			r.Group(func(r chi.Router) {
				r.Use(middleware.DenySalaryAccess)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionPayslipView))
					r.Post("/payslips/breakdown", payrollHandler.Breakdown)
					r.Post("/payslips", payrollHandler.CreatePayslip)
					r.Get("/employees/{employeeID}/payslip", payrollHandler.GetEmployeePayslip)
					r.Get("/employees/{employeeID}/payslip.pdf", payrollHandler.DownloadPayslipPDF)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionPayrollRun))
					r.Post("/payroll/run", payrollHandler.RunPayroll)
					r.Get("/payroll/register.xlsx", payrollHandler.DownloadRegister)
				})
			})
		})
	})
	return r
}
