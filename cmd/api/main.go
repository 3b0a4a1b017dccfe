package main

import (
	"fmt"
	"net/http"

	"github.com/kintai-hq/kintai-backend-go/internal/config"
	appHTTP "github.com/kintai-hq/kintai-backend-go/internal/handler/http"
	"github.com/kintai-hq/kintai-backend-go/internal/pkg/database"
	"github.com/kintai-hq/kintai-backend-go/internal/pkg/jwt"
	"github.com/kintai-hq/kintai-backend-go/internal/repository/postgresql"
	attendanceService "github.com/kintai-hq/kintai-backend-go/internal/service/attendance"
	authService "github.com/kintai-hq/kintai-backend-go/internal/service/auth"
	leaveService "github.com/kintai-hq/kintai-backend-go/internal/service/leave"
	payrollService "github.com/kintai-hq/kintai-backend-go/internal/service/payroll"
	shiftService "github.com/kintai-hq/kintai-backend-go/internal/service/shift"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	shiftRepo := postgresql.NewShiftRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)
	rateRepo := postgresql.NewRateRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)

	authSvc := authService.NewAuthService(employeeRepo, jwtService)
	attendanceSvc := attendanceService.NewAttendanceService(db, attendanceRepo)
	leaveSvc := leaveService.NewLeaveService(db, leaveRepo, employeeRepo)
	payrollSvc := payrollService.NewPayrollService(
		db,
		payrollRepo,
		rateRepo,
		holidayRepo,
		attendanceRepo,
		leaveRepo,
		employeeRepo,
	)
	shiftSvc := shiftService.NewShiftService(db, shiftRepo, employeeRepo, payrollRepo, holidayRepo)

	authHandler := appHTTP.NewAuthHandler(jwtService, authSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	shiftHandler := appHTTP.NewShiftHandler(shiftSvc)
	leaveHandler := appHTTP.NewLeaveHandler(leaveSvc)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)
	rateHandler := appHTTP.NewRateHandler(payrollSvc)

	router := appHTTP.NewRouter(
		jwtService,
		authHandler,
		attendanceHandler,
		shiftHandler,
		leaveHandler,
		payrollHandler,
		rateHandler,
		cfg.App.FrontendURL,
		cfg.App.Env,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
