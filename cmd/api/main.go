package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/peoplehub/hrm-backend-go/internal/config"
	appHTTP "github.com/peoplehub/hrm-backend-go/internal/handler/http"
	"github.com/peoplehub/hrm-backend-go/internal/pkg/database"
	"github.com/peoplehub/hrm-backend-go/internal/pkg/jwt"
	"github.com/peoplehub/hrm-backend-go/internal/repository/postgresql"
	attendanceService "github.com/peoplehub/hrm-backend-go/internal/service/attendance"
	employeeService "github.com/peoplehub/hrm-backend-go/internal/service/employee"
	leaveService "github.com/peoplehub/hrm-backend-go/internal/service/leave"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveTypeRepo := postgresql.NewLeaveTypeRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	runTx := func(ctx context.Context, fn func(txCtx context.Context) error) error {
		return postgresql.WithTransaction(ctx, db, fn)
	}

	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, employeeRepo, cfg.Leave.DefaultBreakMinutes)
	policySvc := leaveService.NewPolicyService(leaveTypeRepo, leaveRequestRepo, cfg.Leave.NoticePolicy)
	requestSvc := leaveService.NewRequestService(runTx, leaveTypeRepo, leaveRequestRepo, employeeRepo, policySvc)
	directorySvc := employeeService.NewDirectoryService(employeeRepo)

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	leaveHandler := appHTTP.NewLeaveHandler(requestSvc, policySvc)
	employeeHandler := appHTTP.NewEmployeeHandler(directorySvc)

	router := appHTTP.NewRouter(
		cfg,
		jwtService,
		attendanceHandler,
		leaveHandler,
		employeeHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
