package main

import (
	"fmt"
	"net/http"

	"github.com/kerjalog/attendance-backend-go/internal/config"
	appHTTP "github.com/kerjalog/attendance-backend-go/internal/handler/http"
	"github.com/kerjalog/attendance-backend-go/internal/pkg/database"
	"github.com/kerjalog/attendance-backend-go/internal/pkg/jwt"
	"github.com/kerjalog/attendance-backend-go/internal/pkg/timeutil"
	"github.com/kerjalog/attendance-backend-go/internal/repository/postgresql"
	attendanceService "github.com/kerjalog/attendance-backend-go/internal/service/attendance"
	"github.com/kerjalog/attendance-backend-go/internal/service/directory"
	statisticsService "github.com/kerjalog/attendance-backend-go/internal/service/statistics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	if err := database.RunMigrations(dsn); err != nil {
		fmt.Println("Error running migrations:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	attendanceRepo := postgresql.NewAttendanceRepository(db)
	employeeDir := postgresql.NewEmployeeDirectory(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret)
	loc := timeutil.Location(cfg.Attendance.UTCOffsetMinutes)
	clock := attendanceService.SystemClock{}
	resolver := directory.NewResolver(employeeDir, cfg.Attendance.StrictEmptyFilter)
	policy := attendanceService.Policy{
		PresentMinHours: cfg.Attendance.PresentMinHours,
		HalfDayMinHours: cfg.Attendance.HalfDayMinHours,
	}

	attendanceSvc := attendanceService.NewService(attendanceRepo, employeeDir, resolver, policy, loc, clock)
	statisticsSvc := statisticsService.NewService(attendanceRepo, employeeDir, loc, clock)

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	statisticsHandler := appHTTP.NewStatisticsHandler(statisticsSvc)

	router := appHTTP.NewRouter(
		jwtService,
		attendanceHandler,
		statisticsHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
