package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	_ "github.com/noah-isme/attendance-api/api/swagger"
	"github.com/noah-isme/attendance-api/internal/handler"
	"github.com/noah-isme/attendance-api/internal/repository"
	"github.com/noah-isme/attendance-api/internal/router"
	"github.com/noah-isme/attendance-api/internal/service"
	"github.com/noah-isme/attendance-api/pkg/cache"
	"github.com/noah-isme/attendance-api/pkg/config"
	"github.com/noah-isme/attendance-api/pkg/database"
	"github.com/noah-isme/attendance-api/pkg/logger"
	"github.com/noah-isme/attendance-api/pkg/response"
	"github.com/noah-isme/attendance-api/pkg/validation"
)

// @title Educational Attendance API
// @version 1.0.0
// @description Face-verified attendance for students, teachers, classes and sessions
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	response.ExposeInternalErrors(cfg.IsDevelopment())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect database", zap.Error(err))
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(db, logr); err != nil {
			logr.Fatal("failed to migrate database", zap.Error(err))
		}
	}

	metrics := service.NewMetricsService()
	if err := metrics.RegisterDB(db.DB, cfg.Database.Name); err != nil {
		logr.Warn("db stats collector not registered", zap.Error(err))
	}

	var cacheRepo *repository.CacheRepository
	if cfg.Cache.Enabled {
		client, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, caching disabled", zap.Error(err))
		} else {
			defer client.Close()
			cacheRepo = repository.NewCacheRepository(client, logr)
		}
	}
	var (
		cacheSvc    *service.CacheService
		cachePinger handler.Pinger
	)
	if cacheRepo != nil {
		cacheSvc = service.NewCacheService(cacheRepo, metrics, cfg.Cache.TTL, logr, true)
		cachePinger = cacheRepo
	}

	validate := validation.New()

	studentRepo := repository.NewStudentRepository(db)
	teacherRepo := repository.NewTeacherRepository(db)
	subjectSetRepo := repository.NewSubjectSetRepository(db)
	classRepo := repository.NewClassRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	faceRepo := repository.NewFaceDataRepository(db)

	studentSvc := service.NewStudentService(studentRepo, cacheSvc, validate, logr)
	teacherSvc := service.NewTeacherService(teacherRepo, cacheSvc, validate, logr)
	subjectSetSvc := service.NewSubjectSetService(subjectSetRepo, validate, logr)
	classSvc := service.NewClassService(classRepo, subjectSetRepo, teacherRepo, studentRepo, cacheSvc, validate, logr)
	sessionSvc := service.NewSessionService(sessionRepo, subjectSetRepo, teacherRepo, validate, logr)
	attendanceSvc := service.NewAttendanceService(attendanceRepo, sessionRepo, studentRepo, validate, logr)
	faceSvc := service.NewFaceDataService(faceRepo, studentRepo, teacherRepo, validate, logr)
	exportSvc := service.NewExportService(sessionRepo, attendanceRepo, logr)
	authSvc := service.NewAuthService(service.AuthServiceDeps{
		Teachers:   teacherRepo,
		Students:   studentRepo,
		Classes:    classRepo,
		Faces:      faceRepo,
		Attendance: attendanceRepo,
		Cache:      cacheSvc,
		Metrics:    metrics,
		Validator:  validate,
		Logger:     logr,
	})

	engine := router.New(router.Options{
		Logger:         logr,
		Metrics:        metrics,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		MaxBodyBytes:   cfg.MaxBodyBytes,
		EnableDocs:     cfg.IsDevelopment(),
	}, router.Handlers{
		Students:    handler.NewStudentHandler(studentSvc),
		Teachers:    handler.NewTeacherHandler(teacherSvc),
		SubjectSets: handler.NewSubjectSetHandler(subjectSetSvc),
		Classes:     handler.NewClassHandler(classSvc),
		Sessions:    handler.NewSessionHandler(sessionSvc),
		Attendance:  handler.NewAttendanceHandler(attendanceSvc, exportSvc),
		FaceData:    handler.NewFaceDataHandler(faceSvc),
		Auth:        handler.NewAuthHandler(authSvc),
		System:      handler.NewMetricsHandler(metrics, db, cachePinger),
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: engine,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
}
