// Package router assembles the gin engine: middleware chain, operational
// endpoints and the resource groups.
package router

import (
	"fmt"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/attendance-api/internal/handler"
	"github.com/noah-isme/attendance-api/internal/middleware"
	"github.com/noah-isme/attendance-api/internal/service"
	appErrors "github.com/noah-isme/attendance-api/pkg/errors"
	"github.com/noah-isme/attendance-api/pkg/logger"
	"github.com/noah-isme/attendance-api/pkg/middleware/bodylimit"
	corsmiddleware "github.com/noah-isme/attendance-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/attendance-api/pkg/middleware/requestid"
	"github.com/noah-isme/attendance-api/pkg/response"
)

// Options configures the engine.
type Options struct {
	Logger         *zap.Logger
	Metrics        *service.MetricsService
	AllowedOrigins []string
	MaxBodyBytes   int64
	EnableDocs     bool
}

// Handlers groups every HTTP handler mounted by New.
type Handlers struct {
	Students    *handler.StudentHandler
	Teachers    *handler.TeacherHandler
	SubjectSets *handler.SubjectSetHandler
	Classes     *handler.ClassHandler
	Sessions    *handler.SessionHandler
	Attendance  *handler.AttendanceHandler
	FaceData    *handler.FaceDataHandler
	Auth        *handler.AuthHandler
	System      *handler.MetricsHandler
}

// New builds the gin engine.
func New(opts Options, h Handlers) *gin.Engine {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(reqidmiddleware.Middleware())
	r.Use(middleware.Recovery(opts.Logger))
	r.Use(logger.GinMiddleware(opts.Logger))
	r.Use(middleware.Metrics(opts.Metrics))
	r.Use(corsmiddleware.New(opts.AllowedOrigins))
	r.Use(bodylimit.Middleware(opts.MaxBodyBytes))

	r.GET("/", h.System.Root)
	r.GET("/health", h.System.Health)
	r.GET("/ready", h.System.Ready)
	r.GET("/metrics", h.System.Prometheus)
	if opts.EnableDocs {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	auth := r.Group("/auth")
	{
		auth.GET("/teachers", h.Auth.Teachers)
		auth.POST("/verify-teacher-face", h.Auth.VerifyTeacherFace)
		auth.GET("/teacher-classes/:teacherCode", h.Auth.TeacherClasses)
		auth.GET("/class-students/:teacherCode/:campus/:subjectSetId", h.Auth.ClassStudents)
		auth.POST("/verify-student-face", h.Auth.VerifyStudentFace)
		auth.POST("/mark-attendance", h.Auth.MarkAttendance)
	}

	students := r.Group("/students")
	{
		students.GET("", h.Students.List)
		students.GET("/:id", h.Students.Get)
		students.POST("", h.Students.Create)
		students.PUT("/:id", h.Students.Update)
		students.DELETE("/:id", h.Students.Delete)
	}

	teachers := r.Group("/teachers")
	{
		teachers.GET("", h.Teachers.List)
		teachers.GET("/:id", h.Teachers.Get)
		teachers.POST("", h.Teachers.Create)
		teachers.PUT("/:id", h.Teachers.Update)
		teachers.DELETE("/:id", h.Teachers.Delete)
	}

	subjectSets := r.Group("/subject-sets")
	{
		subjectSets.GET("", h.SubjectSets.List)
		subjectSets.GET("/:id", h.SubjectSets.Get)
		subjectSets.POST("", h.SubjectSets.Create)
	}

	classes := r.Group("/classes")
	{
		classes.GET("", h.Classes.List)
		classes.GET("/:id", h.Classes.Get)
		classes.POST("", h.Classes.Create)
	}

	sessions := r.Group("/sessions")
	{
		sessions.GET("", h.Sessions.List)
		sessions.GET("/:id", h.Sessions.Get)
		sessions.POST("", h.Sessions.Create)
		sessions.PUT("/:id", h.Sessions.Update)
	}

	attendance := r.Group("/attendance")
	{
		attendance.GET("", h.Attendance.List)
		attendance.GET("/session/:sessionId", h.Attendance.ListBySession)
		attendance.GET("/session/:sessionId/export", h.Attendance.Export)
		attendance.POST("", h.Attendance.Create)
		attendance.PUT("/:id", h.Attendance.Update)
	}

	faceData := r.Group("/face-data")
	{
		faceData.GET("/:personCode", h.FaceData.ListByPersonCode)
		faceData.POST("", h.FaceData.Create)
		faceData.PUT("/:id", h.FaceData.Update)
		faceData.DELETE("/:id", h.FaceData.Delete)
	}

	r.NoRoute(func(c *gin.Context) {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("Route %s not found", c.Request.URL.RequestURI())))
	})

	return r
}
