package routes

import (
	"html/template"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/harentsoaR/elearn-portal/internal/handlers"
	"github.com/harentsoaR/elearn-portal/internal/logger"
	"github.com/harentsoaR/elearn-portal/internal/metrics"
	"github.com/harentsoaR/elearn-portal/internal/middleware"
	"github.com/harentsoaR/elearn-portal/internal/services"
)

type Options struct {
	Handler        *handlers.Handler
	Sessions       *services.SessionService
	Logger         *zap.Logger
	Metrics        *metrics.HTTPMetrics
	Templates      *template.Template
	StaticDir      string
	AllowedOrigins []string
	CookieName     string
}

func New(opts Options) *gin.Engine {
	h := opts.Handler

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.RequestID(), logger.Middleware(opts.Logger))
	if opts.Metrics != nil {
		r.Use(opts.Metrics.Middleware())
	}
	if len(opts.AllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     opts.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST"},
			AllowHeaders:     []string{"Origin", "Content-Type"},
			AllowCredentials: true,
		}))
	}
	r.Use(middleware.SessionMiddleware(opts.Sessions, opts.CookieName))

	r.SetHTMLTemplate(opts.Templates)
	if opts.StaticDir != "" {
		r.Static("/static", opts.StaticDir)
	}

	// --- Accounts ---
	r.GET("/", h.RegisterForm)
	r.POST("/register", h.RegisterUser)
	r.GET("/login", h.LoginForm)
	r.POST("/login", h.Login)
	r.GET("/logout", h.Logout)

	// --- Enrollments ---
	r.GET("/course", h.Course)
	r.POST("/enroll", middleware.RequireSession(), h.Enroll)
	r.GET("/edit/:id", h.EditForm)
	r.POST("/edit/:id", h.UpdateEnrollment)
	r.GET("/delete/:id", h.DeleteEnrollment)

	// --- Contact and informational pages ---
	r.GET("/help", h.HelpForm)
	r.POST("/help", h.SubmitMessage)
	r.GET("/elearn", h.Page("elearn.html", "home"))
	r.GET("/about", h.Page("about.html", "about"))
	r.GET("/students", h.Page("students.html", "students"))
	r.GET("/teachers", h.Page("teachers.html", "teachers"))

	r.GET("/healthz", h.Health)
	if opts.Metrics != nil {
		r.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))
	}

	return r
}
