package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/harentsoaR/elearn-portal/internal/config"
	"github.com/harentsoaR/elearn-portal/internal/handlers"
	"github.com/harentsoaR/elearn-portal/internal/logger"
	"github.com/harentsoaR/elearn-portal/internal/metrics"
	"github.com/harentsoaR/elearn-portal/internal/routes"
	"github.com/harentsoaR/elearn-portal/internal/services"
	"github.com/harentsoaR/elearn-portal/internal/store"
	"github.com/harentsoaR/elearn-portal/internal/utils"
	"github.com/harentsoaR/elearn-portal/internal/web"
)

const serviceName = "elearn-portal"

// backend is the set of collections the services need, whichever driver backs them.
type backend struct {
	users       services.UserStore
	logins      services.LoginAuditStore
	messages    handlers.MessageStore
	enrollments services.EnrollmentStore
	sessions    services.SessionStore
	pinger      handlers.Pinger
	close       func(context.Context) error
}

func openBackend(cfg *config.Config, zl *zap.Logger) (*backend, error) {
	if cfg.StoreDriver == config.StoreMemory {
		zl.Warn("using in-memory store; data is lost on restart")
		mem := store.NewMemory()
		return &backend{
			users:       mem.Users(),
			logins:      mem.Logins(),
			messages:    mem.Messages(),
			enrollments: mem.Enrollments(),
			sessions:    mem.Sessions(),
			pinger:      mem,
			close:       mem.Close,
		}, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Mongo.ConnectTimeout)
	defer cancel()

	db, err := store.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		return nil, err
	}
	if err := db.EnsureIndexes(ctx); err != nil {
		_ = db.Close(context.Background())
		return nil, err
	}
	zl.Info("Successfully connected to MongoDB!", zap.String("database", cfg.Mongo.Database))

	return &backend{
		users:       db.Users(),
		logins:      db.Logins(),
		messages:    db.Messages(),
		enrollments: db.Enrollments(),
		sessions:    db.Sessions(),
		pinger:      db,
		close:       db.Close,
	}, nil
}

func run() error {
	cfg, err := config.Load(serviceName)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	zl, err := logger.New(logger.LogConfig{
		Level:       cfg.Log.Level,
		Environment: cfg.Server.Env,
		ServiceName: cfg.ServiceName,
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer zl.Sync()
	zap.ReplaceGlobals(zl)
	zl.Info("configuration loaded", cfg.LogFields()...)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// --- Store ---
	be, err := openBackend(cfg, zl)
	if err != nil {
		return err
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := be.close(ctx); err != nil {
			zl.Error("closing store", zap.Error(err))
		}
	}()

	// --- Services ---
	var audit services.LoginAuditStore
	if cfg.LoginAudit {
		audit = be.logins
	}
	sessions := services.NewSessionService(be.sessions, utils.NewSessionTokens(cfg.Session.Secret), cfg.Session.TTL, zl)

	h := handlers.NewHandler(handlers.Handler{
		Credentials: services.NewCredentialService(be.users, audit, zl),
		Enrollments: services.NewEnrollmentGuard(be.enrollments, zl),
		Sessions:    sessions,
		Users:       be.users,
		Messages:    be.messages,
		Store:       be.pinger,
		Cookie:      handlers.CookieConfig{Name: cfg.Session.CookieName, Secure: cfg.Session.Secure},
		Timeout:     cfg.Mongo.RequestTimeout,
	})

	tmpl, err := web.Templates()
	if err != nil {
		return fmt.Errorf("parse templates: %w", err)
	}

	r := routes.New(routes.Options{
		Handler:        h,
		Sessions:       sessions,
		Logger:         zl,
		Metrics:        metrics.NewHTTPMetrics(cfg.ServiceName),
		Templates:      tmpl,
		StaticDir:      cfg.Server.StaticDir,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		CookieName:     cfg.Session.CookieName,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		zl.Info("The app started running", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	zl.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func main() {
	if err := run(); err != nil {
		log.Fatalf("elearn-portal: %v", err)
	}
}
