package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"

	"github.com/harentsoaR/elearn-portal/internal/logger"
	"github.com/harentsoaR/elearn-portal/internal/models"
	"github.com/harentsoaR/elearn-portal/internal/services"
)

type MessageStore interface {
	Create(ctx context.Context, msg *models.ContactMessage) error
}

type Pinger interface {
	Ping(ctx context.Context) error
}

type CookieConfig struct {
	Name   string
	Secure bool
}

// Handler carries everything the routes need. It is built once in main.
type Handler struct {
	Credentials *services.CredentialService
	Enrollments *services.EnrollmentGuard
	Sessions    *services.SessionService
	Users       services.UserStore
	Messages    MessageStore
	Store       Pinger
	Cookie      CookieConfig
	Timeout     time.Duration
}

func NewHandler(h Handler) *Handler {
	if h.Timeout <= 0 {
		h.Timeout = 5 * time.Second
	}
	return &h
}

func (h *Handler) ctx(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), h.Timeout)
}

const msgMalformed = "Malformed request."

var errMalformed = errors.New("malformed request")

// bindForm binds a url-encoded body into dst and insists that the body holds
// exactly the listed fields, no more and no fewer.
func bindForm(c *gin.Context, dst any, fields ...string) error {
	if err := c.ShouldBindWith(dst, binding.Form); err != nil {
		return fmt.Errorf("%w: %v", errMalformed, err)
	}

	allowed := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		allowed[f] = struct{}{}
		if _, ok := c.Request.PostForm[f]; !ok {
			return fmt.Errorf("%w: missing field %q", errMalformed, f)
		}
	}
	for k := range c.Request.PostForm {
		if _, ok := allowed[k]; !ok {
			return fmt.Errorf("%w: unexpected field %q", errMalformed, k)
		}
	}
	return nil
}

func (h *Handler) render(c *gin.Context, status int, page, currentPage string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["currentPage"] = currentPage
	if _, ok := data["errors"]; !ok {
		data["errors"] = services.FieldErrors{}
	}
	c.HTML(status, page, data)
}

func (h *Handler) malformed(c *gin.Context, err error) {
	logger.FromGin(c).Info("rejected request body", zap.Error(err))
	c.String(http.StatusBadRequest, msgMalformed)
}

// serverError logs the cause and answers with a message that reveals nothing about it.
func (h *Handler) serverError(c *gin.Context, msg string, err error) {
	logger.FromGin(c).Error(msg, zap.Error(err))
	_ = c.Error(err)
	c.String(http.StatusInternalServerError, msg)
}

// Page renders a static informational page.
func (h *Handler) Page(page, currentPage string) gin.HandlerFunc {
	return func(c *gin.Context) {
		h.render(c, http.StatusOK, page, currentPage, nil)
	}
}

func (h *Handler) Health(c *gin.Context) {
	ctx, cancel := h.ctx(c)
	defer cancel()
	if err := h.Store.Ping(ctx); err != nil {
		logger.FromGin(c).Warn("health check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
