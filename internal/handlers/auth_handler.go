package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/harentsoaR/elearn-portal/internal/logger"
	"github.com/harentsoaR/elearn-portal/internal/middleware"
	"github.com/harentsoaR/elearn-portal/internal/services"
)

type RegisterRequest struct {
	FullName  string `form:"fullname"`
	Phone     string `form:"phoneno"`
	Email     string `form:"email"`
	Password  string `form:"password"`
	Password1 string `form:"password1"`
}

var registerFields = []string{"fullname", "phoneno", "email", "password", "password1"}

type LoginRequest struct {
	Email         string `form:"email"`
	LoginPassword string `form:"loginpassword"`
}

var loginFields = []string{"email", "loginpassword"}

func (h *Handler) RegisterForm(c *gin.Context) {
	h.render(c, http.StatusOK, "register.html", "register", gin.H{
		"fullname": "", "phoneno": "", "email": "",
	})
}

// RegisterUser creates an account. Invalid input re-renders the form with the
// previous values, passwords excluded.
func (h *Handler) RegisterUser(c *gin.Context) {
	var req RegisterRequest
	if err := bindForm(c, &req, registerFields...); err != nil {
		h.malformed(c, err)
		return
	}

	ctx, cancel := h.ctx(c)
	defer cancel()

	user, err := h.Credentials.Register(ctx, services.RegistrationInput{
		FullName:  req.FullName,
		Phone:     req.Phone,
		Email:     req.Email,
		Password:  req.Password,
		Password1: req.Password1,
	})

	var fieldErrs services.FieldErrors
	switch {
	case errors.As(err, &fieldErrs):
		h.render(c, http.StatusBadRequest, "register.html", "register", gin.H{
			"errors":   fieldErrs,
			"fullname": req.FullName,
			"phoneno":  req.Phone,
			"email":    req.Email,
		})
	case err != nil:
		h.serverError(c, "Error Saving user Details.", err)
	default:
		logger.FromGin(c).Info("user registered", zap.String("user_id", user.ID.Hex()))
		c.String(http.StatusOK, "You are registered successfully.")
	}
}

func (h *Handler) LoginForm(c *gin.Context) {
	h.render(c, http.StatusOK, "login.html", "login", gin.H{"email": ""})
}

// Login verifies the credentials, opens a session and shows the home page.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := bindForm(c, &req, loginFields...); err != nil {
		h.malformed(c, err)
		return
	}

	ctx, cancel := h.ctx(c)
	defer cancel()

	user, err := h.Credentials.Login(ctx, req.Email, req.LoginPassword)
	var fieldErrs services.FieldErrors
	switch {
	case errors.As(err, &fieldErrs):
		h.render(c, http.StatusBadRequest, "login.html", "login", gin.H{"errors": fieldErrs, "email": req.Email})
		return
	case errors.Is(err, services.ErrInvalidCredentials):
		h.render(c, http.StatusUnauthorized, "login.html", "login", gin.H{
			"errors": services.FieldErrors{"loginpassword": services.MsgInvalidCredentials},
			"email":  req.Email,
		})
		return
	case err != nil:
		h.serverError(c, "An error occurred during login.", err)
		return
	}

	if old := c.GetString(middleware.SessionTokenKey); old != "" {
		if err := h.Sessions.End(ctx, old); err != nil {
			logger.FromGin(c).Warn("could not end previous session", zap.Error(err))
		}
	}

	token, _, err := h.Sessions.Start(ctx, user.ID)
	if err != nil {
		h.serverError(c, "An error occurred during login.", err)
		return
	}
	h.setSessionCookie(c, token, int(h.Sessions.TTL().Seconds()))

	logger.FromGin(c).Info("user logged in", zap.String("user_id", user.ID.Hex()))
	h.render(c, http.StatusOK, "elearn.html", "home", nil)
}

func (h *Handler) Logout(c *gin.Context) {
	token := c.GetString(middleware.SessionTokenKey)
	if token == "" {
		token, _ = c.Cookie(h.Cookie.Name)
	}

	ctx, cancel := h.ctx(c)
	defer cancel()

	if err := h.Sessions.End(ctx, token); err != nil {
		h.serverError(c, "An error occurred during logout.", err)
		return
	}
	h.setSessionCookie(c, "", -1)
	c.Redirect(http.StatusFound, "/login")
}

func (h *Handler) setSessionCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.Cookie.Name, value, maxAge, "/", "", h.Cookie.Secure, true)
}
