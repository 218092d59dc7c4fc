package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/elearn-portal/internal/models"
)

type HelpRequest struct {
	Name    string `form:"Name"`
	Email   string `form:"Email"`
	Message string `form:"Message"`
}

var helpFields = []string{"Name", "Email", "Message"}

func (h *Handler) HelpForm(c *gin.Context) {
	h.render(c, http.StatusOK, "help.html", "help", gin.H{"name": "", "email": "", "message": ""})
}

// SubmitMessage stores a contact message.
func (h *Handler) SubmitMessage(c *gin.Context) {
	var req HelpRequest
	if err := bindForm(c, &req, helpFields...); err != nil {
		h.malformed(c, err)
		return
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.Message) == "" {
		c.String(http.StatusBadRequest, "Please fill in your name, email and message.")
		return
	}

	ctx, cancel := h.ctx(c)
	defer cancel()

	msg := &models.ContactMessage{Name: req.Name, Email: req.Email, Message: req.Message}
	if err := h.Messages.Create(ctx, msg); err != nil {
		h.serverError(c, "An error occurred while saving your message.", err)
		return
	}
	c.String(http.StatusOK, "Your message has been received successfully.")
}
