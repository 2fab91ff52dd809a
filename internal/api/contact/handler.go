// Package contactapi receives the public contact and enrolment forms.
package contactapi

import (
	"context"
	"net/http"
	"net/mail"
	"strings"

	"emb-site/internal/api/apiutil"
	"emb-site/internal/domain/content"
	"emb-site/internal/notify"
	"emb-site/internal/render"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Notifier interface {
	ContactReceived(ctx context.Context, c notify.Contact) error
}

type Handler struct {
	notify Notifier
	log    *zap.Logger
}

func NewHandler(n Notifier, log *zap.Logger) *Handler {
	return &Handler{notify: n, log: log}
}

type request struct {
	// Form is the raw ?form= value the page was opened with; Category is the
	// page category. They resolve like the contact section does.
	Form       string `json:"form"`
	Category   string `json:"category"`
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"required"`
	Phone      string `json:"phone"`
	Message    string `json:"message"`
	Instrument string `json:"instrument"`
	Age        string `json:"age"`
}

// POST /contact
func (h *Handler) Submit(c *gin.Context) {
	var in request
	if err := c.ShouldBindJSON(&in); err != nil {
		apiutil.Fail(c, http.StatusBadRequest, "name and email are required")
		return
	}
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.Name == "" {
		apiutil.Fail(c, http.StatusBadRequest, "name and email are required")
		return
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		apiutil.Fail(c, http.StatusBadRequest, "invalid email")
		return
	}

	form := render.ResolveForm(in.Form, "", content.Category(in.Category))
	if form == render.FormGeneral && strings.TrimSpace(in.Message) == "" {
		apiutil.Fail(c, http.StatusBadRequest, "message is required")
		return
	}

	err := h.notify.ContactReceived(c.Request.Context(), notify.Contact{
		Form:       form,
		Name:       in.Name,
		Email:      in.Email,
		Phone:      in.Phone,
		Message:    in.Message,
		Instrument: in.Instrument,
		Age:        in.Age,
	})
	if err != nil {
		h.log.Error("contact email failed", zap.String("form", form), zap.Error(err))
		apiutil.Fail(c, http.StatusBadGateway, "we could not send your message, please try again later")
		return
	}
	apiutil.OK(c, http.StatusOK, gin.H{"form": form})
}
