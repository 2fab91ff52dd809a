package donationsapi

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"emb-site/internal/domain/donations"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var csvHeader = []string{
	"id", "fecha", "nombre", "email", "monto", "tipo", "estado",
	"processor_id", "payment_id", "subscription_id", "aprobada", "cancelada", "rechazada",
}

// GET /admin/donations/export.csv?status=
func (h *Handler) Export(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context(), donations.Status(c.Query("status")))
	if err != nil {
		h.log.Error("export donations", zap.Error(err))
		c.String(http.StatusInternalServerError, "could not export donations")
		return
	}

	name := fmt.Sprintf("donaciones-%s.csv", time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Status(http.StatusOK)

	w := csv.NewWriter(c.Writer)
	if err := w.Write(csvHeader); err != nil {
		h.log.Warn("csv export interrupted", zap.Error(err))
		return
	}
	for _, d := range list {
		err := w.Write([]string{
			d.ID,
			d.CreatedAt.UTC().Format(time.RFC3339),
			cell(d.Name),
			cell(d.Email),
			strconv.FormatInt(d.Amount, 10),
			d.Type.Label(),
			d.Status.Label(),
			d.ProcessorID,
			deref(d.PaymentID),
			deref(d.SubscriptionID),
			stamp(d.ApprovedAt),
			stamp(d.CancelledAt),
			stamp(d.RejectedAt),
		})
		if err != nil {
			h.log.Warn("csv export interrupted", zap.String("donation_id", d.ID), zap.Error(err))
			return
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		h.log.Warn("csv export interrupted", zap.Error(err))
	}
}

// cell keeps donor-typed values from being read as formulas by spreadsheet
// apps.
func cell(s string) string {
	if s != "" && strings.ContainsRune("=+-@\t\r", rune(s[0])) {
		return "'" + s
	}
	return s
}
