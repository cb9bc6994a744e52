package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/feedbook/internal/domain/models"
	"github.com/mamadbah2/feedbook/internal/service/bookkeeping"
	"github.com/mamadbah2/feedbook/internal/service/ledger"
	"github.com/mamadbah2/feedbook/internal/service/reporting"
)

// PartyHandler serves the party master list, statements and supplier payments.
type PartyHandler struct {
	books   *bookkeeping.Service
	reports *reporting.Service
	logger  *zap.Logger
}

// NewPartyHandler constructs the HTTP handler adapter.
func NewPartyHandler(books *bookkeeping.Service, reports *reporting.Service, logger *zap.Logger) *PartyHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PartyHandler{books: books, reports: reports, logger: logger}
}

// ListParties returns all parties or those matching ?q= by name or mobile.
func (h *PartyHandler) ListParties(c *gin.Context) {
	parties, err := h.books.ListParties(c.Request.Context(), c.Query("q"))
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	ok(c, parties)
}

// CreateParty adds a party.
func (h *PartyHandler) CreateParty(c *gin.Context) {
	var p models.Party
	if err := c.ShouldBindJSON(&p); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	saved, err := h.books.CreateParty(c.Request.Context(), p)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	created(c, saved)
}

// UpdateParty replaces a party's details.
func (h *PartyHandler) UpdateParty(c *gin.Context) {
	var p models.Party
	if err := c.ShouldBindJSON(&p); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	saved, err := h.books.UpdateParty(c.Request.Context(), c.Param("id"), p)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	ok(c, saved)
}

// DeleteParty removes a party.
func (h *PartyHandler) DeleteParty(c *gin.Context) {
	if err := h.books.DeleteParty(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Statement returns the sales statement of the party in the path, filtered by
// ?category=, ?from=, ?to= and ?q=.
func (h *PartyHandler) Statement(c *gin.Context) {
	party, err := h.books.Party(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, h.logger, err)
		return
	}

	filter := ledger.StatementFilter{Search: trimmedQuery(c, "q")}
	if raw := trimmedQuery(c, "category"); raw != "" {
		category, err := models.ParseCategory(raw)
		if err != nil {
			badRequest(c, "unknown category")
			return
		}
		filter.Category = category
	}
	filter.From, filter.To, err = reporting.ParseRange(trimmedQuery(c, "from"), trimmedQuery(c, "to"))
	if err != nil {
		badRequest(c, "dates must be YYYY-MM-DD")
		return
	}

	ok(c, h.reports.Statement(c.Request.Context(), party.Name, filter))
}

// ListPayments returns a category's supplier payments, newest first.
func (h *PartyHandler) ListPayments(c *gin.Context) {
	category, valid := categoryParam(c)
	if !valid {
		return
	}
	payments, err := h.books.ListPayments(c.Request.Context(), category)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	ok(c, payments)
}

// CreatePayment records a supplier payment.
func (h *PartyHandler) CreatePayment(c *gin.Context) {
	var draft bookkeeping.PaymentDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	payment, err := h.books.AddPayment(c.Request.Context(), draft)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	created(c, payment)
}

// UpdatePayment edits a supplier payment.
func (h *PartyHandler) UpdatePayment(c *gin.Context) {
	var draft bookkeeping.PaymentDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	payment, err := h.books.UpdatePayment(c.Request.Context(), c.Param("id"), draft)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	ok(c, payment)
}

// DeletePayment removes a supplier payment.
func (h *PartyHandler) DeletePayment(c *gin.Context) {
	if err := h.books.DeletePayment(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
