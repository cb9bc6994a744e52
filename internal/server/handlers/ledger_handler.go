package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/feedbook/internal/service/billing"
	"github.com/mamadbah2/feedbook/internal/service/bookkeeping"
	"github.com/mamadbah2/feedbook/internal/service/reporting"
)

// LedgerHandler serves bills, invoices, stock, prices and balances.
type LedgerHandler struct {
	billing *billing.Service
	books   *bookkeeping.Service
	reports *reporting.Service
	logger  *zap.Logger
}

// NewLedgerHandler constructs the HTTP handler adapter.
func NewLedgerHandler(billingSvc *billing.Service, books *bookkeeping.Service, reports *reporting.Service, logger *zap.Logger) *LedgerHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LedgerHandler{billing: billingSvc, books: books, reports: reports, logger: logger}
}

// FeedPrices returns the latest cost per kg of each feed type.
func (h *LedgerHandler) FeedPrices(c *gin.Context) {
	ok(c, h.reports.FeedPrices(c.Request.Context()))
}

// Stock returns on-hand items of a category.
func (h *LedgerHandler) Stock(c *gin.Context) {
	category, valid := categoryParam(c)
	if !valid {
		return
	}
	ok(c, h.reports.Stock(c.Request.Context(), category))
}

// ListBills returns a category's sales bills, newest first.
func (h *LedgerHandler) ListBills(c *gin.Context) {
	category, valid := categoryParam(c)
	if !valid {
		return
	}
	bills, err := h.books.SalesBills(c.Request.Context(), category)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	ok(c, bills)
}

// CreateBill saves a sales bill for the category in the path.
func (h *LedgerHandler) CreateBill(c *gin.Context) {
	category, valid := categoryParam(c)
	if !valid {
		return
	}
	var draft billing.SalesBillDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		h.logger.Warn("invalid bill payload", zap.Error(err))
		badRequest(c, "invalid request body")
		return
	}
	draft.Category = category

	bill, err := h.billing.CreateSalesBill(c.Request.Context(), draft)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	created(c, bill)
}

// DeleteBill removes a sales bill.
func (h *LedgerHandler) DeleteBill(c *gin.Context) {
	category, valid := categoryParam(c)
	if !valid {
		return
	}
	if err := h.books.DeleteSalesBill(c.Request.Context(), category, c.Param("billNo")); err != nil {
		fail(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListCustomerBills returns the customer ledger records of a category.
func (h *LedgerHandler) ListCustomerBills(c *gin.Context) {
	category, valid := categoryParam(c)
	if !valid {
		return
	}
	recs, err := h.books.CustomerBills(c.Request.Context(), category)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	ok(c, recs)
}

// DeleteCustomerBill removes a customer ledger record.
func (h *LedgerHandler) DeleteCustomerBill(c *gin.Context) {
	category, valid := categoryParam(c)
	if !valid {
		return
	}
	if err := h.books.DeleteCustomerBill(c.Request.Context(), category, c.Param("billNo")); err != nil {
		fail(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListPurchases returns a category's supplier invoices, newest first.
func (h *LedgerHandler) ListPurchases(c *gin.Context) {
	category, valid := categoryParam(c)
	if !valid {
		return
	}
	invoices, err := h.books.PurchaseInvoices(c.Request.Context(), category)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	ok(c, invoices)
}

// CreatePurchase saves a supplier invoice for the category in the path.
func (h *LedgerHandler) CreatePurchase(c *gin.Context) {
	category, valid := categoryParam(c)
	if !valid {
		return
	}
	var draft billing.PurchaseInvoiceDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		h.logger.Warn("invalid purchase payload", zap.Error(err))
		badRequest(c, "invalid request body")
		return
	}
	draft.Category = category

	invoice, err := h.billing.CreatePurchaseInvoice(c.Request.Context(), draft)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	created(c, invoice)
}

// DeletePurchase removes a supplier invoice.
func (h *LedgerHandler) DeletePurchase(c *gin.Context) {
	category, valid := categoryParam(c)
	if !valid {
		return
	}
	if err := h.books.DeletePurchaseInvoice(c.Request.Context(), category, c.Param("invoiceNo")); err != nil {
		fail(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// PurchaseLedger returns the supplier balance of a category.
func (h *LedgerHandler) PurchaseLedger(c *gin.Context) {
	category, valid := categoryParam(c)
	if !valid {
		return
	}
	ok(c, h.reports.PurchaseLedger(c.Request.Context(), category))
}

// RecentPurchases summarizes the trailing ?days= window (default 30).
func (h *LedgerHandler) RecentPurchases(c *gin.Context) {
	category, valid := categoryParam(c)
	if !valid {
		return
	}
	days := reporting.DefaultRecentDays
	if raw := trimmedQuery(c, "days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			badRequest(c, "days must be a positive number")
			return
		}
		days = n
	}
	ok(c, h.reports.RecentPurchases(c.Request.Context(), category, days))
}

// Dashboard returns the whole snapshot. It never fails; unreadable data counts as empty.
func (h *LedgerHandler) Dashboard(c *gin.Context) {
	ok(c, h.reports.Snapshot(c.Request.Context()))
}
