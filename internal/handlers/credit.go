package handlers

import (
	"net/http"

	"github.com/HelplessSneeker/noessi-immo/internal/apperr"
	"github.com/HelplessSneeker/noessi-immo/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreditHandler handles credit CRUD
type CreditHandler struct {
	ledger *store.CreditLedger
}

// NewCreditHandler creates a new credit handler
func NewCreditHandler(ledger *store.CreditLedger) *CreditHandler {
	return &CreditHandler{ledger: ledger}
}

type creditCreateRequest struct {
	PropertyID     uuid.UUID       `json:"property_id"`
	Name           string          `json:"name"`
	OriginalAmount decimal.Decimal `json:"original_amount"`
	InterestRate   decimal.Decimal `json:"interest_rate"`
	MonthlyPayment decimal.Decimal `json:"monthly_payment"`
	StartDate      string          `json:"start_date"`
	EndDate        *string         `json:"end_date"`
}

type creditPatchRequest struct {
	Name           *string          `json:"name"`
	OriginalAmount *decimal.Decimal `json:"original_amount"`
	InterestRate   *decimal.Decimal `json:"interest_rate"`
	MonthlyPayment *decimal.Decimal `json:"monthly_payment"`
	StartDate      *string          `json:"start_date"`
	EndDate        *string          `json:"end_date"`
}

// List returns credits, optionally scoped to one property
func (h *CreditHandler) List(c *gin.Context) {
	propertyID, err := queryUUID(c, "property_id")
	if err != nil {
		fail(c, err)
		return
	}
	credits, err := h.ledger.List(propertyID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, credits)
}

// Get returns one credit with its computed balance
func (h *CreditHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	credit, err := h.ledger.Get(id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, credit)
}

// Create creates a new credit
func (h *CreditHandler) Create(c *gin.Context) {
	var req creditCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperr.Validation("invalid_json", nil))
		return
	}
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		fail(c, err)
		return
	}
	in := store.CreditInput{
		PropertyID:     req.PropertyID,
		Name:           req.Name,
		OriginalAmount: req.OriginalAmount,
		InterestRate:   req.InterestRate,
		MonthlyPayment: req.MonthlyPayment,
		StartDate:      startDate,
	}
	if req.EndDate != nil {
		endDate, err := parseOptionalDate(*req.EndDate)
		if err != nil {
			fail(c, err)
			return
		}
		in.EndDate = endDate
	}

	credit, err := h.ledger.Create(in)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, credit)
}

// Update applies a partial update
func (h *CreditHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req creditPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperr.Validation("invalid_json", nil))
		return
	}
	patch := store.CreditPatch{
		Name:           req.Name,
		OriginalAmount: req.OriginalAmount,
		InterestRate:   req.InterestRate,
		MonthlyPayment: req.MonthlyPayment,
	}
	if req.StartDate != nil {
		startDate, err := parseDate(*req.StartDate)
		if err != nil {
			fail(c, err)
			return
		}
		patch.StartDate = &startDate
	}
	if req.EndDate != nil {
		endDate, err := parseOptionalDate(*req.EndDate)
		if err != nil {
			fail(c, err)
			return
		}
		patch.EndDate = endDate
	}

	credit, err := h.ledger.Update(id, patch)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, credit)
}

// Delete removes a credit and unlinks its transactions
func (h *CreditHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.ledger.Delete(id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
