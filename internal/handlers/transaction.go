package handlers

import (
	"net/http"
	"strconv"

	"github.com/HelplessSneeker/noessi-immo/internal/apperr"
	"github.com/HelplessSneeker/noessi-immo/internal/models"
	"github.com/HelplessSneeker/noessi-immo/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionHandler handles transaction CRUD
type TransactionHandler struct {
	journal *store.TransactionJournal
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(journal *store.TransactionJournal) *TransactionHandler {
	return &TransactionHandler{journal: journal}
}

type transactionCreateRequest struct {
	PropertyID  uuid.UUID                  `json:"property_id"`
	CreditID    *uuid.UUID                 `json:"credit_id"`
	Date        string                     `json:"date"`
	Type        models.TransactionType     `json:"type"`
	Category    models.TransactionCategory `json:"category"`
	Amount      decimal.Decimal            `json:"amount"`
	Description *string                    `json:"description"`
	Recurring   *bool                      `json:"recurring"`
}

type transactionPatchRequest struct {
	CreditID    *uuid.UUID                  `json:"credit_id"`
	Date        *string                     `json:"date"`
	Type        *models.TransactionType     `json:"type"`
	Category    *models.TransactionCategory `json:"category"`
	Amount      *decimal.Decimal            `json:"amount"`
	Description *string                     `json:"description"`
	Recurring   *bool                       `json:"recurring"`
}

// List returns transactions matching the query filters
func (h *TransactionHandler) List(c *gin.Context) {
	filter := store.TransactionFilter{
		Type:     models.TransactionType(c.Query("type")),
		Category: models.TransactionCategory(c.Query("category")),
	}

	var err error
	if filter.PropertyID, err = queryUUID(c, "property_id"); err != nil {
		fail(c, err)
		return
	}
	if filter.CreditID, err = queryUUID(c, "credit_id"); err != nil {
		fail(c, err)
		return
	}
	if filter.DateFrom, err = parseOptionalDate(c.Query("date_from")); err != nil {
		fail(c, err)
		return
	}
	if filter.DateTo, err = parseOptionalDate(c.Query("date_to")); err != nil {
		fail(c, err)
		return
	}
	filter.Offset, _ = strconv.Atoi(c.DefaultQuery("skip", "0"))
	filter.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "100"))

	transactions, err := h.journal.List(filter)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, transactions)
}

// Get returns one transaction
func (h *TransactionHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	transaction, err := h.journal.Get(id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, transaction)
}

// Create creates a new transaction
func (h *TransactionHandler) Create(c *gin.Context) {
	var req transactionCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperr.Validation("invalid_json", nil))
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		fail(c, err)
		return
	}

	in := store.TransactionInput{
		PropertyID: req.PropertyID,
		CreditID:   req.CreditID,
		Date:       date,
		Type:       req.Type,
		Category:   req.Category,
		Amount:     req.Amount,
	}
	if req.Description != nil {
		in.Description = *req.Description
	}
	if req.Recurring != nil {
		in.Recurring = *req.Recurring
	}

	transaction, err := h.journal.Create(in)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, transaction)
}

// Update applies a partial update
func (h *TransactionHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req transactionPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperr.Validation("invalid_json", nil))
		return
	}

	patch := store.TransactionPatch{
		CreditID:    req.CreditID,
		Type:        req.Type,
		Category:    req.Category,
		Amount:      req.Amount,
		Description: req.Description,
		Recurring:   req.Recurring,
	}
	if req.Date != nil {
		date, err := parseDate(*req.Date)
		if err != nil {
			fail(c, err)
			return
		}
		patch.Date = &date
	}

	transaction, err := h.journal.Update(id, patch)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, transaction)
}

// Delete removes a transaction
func (h *TransactionHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.journal.Delete(id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
