package handlers

import (
	"net/http"

	"github.com/HelplessSneeker/noessi-immo/internal/apperr"
	"github.com/HelplessSneeker/noessi-immo/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// PropertyHandler handles property CRUD and the summary endpoint
type PropertyHandler struct {
	properties *store.PropertyStore
	aggregator *store.SummaryAggregator
}

// NewPropertyHandler creates a new property handler
func NewPropertyHandler(properties *store.PropertyStore, aggregator *store.SummaryAggregator) *PropertyHandler {
	return &PropertyHandler{properties: properties, aggregator: aggregator}
}

type propertyRequest struct {
	Name          *string          `json:"name"`
	Address       *string          `json:"address"`
	PurchaseDate  *string          `json:"purchase_date"`
	PurchasePrice *decimal.Decimal `json:"purchase_price"`
	Notes         *string          `json:"notes"`
}

// List returns all properties
func (h *PropertyHandler) List(c *gin.Context) {
	properties, err := h.properties.List()
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, properties)
}

// Get returns one property with its relations
func (h *PropertyHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	property, err := h.properties.Get(id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, property)
}

// Create creates a new property
func (h *PropertyHandler) Create(c *gin.Context) {
	var req propertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperr.Validation("invalid_json", nil))
		return
	}

	in := store.PropertyInput{PurchasePrice: req.PurchasePrice}
	if req.Name != nil {
		in.Name = *req.Name
	}
	if req.Address != nil {
		in.Address = *req.Address
	}
	if req.Notes != nil {
		in.Notes = *req.Notes
	}
	if req.PurchaseDate != nil {
		date, err := parseOptionalDate(*req.PurchaseDate)
		if err != nil {
			fail(c, err)
			return
		}
		in.PurchaseDate = date
	}

	property, err := h.properties.Create(in)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, property)
}

// Update applies a partial update
func (h *PropertyHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req propertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperr.Validation("invalid_json", nil))
		return
	}

	patch := store.PropertyPatch{
		Name:          req.Name,
		Address:       req.Address,
		PurchasePrice: req.PurchasePrice,
		Notes:         req.Notes,
	}
	if req.PurchaseDate != nil {
		date, err := parseOptionalDate(*req.PurchaseDate)
		if err != nil {
			fail(c, err)
			return
		}
		patch.PurchaseDate = date
	}

	property, err := h.properties.Update(id, patch)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, property)
}

// Delete removes a property unless dependents exist
func (h *PropertyHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.properties.Delete(id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Summary returns the computed rollup for one property
func (h *PropertyHandler) Summary(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	summary, err := h.aggregator.Summarize(id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
