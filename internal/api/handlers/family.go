package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/familiez/humans-service/internal/logger"
	"github.com/familiez/humans-service/pkg/types"
)

type FamilyHandler struct {
	queries Querier
}

func NewFamilyHandler(queries Querier) *FamilyHandler {
	return &FamilyHandler{queries: queries}
}

// GetSiblings lists the children of one parent.
// GET /GetSiblings?parentID=...
func (h *FamilyHandler) GetSiblings(c *gin.Context) {
	parentID, ok := idParam(c, "parentID")
	if !ok {
		return
	}

	records, err := h.queries.ChildrenOfParent(c.Request.Context(), parentID)
	if err != nil {
		logger.Errorf("Error in get_siblings: %v", err)
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{Detail: "Query failed"})
		return
	}
	c.JSON(http.StatusOK, types.FrameRecords(records))
}

// GetChildren lists the children of one person. Shares the stored procedure
// with GetSiblings; only the parameter name differs.
// GET /GetChildren?personID=...
func (h *FamilyHandler) GetChildren(c *gin.Context) {
	personID, ok := idParam(c, "personID")
	if !ok {
		return
	}

	records, err := h.queries.ChildrenOfParent(c.Request.Context(), personID)
	if err != nil {
		logger.Errorf("Error in get_children: %v", err)
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{Detail: "Query failed"})
		return
	}
	c.JSON(http.StatusOK, types.FrameRecords(records))
}

// GetFather looks up the father of a child.
// GET /GetFather?childID=...
func (h *FamilyHandler) GetFather(c *gin.Context) {
	childID, ok := idParam(c, "childID")
	if !ok {
		return
	}

	records, err := h.queries.FatherOf(c.Request.Context(), childID)
	if err != nil {
		logger.Errorf("Error in get_father: %v", err)
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{Detail: "Query failed"})
		return
	}
	c.JSON(http.StatusOK, types.FrameRecords(records))
}

// GetMother looks up the mother of a child.
// GET /GetMother?childID=...
func (h *FamilyHandler) GetMother(c *gin.Context) {
	childID, ok := idParam(c, "childID")
	if !ok {
		return
	}

	records, err := h.queries.MotherOf(c.Request.Context(), childID)
	if err != nil {
		logger.Errorf("Error in get_mother: %v", err)
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{Detail: "Query failed"})
		return
	}
	c.JSON(http.StatusOK, types.FrameRecords(records))
}

// GetPartners lists the partners recorded for one person.
// GET /GetPartners?personID=...
func (h *FamilyHandler) GetPartners(c *gin.Context) {
	personID, ok := idParam(c, "personID")
	if !ok {
		return
	}

	records, err := h.queries.PartnersOf(c.Request.Context(), personID)
	if err != nil {
		logger.Errorf("Error in get_partners: %v", err)
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{Detail: "Query failed"})
		return
	}
	c.JSON(http.StatusOK, types.FrameRecords(records))
}
