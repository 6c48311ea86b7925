package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/familiez/humans-service/internal/logger"
	"github.com/familiez/humans-service/internal/models"
	"github.com/familiez/humans-service/pkg/types"
)

type PersonHandler struct {
	queries Querier
}

func NewPersonHandler(queries Querier) *PersonHandler {
	return &PersonHandler{queries: queries}
}

// GetPersonsLike searches persons by (part of) a name.
// GET /GetPersonsLike?stringToSearchFor=...
func (h *PersonHandler) GetPersonsLike(c *gin.Context) {
	search := c.Query("stringToSearchFor")
	if search == "" {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Detail: "stringToSearchFor is required"})
		return
	}

	records, err := h.queries.PersonsLike(c.Request.Context(), search)
	if err != nil {
		logger.Errorf("Error in get_persons_like: %v", err)
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{Detail: "Query failed"})
		return
	}
	c.JSON(http.StatusOK, types.FrameRecords(records))
}

// GetPersonDetails returns the full persons row for one person.
// GET /GetPersonDetails?personID=...
func (h *PersonHandler) GetPersonDetails(c *gin.Context) {
	personID, ok := idParam(c, "personID")
	if !ok {
		return
	}

	records, err := h.queries.PersonDetails(c.Request.Context(), personID)
	if err != nil {
		logger.Errorf("Error in get_person_details: %v", err)
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{Detail: "Query failed"})
		return
	}
	c.JSON(http.StatusOK, types.FrameRecords(records))
}

// PostUpdatePerson rewrites a persons row via the ChangePerson procedure.
// POST /UpdatePerson
func (h *PersonHandler) PostUpdatePerson(c *gin.Context) {
	var req types.UpdatePersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Detail: err.Error()})
		return
	}

	err := h.queries.UpdatePerson(c.Request.Context(), models.UpdatePersonParams{
		PersonID:     req.PersonID,
		GivvenName:   req.PersonGivvenName,
		FamilyName:   req.PersonFamilyName,
		DateOfBirth:  req.PersonDateOfBirth,
		PlaceOfBirth: req.PersonPlaceOfBirth,
		DateOfDeath:  req.PersonDateOfDeath,
		PlaceOfDeath: req.PersonPlaceOfDeath,
	})
	if err != nil {
		logger.Errorf("Error in update_person: %v", err)
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{Detail: "Update failed"})
		return
	}
	c.JSON(http.StatusOK, types.SuccessResponse{Success: true})
}

// idParam parses a required positive integer query parameter.
func idParam(c *gin.Context, name string) (int64, bool) {
	raw := c.Query(name)
	if raw == "" {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Detail: name + " is required"})
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Detail: "invalid " + name})
		return 0, false
	}
	return id, true
}
