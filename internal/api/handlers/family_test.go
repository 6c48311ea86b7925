package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/familiez/humans-service/internal/models"
)

func TestGetFather_FramesRecords(t *testing.T) {
	h := NewFamilyHandler(fakeQuerier{
		fatherOf: func(ctx context.Context, childID int64) ([]models.Record, error) {
			require.Equal(t, int64(42), childID)
			return []models.Record{{"FatherID": float64(7)}}, nil
		},
	})

	c, w := testContext("/GetFather?childID=42")
	h.GetFather(c)

	require.Equal(t, http.StatusOK, w.Code)

	var body []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body, 2)
	require.Equal(t, float64(1), body[0]["numberOfRecords"])
	require.Equal(t, float64(7), body[1]["FatherID"])
}

func TestGetMother_EmptyResult(t *testing.T) {
	h := NewFamilyHandler(fakeQuerier{
		motherOf: func(ctx context.Context, childID int64) ([]models.Record, error) {
			return nil, nil
		},
	})

	c, w := testContext("/GetMother?childID=1")
	h.GetMother(c)

	require.Equal(t, http.StatusOK, w.Code)

	var body []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body, 1)
	require.Equal(t, float64(0), body[0]["numberOfRecords"])
}

func TestGetSiblingsAndChildren_ShareQuery(t *testing.T) {
	var gotIDs []int64
	fq := fakeQuerier{
		childrenOf: func(ctx context.Context, parentID int64) ([]models.Record, error) {
			gotIDs = append(gotIDs, parentID)
			return nil, nil
		},
	}
	h := NewFamilyHandler(fq)

	c, w := testContext("/GetSiblings?parentID=3")
	h.GetSiblings(c)
	require.Equal(t, http.StatusOK, w.Code)

	c, w = testContext("/GetChildren?personID=9")
	h.GetChildren(c)
	require.Equal(t, http.StatusOK, w.Code)

	require.Equal(t, []int64{3, 9}, gotIDs)
}

func TestGetFather_MissingParam(t *testing.T) {
	h := NewFamilyHandler(fakeQuerier{})

	c, w := testContext("/GetFather")
	h.GetFather(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetFather_NonNumericParam(t *testing.T) {
	h := NewFamilyHandler(fakeQuerier{})

	c, w := testContext("/GetFather?childID=abc")
	h.GetFather(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetPartners_QueryError(t *testing.T) {
	h := NewFamilyHandler(fakeQuerier{
		partnersOf: func(ctx context.Context, personID int64) ([]models.Record, error) {
			return nil, errors.New("boom")
		},
	})

	c, w := testContext("/GetPartners?personID=5")
	h.GetPartners(c)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Contains(t, w.Body.String(), "Query failed")
}
