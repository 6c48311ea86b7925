package handlers

import (
	"context"
	"net/http/httptest"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/familiez/humans-service/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeQuerier lets each test stub just the queries it exercises.
type fakeQuerier struct {
	pingDatabase  func(ctx context.Context, tsFE, tsMW time.Time) ([]models.Record, error)
	personsLike   func(ctx context.Context, search string) ([]models.Record, error)
	childrenOf    func(ctx context.Context, parentID int64) ([]models.Record, error)
	fatherOf      func(ctx context.Context, childID int64) ([]models.Record, error)
	motherOf      func(ctx context.Context, childID int64) ([]models.Record, error)
	personDetails func(ctx context.Context, personID int64) ([]models.Record, error)
	partnersOf    func(ctx context.Context, personID int64) ([]models.Record, error)
	updatePerson  func(ctx context.Context, arg models.UpdatePersonParams) error
}

func (f fakeQuerier) PingDatabase(ctx context.Context, tsFE, tsMW time.Time) ([]models.Record, error) {
	return f.pingDatabase(ctx, tsFE, tsMW)
}

func (f fakeQuerier) PersonsLike(ctx context.Context, search string) ([]models.Record, error) {
	return f.personsLike(ctx, search)
}

func (f fakeQuerier) ChildrenOfParent(ctx context.Context, parentID int64) ([]models.Record, error) {
	return f.childrenOf(ctx, parentID)
}

func (f fakeQuerier) FatherOf(ctx context.Context, childID int64) ([]models.Record, error) {
	return f.fatherOf(ctx, childID)
}

func (f fakeQuerier) MotherOf(ctx context.Context, childID int64) ([]models.Record, error) {
	return f.motherOf(ctx, childID)
}

func (f fakeQuerier) PersonDetails(ctx context.Context, personID int64) ([]models.Record, error) {
	return f.personDetails(ctx, personID)
}

func (f fakeQuerier) PartnersOf(ctx context.Context, personID int64) ([]models.Record, error) {
	return f.partnersOf(ctx, personID)
}

func (f fakeQuerier) UpdatePerson(ctx context.Context, arg models.UpdatePersonParams) error {
	return f.updatePerson(ctx, arg)
}

// testContext returns a Gin context and recorder wired to a GET request.
func testContext(target string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", target, nil)
	return c, w
}
