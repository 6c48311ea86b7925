package models

import (
	"context"
	"database/sql"
	"time"
)

// DBTX is the subset of *sql.DB / *sql.Tx the query layer needs.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Queries wraps the genealogy database operations. Most reads go through
// stored procedures owned by the database; results are returned as generic
// records because procedure result shapes are owned by the schema, not by
// this layer.
type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// Record is one result row keyed by column name.
type Record = map[string]any

// UpdatePersonParams carries the ChangePerson procedure arguments. Nil date
// and place pointers clear the corresponding column.
type UpdatePersonParams struct {
	PersonID     int64
	GivvenName   string
	FamilyName   string
	DateOfBirth  *string
	PlaceOfBirth *string
	DateOfDeath  *string
	PlaceOfDeath *string
}

// PingDatabase round-trips the frontend and middleware timestamps through
// the PingedDbServer procedure.
func (q *Queries) PingDatabase(ctx context.Context, tsFE, tsMW time.Time) ([]Record, error) {
	rows, err := q.db.QueryContext(ctx, "CALL PingedDbServer(?, ?)", tsFE, tsMW)
	if err != nil {
		return nil, err
	}
	return scanRecords(rows)
}

// PersonsLike searches persons by partial given or family name.
func (q *Queries) PersonsLike(ctx context.Context, search string) ([]Record, error) {
	rows, err := q.db.QueryContext(ctx, "CALL GetPersonsLike(?)", search)
	if err != nil {
		return nil, err
	}
	return scanRecords(rows)
}

// ChildrenOfParent lists every child recorded for one parent.
func (q *Queries) ChildrenOfParent(ctx context.Context, parentID int64) ([]Record, error) {
	rows, err := q.db.QueryContext(ctx, "CALL GetAllChildrenWithoutPartnerFromOneParent(?)", parentID)
	if err != nil {
		return nil, err
	}
	return scanRecords(rows)
}

// FatherOf looks up the father of a child.
func (q *Queries) FatherOf(ctx context.Context, childID int64) ([]Record, error) {
	rows, err := q.db.QueryContext(ctx, "CALL GetFather(?)", childID)
	if err != nil {
		return nil, err
	}
	return scanRecords(rows)
}

// MotherOf looks up the mother of a child.
func (q *Queries) MotherOf(ctx context.Context, childID int64) ([]Record, error) {
	rows, err := q.db.QueryContext(ctx, "CALL GetMother(?)", childID)
	if err != nil {
		return nil, err
	}
	return scanRecords(rows)
}

// PersonDetails fetches the persons row directly. Kept as a plain SELECT:
// the ChangePerson/GetPersonDetails procedure pair drifted apart on older
// databases, the base table did not.
func (q *Queries) PersonDetails(ctx context.Context, personID int64) ([]Record, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT
			PersonID,
			PersonGivvenName,
			PersonFamilyName,
			PersonDateOfBirth,
			PersonPlaceOfBirth,
			PersonDateOfDeath,
			PersonPlaceOfDeath,
			PersonIsMale
		FROM persons
		WHERE PersonID = ?
	`, personID)
	if err != nil {
		return nil, err
	}
	return scanRecords(rows)
}

// PartnersOf lists the partners recorded in the relations table.
func (q *Queries) PartnersOf(ctx context.Context, personID int64) ([]Record, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT DISTINCT
			p.PersonID,
			p.PersonGivvenName,
			p.PersonFamilyName,
			p.PersonDateOfBirth,
			p.PersonDateOfDeath
		FROM relations r1
		JOIN relationnames rn ON r1.RelationName = rn.RelationnameID
		JOIN persons p ON r1.RelationWithPerson = p.PersonID
		WHERE r1.RelationPerson = ?
		AND rn.RelationnameName IN ('Partner', 'Echtgenoot', 'Echtgenote')
	`, personID)
	if err != nil {
		return nil, err
	}
	return scanRecords(rows)
}

// UpdatePerson rewrites a persons row through the ChangePerson procedure.
func (q *Queries) UpdatePerson(ctx context.Context, arg UpdatePersonParams) error {
	_, err := q.db.ExecContext(ctx, "CALL ChangePerson(?, ?, ?, ?, ?, ?, ?)",
		arg.PersonID,
		arg.GivvenName,
		arg.FamilyName,
		arg.DateOfBirth,
		arg.PlaceOfBirth,
		arg.DateOfDeath,
		arg.PlaceOfDeath,
	)
	return err
}

// scanRecords drains rows into generic records. The MySQL driver hands back
// []byte for text columns; those become strings so they JSON-encode as text.
func scanRecords(rows *sql.Rows) ([]Record, error) {
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var out []Record
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}

		record := make(Record, len(cols))
		for i, col := range cols {
			record[col] = normalizeValue(values[i])
		}
		out = append(out, record)
	}
	return out, rows.Err()
}

func normalizeValue(v any) any {
	switch val := v.(type) {
	case []byte:
		return string(val)
	case time.Time:
		return val.Format("2006-01-02T15:04:05.000")
	default:
		return v
	}
}
