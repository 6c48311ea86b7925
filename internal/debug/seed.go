package debug

import (
	"context"
	"database/sql"

	"github.com/familiez/humans-service/internal/logger"
)

// SeedSampleFamily inserts a small three-generation family when the persons
// table is empty (dev-only helper). Existing data is never touched.
func SeedSampleFamily(db *sql.DB) error {
	ctx := context.Background()

	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM persons`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		logger.Debugf("[Debug] Seed skipped, persons table has %d rows", count)
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	insertPerson := func(givven, family string, born string, male bool) (int64, error) {
		res, err := tx.ExecContext(ctx, `
			INSERT INTO persons (PersonGivvenName, PersonFamilyName, PersonDateOfBirth, PersonIsMale)
			VALUES (?, ?, ?, ?)
		`, givven, family, born, male)
		if err != nil {
			return 0, err
		}
		return res.LastInsertId()
	}

	relate := func(person, withPerson int64, name string) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO relations (RelationPerson, RelationWithPerson, RelationName)
			SELECT ?, ?, RelationnameID FROM relationnames WHERE RelationnameName = ?
		`, person, withPerson, name)
		return err
	}

	jan, err := insertPerson("Jan", "de Vries", "1950-03-12", true)
	if err != nil {
		return err
	}
	anna, err := insertPerson("Anna", "Bakker", "1952-07-01", false)
	if err != nil {
		return err
	}
	piet, err := insertPerson("Piet", "de Vries", "1978-11-23", true)
	if err != nil {
		return err
	}
	marie, err := insertPerson("Marie", "de Vries", "1981-02-05", false)
	if err != nil {
		return err
	}

	for _, r := range []struct {
		person, with int64
		name         string
	}{
		{jan, anna, "Partner"},
		{anna, jan, "Partner"},
		{piet, jan, "Vader"},
		{piet, anna, "Moeder"},
		{marie, jan, "Vader"},
		{marie, anna, "Moeder"},
	} {
		if err := relate(r.person, r.with, r.name); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	logger.Infof("[Debug] Seeded sample family (4 persons)")
	return nil
}
