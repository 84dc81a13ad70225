// Package repository loads applications for document generation.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	apperrors "document-workers/internal/common/errors"
	"document-workers/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrApplicationNotFound  = errors.New("application not found")
	ErrApplicationNotUnique = errors.New("application id matched more than one record")
)

// ApplicationFinder is satisfied by every store in this package.
type ApplicationFinder interface {
	FindApplicationByID(ctx context.Context, id uuid.UUID) (*models.Application, error)
}

const (
	selectApplication = `
		SELECT a.id, a.reference_number, a.state, a.applied_on, a.is_legal_entity,
		       p.first_name, p.surname,
		       le.name, le.registration_number, le.tax_number
		FROM applications a
		JOIN persons p ON p.id = a.person_id
		LEFT JOIN legal_entities le ON le.application_id = a.id
		WHERE a.id = $1
		LIMIT 2`

	selectPortfolio = `
		SELECT pr.id, pr.name, f.id, f.name, f.amount, f.fees
		FROM application_products pr
		LEFT JOIN product_funds f ON f.product_id = pr.id
		WHERE pr.application_id = $1
		ORDER BY pr.position, f.position`

	selectOpenReview = `
		SELECT r.id, r.reason, r.raised_by, r.raised_at, r.metadata
		FROM application_reviews r
		WHERE r.application_id = $1 AND r.resolved_at IS NULL
		ORDER BY r.raised_at DESC
		LIMIT 1`
)

// PostgresStore reads applications with strict single-match semantics: no
// match and several matches are both errors.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) FindApplicationByID(ctx context.Context, id uuid.UUID) (*models.Application, error) {
	app, err := s.findApplication(ctx, id)
	if err != nil {
		return nil, err
	}

	if app.Products, err = s.findPortfolio(ctx, id); err != nil {
		return nil, err
	}

	if app.State == models.ApplicationStateInReview {
		if app.CurrentReview, err = s.findOpenReview(ctx, id); err != nil {
			return nil, err
		}
	}

	return app, nil
}

func (s *PostgresStore) findApplication(ctx context.Context, id uuid.UUID) (*models.Application, error) {
	rows, err := s.db.QueryContext(ctx, selectApplication, id)
	if err != nil {
		return nil, apperrors.NewQueryExecutionFailedError("select application", err)
	}
	defer rows.Close()

	var (
		app     *models.Application
		matches int
	)
	for rows.Next() {
		matches++
		if matches > 1 {
			return nil, apperrors.NewApplicationNotUniqueError(id.String(), ErrApplicationNotUnique)
		}

		var (
			a                        models.Application
			state                    string
			leName, leReg, leTaxNumb sql.NullString
		)
		if err := rows.Scan(
			&a.ID, &a.ReferenceNumber, &state, &a.Date, &a.IsLegalEntity,
			&a.Person.FirstName, &a.Person.Surname,
			&leName, &leReg, &leTaxNumb,
		); err != nil {
			return nil, apperrors.NewQueryExecutionFailedError("scan application", err)
		}
		a.State = models.ApplicationState(state)
		if leName.Valid {
			a.LegalEntity = &models.LegalEntity{
				Name:               leName.String,
				RegistrationNumber: leReg.String,
				TaxNumber:          leTaxNumb.String,
			}
		}
		app = &a
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewQueryExecutionFailedError("select application", err)
	}
	if app == nil {
		return nil, apperrors.NewApplicationNotFoundError(id.String(), ErrApplicationNotFound)
	}
	return app, nil
}

func (s *PostgresStore) findPortfolio(ctx context.Context, id uuid.UUID) ([]models.Product, error) {
	rows, err := s.db.QueryContext(ctx, selectPortfolio, id)
	if err != nil {
		return nil, apperrors.NewQueryExecutionFailedError("select portfolio", err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var (
			productID   uuid.UUID
			productName string
			fundID      uuid.NullUUID
			fundName    sql.NullString
			amount      decimal.NullDecimal
			fees        decimal.NullDecimal
		)
		if err := rows.Scan(&productID, &productName, &fundID, &fundName, &amount, &fees); err != nil {
			return nil, apperrors.NewQueryExecutionFailedError("scan portfolio", err)
		}

		// rows arrive grouped by product
		if n := len(products); n == 0 || products[n-1].ID != productID {
			products = append(products, models.Product{ID: productID, Name: productName})
		}
		if !fundID.Valid {
			continue
		}
		p := &products[len(products)-1]
		p.Funds = append(p.Funds, models.Fund{
			ID:     fundID.UUID,
			Name:   fundName.String,
			Amount: amount.Decimal,
			Fees:   fees.Decimal,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewQueryExecutionFailedError("select portfolio", err)
	}
	return products, nil
}

func (s *PostgresStore) findOpenReview(ctx context.Context, id uuid.UUID) (*models.Review, error) {
	var (
		r        models.Review
		raisedBy sql.NullString
		metadata []byte
	)
	err := s.db.QueryRowContext(ctx, selectOpenReview, id).Scan(&r.ID, &r.Reason, &raisedBy, &r.RaisedAt, &metadata)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewQueryExecutionFailedError("select review", err)
	}

	r.RaisedBy = raisedBy.String
	if len(metadata) > 0 {
		if err := json.Unmarshal(metadata, &r.Metadata); err != nil {
			return nil, fmt.Errorf("decode review metadata: %w", err)
		}
	}
	return &r, nil
}
