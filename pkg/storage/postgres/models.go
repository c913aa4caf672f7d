package postgres

import (
	"database/sql"
	"prospector/pkg/domain"
	"time"

	"github.com/google/uuid"
)

type PgLead struct {
	ID uuid.UUID `db:"id" goqu:"skipinsert"`

	Email      string         `db:"email"`
	Name       sql.NullString `db:"name"`
	Company    sql.NullString `db:"company"`
	Phone      sql.NullString `db:"phone"`
	Website    sql.NullString `db:"website"`
	SearchTerm sql.NullString `db:"search_term"`

	CreatedAt time.Time `db:"created_at" goqu:"skipinsert"`
}

func (p *PgLead) ToDomain() *domain.Lead {
	return &domain.Lead{
		ID:         domain.LeadID(p.ID),
		Email:      p.Email,
		Name:       p.Name.String,
		Company:    p.Company.String,
		Phone:      p.Phone.String,
		Website:    p.Website.String,
		SearchTerm: p.SearchTerm.String,
		CreatedAt:  p.CreatedAt,
	}
}

func (p *PgLead) FromDomain(lead domain.Lead) {
	nullable := func(s string) sql.NullString {
		return sql.NullString{String: s, Valid: s != ""}
	}

	*p = PgLead{
		ID:         uuid.UUID(lead.ID),
		Email:      lead.Email,
		Name:       nullable(lead.Name),
		Company:    nullable(lead.Company),
		Phone:      nullable(lead.Phone),
		Website:    nullable(lead.Website),
		SearchTerm: nullable(lead.SearchTerm),
		CreatedAt:  lead.CreatedAt,
	}
}
