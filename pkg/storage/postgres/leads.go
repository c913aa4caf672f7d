package postgres

import (
	"context"
	"fmt"
	"prospector/pkg/domain"

	"github.com/doug-martin/goqu/v9"
)

const leadsTable = "leads"

// StoreLead inserts the lead, ignoring conflicts on the unique email column.
// It returns the stored row, or nil when the email was already archived.
func (p *PgSQL) StoreLead(ctx context.Context, lead domain.Lead) (*domain.Lead, error) {
	var pgLead PgLead
	pgLead.FromDomain(lead)

	var row PgLead
	found, err := p.Builder.Insert(leadsTable).
		Rows(pgLead).
		OnConflict(goqu.DoNothing()).
		Returning(&PgLead{}).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not store lead into pg: %w", err)
	}
	if !found {
		// conflict: the email is already archived
		return nil, nil
	}

	return row.ToDomain(), nil
}

// LeadEmails returns every archived email address.
func (p *PgSQL) LeadEmails(ctx context.Context) ([]string, error) {
	var emails []string
	if err := p.Builder.From(leadsTable).
		Select("email").
		Order(goqu.I("created_at").Asc()).
		Executor().ScanValsContext(ctx, &emails); err != nil {
		return nil, fmt.Errorf("could not list lead emails from pg: %w", err)
	}

	return emails, nil
}

// LeadCount returns the number of archived leads.
func (p *PgSQL) LeadCount(ctx context.Context) (int64, error) {
	count, err := p.Builder.From(leadsTable).CountContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("could not count leads in pg: %w", err)
	}

	return count, nil
}
