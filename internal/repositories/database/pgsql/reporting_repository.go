package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/cardflow-app/cardflow_backend/internal/core/domain"
	portsrepo "github.com/cardflow-app/cardflow_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// reportingRepository implements the ReportingRepositoryFacade interface
type reportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new reporting repository
func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepositoryFacade {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// Ensure reportingRepository implements portsrepo.ReportingRepositoryFacade
var _ portsrepo.ReportingRepositoryFacade = (*reportingRepository)(nil)

// GetPaymentSummaries aggregates receipts per (calendar day, client). The
// timestamp column holds absolute instants, so the grouping day is derived in
// the reference timezone.
func (r *reportingRepository) GetPaymentSummaries(ctx context.Context, from, to *time.Time, clientID *string, tz string) ([]domain.PaymentSummaryRow, error) {
	query := `
		SELECT
			(t.timestamp AT TIME ZONE $1)::date AS day,
			c.client_id,
			c.name,
			SUM(t.amount_rub) AS total_rub,
			SUM(t.amount_usd) AS total_usd
		FROM transactions t
		JOIN clients c ON t.client_id = c.client_id
	`
	args := []interface{}{tz}
	conditions := ""
	if from != nil {
		args = append(args, *from)
		conditions += fmt.Sprintf(" WHERE t.timestamp >= $%d", len(args))
	}
	if to != nil {
		args = append(args, *to)
		if conditions == "" {
			conditions += fmt.Sprintf(" WHERE t.timestamp < $%d", len(args))
		} else {
			conditions += fmt.Sprintf(" AND t.timestamp < $%d", len(args))
		}
	}
	if clientID != nil {
		args = append(args, *clientID)
		if conditions == "" {
			conditions += fmt.Sprintf(" WHERE t.client_id = $%d", len(args))
		} else {
			conditions += fmt.Sprintf(" AND t.client_id = $%d", len(args))
		}
	}
	query += conditions + `
		GROUP BY day, c.client_id, c.name
		ORDER BY day DESC, c.name;
	`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying payment summaries: %w", err)
	}
	defer rows.Close()

	var result []domain.PaymentSummaryRow
	for rows.Next() {
		var row domain.PaymentSummaryRow
		if err := rows.Scan(
			&row.Date,
			&row.ClientID,
			&row.ClientName,
			&row.AmountRUB,
			&row.AmountUSD,
		); err != nil {
			return nil, fmt.Errorf("error scanning payment summary row: %w", err)
		}
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating payment summary rows: %w", err)
	}

	if len(result) == 0 {
		// Return empty slice instead of nil
		return []domain.PaymentSummaryRow{}, nil
	}

	return result, nil
}
