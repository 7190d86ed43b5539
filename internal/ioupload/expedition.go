package ioupload

import (
	"context"
	"database/sql"
	"time"

	"github.com/pristineseas/psdb/internal/iodb"
	"github.com/pristineseas/psdb/pkg/db"
	"github.com/pristineseas/psdb/pkg/expeditions"
)

// upsertExpeditionRow keeps the expeditions table in sync with the
// registry entry. Registry metadata wins over whatever is in the
// warehouse.
func upsertExpeditionRow(
	ctx context.Context,
	op db.Operator,
	reg *expeditions.ExpeditionsConfig,
	expeditionID string,
) error {
	var entry *expeditions.ExpeditionConfig
	for i := range reg.Expeditions {
		if reg.Expeditions[i].ID == expeditionID {
			entry = &reg.Expeditions[i]
			break
		}
	}
	if entry == nil {
		return UnknownExpeditionError(expeditionID)
	}

	query := `
		INSERT INTO expeditions
			(id, name, country, vessel, leader, start_date, end_date,
			 updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			country = EXCLUDED.country,
			vessel = EXCLUDED.vessel,
			leader = EXCLUDED.leader,
			start_date = EXCLUDED.start_date,
			end_date = EXCLUDED.end_date,
			updated_at = EXCLUDED.updated_at
	`

	_, err := op.Pool().Exec(ctx, query,
		entry.ID,
		entry.Name,
		entry.Country,
		entry.Vessel,
		entry.Leader,
		nullDate(entry.StartDate),
		nullDate(entry.EndDate),
		time.Now().UTC(),
	)
	if err != nil {
		return iodb.AppendError("expeditions", err)
	}

	return nil
}

func nullDate(s string) sql.NullTime {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t, Valid: true}
}
