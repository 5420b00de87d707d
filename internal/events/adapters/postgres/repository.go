package postgres

import (
	"context"
	"database/sql"
	"time"

	"kb-analytics-service/internal/events/core/domain"
	"kb-analytics-service/internal/events/core/ports"
)

type EventRepository struct {
	db DB
}

func NewEventRepository(db DB) *EventRepository {
	return &EventRepository{db: db}
}

var _ ports.EventRepositoryPort = (*EventRepository)(nil)

// SQL templates
const insertEventSQL = `
INSERT INTO event_logs (
    id,
    event_type,
    metadata,
    event_time
) VALUES (
    $1, $2, $3, $4
)
ON CONFLICT (id) DO NOTHING;
`

const listEventsBetweenSQL = `
SELECT id, event_type, metadata, event_time
FROM event_logs
WHERE event_time BETWEEN $1 AND $2
ORDER BY event_time ASC, id ASC;
`

const deleteEventsBeforeSQL = `
DELETE FROM event_logs
WHERE event_time < $1;
`

func (r *EventRepository) InsertEvent(ctx context.Context, e *domain.Event) (bool, error) {
	var metadata any
	if e.Metadata != "" {
		metadata = e.Metadata
	}

	res, err := r.db.ExecContext(ctx, insertEventSQL,
		e.ID,
		e.EventType,
		metadata,
		e.EventTime,
	)
	if err != nil {
		return false, err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	// rows == 1  -> new record
	// rows == 0  -> duplicate id (ON CONFLICT DO NOTHING)
	return rows > 0, nil
}

func (r *EventRepository) ListEventsBetween(ctx context.Context, from, to time.Time) ([]domain.Event, error) {
	rows, err := r.db.QueryContext(ctx, listEventsBetweenSQL, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		var (
			e        domain.Event
			metadata sql.NullString
		)
		if err := rows.Scan(&e.ID, &e.EventType, &metadata, &e.EventTime); err != nil {
			return nil, err
		}
		e.Metadata = metadata.String
		e.EventTime = e.EventTime.UTC()
		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}

func (r *EventRepository) DeleteEventsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, deleteEventsBeforeSQL, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
