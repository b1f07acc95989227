package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	apperrors "github.com/event-announcer/common/errors"
	"github.com/event-announcer/services/announcement-lambda/models"
)

// EventReader is the read side of the announcement list
type EventReader interface {
	RecentEvents(ctx context.Context) ([]models.EventRecord, error)
}

// FixtureReader serves a fixed sample list. It stands in for a datastore.
type FixtureReader struct{}

func NewFixtureReader() *FixtureReader {
	return &FixtureReader{}
}

func (FixtureReader) RecentEvents(ctx context.Context) ([]models.EventRecord, error) {
	return []models.EventRecord{
		{
			ID:          "1",
			Title:       "Welcome Party",
			Description: "Join us for a welcome party for new team members",
			Date:        "2024-12-20",
			Time:        "18:00",
			Location:    "Conference Room A",
			CreatedAt:   "2024-12-15T10:00:00Z",
		},
		{
			ID:          "2",
			Title:       "Team Building Workshop",
			Description: "Interactive workshop to strengthen team collaboration",
			Date:        "2024-12-22",
			Time:        "14:00",
			Location:    "Training Room B",
			CreatedAt:   "2024-12-14T15:30:00Z",
		},
	}, nil
}

// recentEventsLimit caps the list-events result
const recentEventsLimit = 50

// MySQLReader reads announcements from an existing table. It never writes.
//
//	announcements(id, title, description, event_date, event_time, location, created_at)
type MySQLReader struct {
	db *sql.DB
}

func NewMySQLReader(db *sql.DB) *MySQLReader {
	return &MySQLReader{db: db}
}

func (r *MySQLReader) RecentEvents(ctx context.Context) ([]models.EventRecord, error) {
	query := `
		SELECT id, title, description, event_date, event_time, location, created_at
		FROM announcements
		ORDER BY created_at DESC
		LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, recentEventsLimit)
	if err != nil {
		return nil, apperrors.DatabaseError(fmt.Errorf("query announcements: %w", err))
	}
	defer rows.Close()

	var out []models.EventRecord
	for rows.Next() {
		var (
			rec                         models.EventRecord
			id                          int64
			description, eventTime, loc sql.NullString
			eventDate                   time.Time
			createdAt                   time.Time
		)
		if err := rows.Scan(&id, &rec.Title, &description, &eventDate, &eventTime, &loc, &createdAt); err != nil {
			return nil, apperrors.DatabaseError(fmt.Errorf("scan announcement: %w", err))
		}

		rec.ID = fmt.Sprintf("%d", id)
		rec.Description = description.String
		rec.Date = eventDate.Format("2006-01-02")
		rec.Time = eventTime.String
		rec.Location = loc.String
		rec.CreatedAt = createdAt.UTC().Format(time.RFC3339)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.DatabaseError(fmt.Errorf("iterate announcements: %w", err))
	}

	if out == nil {
		out = []models.EventRecord{}
	}
	return out, nil
}
