package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"companyevents/internal/domain"
)

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{DB: db}
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (title, description, date, capacity, company_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		e.Title, e.Description, e.Date, e.Capacity, e.CompanyID, e.CreatedAt, e.UpdatedAt,
	).Scan(&e.ID)
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `
		SELECT id, title, description, date, capacity, company_id, created_at, updated_at
		FROM events
		WHERE id = $1
	`
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func scanEvent(row *sql.Row) (*domain.Event, error) {
	e := &domain.Event{}
	var descNull sql.NullString
	var capNull sql.NullInt64
	err := row.Scan(&e.ID, &e.Title, &descNull, &e.Date, &capNull, &e.CompanyID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if descNull.Valid {
		e.Description = &descNull.String
	}
	if capNull.Valid {
		capacity := int(capNull.Int64)
		e.Capacity = &capacity
	}
	return e, nil
}

func (r *eventRepository) List(ctx context.Context, f domain.EventFilter, p domain.PaginationParams) ([]*domain.Event, int, error) {
	where := ""
	args := []any{}
	addCond := func(cond string, val any) {
		args = append(args, val)
		if where == "" {
			where = "WHERE "
		} else {
			where += " AND "
		}
		where += fmt.Sprintf(cond, len(args))
	}
	if f.CompanyID != "" {
		addCond("company_id = $%d", f.CompanyID)
	}
	if f.DateFrom != nil {
		addCond("date >= $%d", *f.DateFrom)
	}
	if f.DateTo != nil {
		addCond("date <= $%d", *f.DateTo)
	}
	if f.Upcoming {
		addCond("date >= $%d", time.Now())
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM events " + where
	if err := r.DB.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT id, title, description, date, capacity, company_id, created_at, updated_at
		FROM events
		%s
		ORDER BY date ASC
		LIMIT $%d OFFSET $%d
	`, where, len(args)+1, len(args)+2)
	args = append(args, p.Limit, p.Offset())

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	events, err := collectEvents(rows)
	if err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

func (r *eventRepository) ListByCompanyID(ctx context.Context, companyID string) ([]*domain.Event, error) {
	query := `
		SELECT id, title, description, date, capacity, company_id, created_at, updated_at
		FROM events
		WHERE company_id = $1
		ORDER BY date ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEvents(rows)
}

func collectEvents(rows *sql.Rows) ([]*domain.Event, error) {
	events := make([]*domain.Event, 0)
	for rows.Next() {
		e := &domain.Event{}
		var descNull sql.NullString
		var capNull sql.NullInt64
		if err := rows.Scan(&e.ID, &e.Title, &descNull, &e.Date, &capNull, &e.CompanyID, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		if descNull.Valid {
			e.Description = &descNull.String
		}
		if capNull.Valid {
			capacity := int(capNull.Int64)
			e.Capacity = &capacity
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepository) Update(ctx context.Context, e *domain.Event) error {
	query := `
		UPDATE events
		SET title = $1, description = $2, date = $3, capacity = $4, updated_at = $5
		WHERE id = $6
	`
	res, err := r.DB.ExecContext(ctx, query, e.Title, e.Description, e.Date, e.Capacity, e.UpdatedAt, e.ID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
