package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"companyevents/internal/domain"
)

type eventRegistrationRepository struct {
	DB *sql.DB
}

func NewEventRegistrationRepository(db *sql.DB) domain.EventRegistrationRepository {
	return &eventRegistrationRepository{DB: db}
}

// Create inserts a registration. The unique constraint on
// (event_id, employee_id) is the canonical duplicate signal; a violation is
// reported as ErrAlreadyRegistered so concurrent duplicate requests cannot
// produce two rows.
func (r *eventRegistrationRepository) Create(ctx context.Context, reg *domain.EventRegistration) error {
	query := `
		INSERT INTO event_registrations (event_id, employee_id, checked_in, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query,
		reg.EventID, reg.EmployeeID, reg.CheckedIn, reg.CreatedAt, reg.UpdatedAt,
	).Scan(&reg.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyRegistered
		}
		return err
	}
	return nil
}

func (r *eventRegistrationRepository) GetByEventAndEmployee(ctx context.Context, eventID, employeeID string) (*domain.EventRegistration, error) {
	query := `
		SELECT id, event_id, employee_id, checked_in, checked_in_at, created_at, updated_at
		FROM event_registrations
		WHERE event_id = $1 AND employee_id = $2
	`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, eventID, employeeID))
}

func (r *eventRegistrationRepository) GetByIDAndEvent(ctx context.Context, id, eventID string) (*domain.EventRegistration, error) {
	query := `
		SELECT id, event_id, employee_id, checked_in, checked_in_at, created_at, updated_at
		FROM event_registrations
		WHERE id = $1 AND event_id = $2
	`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, id, eventID))
}

func (r *eventRegistrationRepository) scanOne(row *sql.Row) (*domain.EventRegistration, error) {
	reg := &domain.EventRegistration{}
	var checkedInAt sql.NullTime
	err := row.Scan(&reg.ID, &reg.EventID, &reg.EmployeeID, &reg.CheckedIn, &checkedInAt, &reg.CreatedAt, &reg.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if checkedInAt.Valid {
		reg.CheckedInAt = &checkedInAt.Time
	}
	return reg, nil
}

func (r *eventRegistrationRepository) ListByEvent(ctx context.Context, eventID string, checkedIn *bool, p domain.PaginationParams) ([]*domain.EventAttendee, int, error) {
	countQuery := `SELECT COUNT(*) FROM event_registrations WHERE event_id = $1`
	countArgs := []any{eventID}
	if checkedIn != nil {
		countQuery += ` AND checked_in = $2`
		countArgs = append(countArgs, *checkedIn)
	}
	var total int
	if err := r.DB.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT r.id, r.event_id, r.employee_id, r.checked_in, r.checked_in_at, r.created_at, r.updated_at,
		       e.id, e.name, e.email
		FROM event_registrations r
		JOIN employees e ON e.id = r.employee_id
		WHERE r.event_id = $1
	`
	args := []any{eventID}
	if checkedIn != nil {
		query += ` AND r.checked_in = $2`
		args = append(args, *checkedIn)
	}
	query += fmt.Sprintf(`
		ORDER BY r.created_at DESC
		LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, p.Limit, p.Offset())

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	attendees := make([]*domain.EventAttendee, 0)
	for rows.Next() {
		reg := &domain.EventRegistration{}
		profile := &domain.AttendeeProfile{}
		var checkedInAt sql.NullTime
		if err := rows.Scan(
			&reg.ID, &reg.EventID, &reg.EmployeeID, &reg.CheckedIn, &checkedInAt, &reg.CreatedAt, &reg.UpdatedAt,
			&profile.ID, &profile.Name, &profile.Email,
		); err != nil {
			return nil, 0, err
		}
		if checkedInAt.Valid {
			reg.CheckedInAt = &checkedInAt.Time
		}
		attendees = append(attendees, &domain.EventAttendee{Registration: reg, Employee: profile})
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return attendees, total, nil
}

// CheckIn flips the row to checked-in, guarded by checked_in = FALSE so a
// raced second check-in updates zero rows and is reported as
// ErrAlreadyCheckedIn.
func (r *eventRegistrationRepository) CheckIn(ctx context.Context, id string, at time.Time) error {
	query := `
		UPDATE event_registrations
		SET checked_in = TRUE, checked_in_at = $2, updated_at = $2
		WHERE id = $1 AND checked_in = FALSE
	`
	res, err := r.DB.ExecContext(ctx, query, id, at)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrAlreadyCheckedIn
	}
	return nil
}

func (r *eventRegistrationRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM event_registrations WHERE id = $1`, id)
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
