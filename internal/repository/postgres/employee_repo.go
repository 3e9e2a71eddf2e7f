package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"companyevents/internal/domain"
)

type employeeRepository struct {
	DB *sql.DB
}

func NewEmployeeRepository(db *sql.DB) domain.EmployeeRepository {
	return &employeeRepository{DB: db}
}

func (r *employeeRepository) Create(ctx context.Context, e *domain.Employee) error {
	query := `
		INSERT INTO employees (name, email, password_hash, salt, role, company_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query,
		e.Name, e.Email, e.PasswordHash, e.Salt, e.Role, e.CompanyID, e.CreatedAt, e.UpdatedAt,
	).Scan(&e.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (r *employeeRepository) GetByID(ctx context.Context, id string) (*domain.Employee, error) {
	query := `
		SELECT id, name, email, password_hash, salt, role, company_id, created_at, updated_at
		FROM employees
		WHERE id = $1
	`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, id))
}

func (r *employeeRepository) GetByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	query := `
		SELECT id, name, email, password_hash, salt, role, company_id, created_at, updated_at
		FROM employees
		WHERE email = $1
	`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, email))
}

func (r *employeeRepository) scanOne(row *sql.Row) (*domain.Employee, error) {
	e := &domain.Employee{}
	err := row.Scan(&e.ID, &e.Name, &e.Email, &e.PasswordHash, &e.Salt, &e.Role, &e.CompanyID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *employeeRepository) List(ctx context.Context, f domain.EmployeeFilter, p domain.PaginationParams) ([]*domain.Employee, int, error) {
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
	if f.Role != "" {
		addCond("role = $%d", f.Role)
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM employees " + where
	if err := r.DB.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT id, name, email, password_hash, salt, role, company_id, created_at, updated_at
		FROM employees
		%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, where, len(args)+1, len(args)+2)
	args = append(args, p.Limit, p.Offset())

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	employees := make([]*domain.Employee, 0)
	for rows.Next() {
		e := &domain.Employee{}
		if err := rows.Scan(&e.ID, &e.Name, &e.Email, &e.PasswordHash, &e.Salt, &e.Role, &e.CompanyID, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, 0, err
		}
		employees = append(employees, e)
	}
	return employees, total, rows.Err()
}

func (r *employeeRepository) ListByCompanyID(ctx context.Context, companyID string) ([]*domain.Employee, error) {
	query := `
		SELECT id, name, email, password_hash, salt, role, company_id, created_at, updated_at
		FROM employees
		WHERE company_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	employees := make([]*domain.Employee, 0)
	for rows.Next() {
		e := &domain.Employee{}
		if err := rows.Scan(&e.ID, &e.Name, &e.Email, &e.PasswordHash, &e.Salt, &e.Role, &e.CompanyID, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

func (r *employeeRepository) Update(ctx context.Context, e *domain.Employee) error {
	query := `
		UPDATE employees
		SET name = $1, email = $2, password_hash = $3, salt = $4, role = $5, updated_at = $6
		WHERE id = $7
	`
	res, err := r.DB.ExecContext(ctx, query, e.Name, e.Email, e.PasswordHash, e.Salt, e.Role, e.UpdatedAt, e.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateEmail
		}
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

func (r *employeeRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM employees WHERE id = $1`, id)
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
