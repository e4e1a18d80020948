package repo

import (
	"context"

	dom "github.com/marquisSam/House-hub/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const userColumns = `id, first_name, last_name, email, phone_number, date_of_birth, gender, address, city, postal_code, country, is_active, created_at, updated_at`

// UserRepo provides user persistence.
type UserRepo interface {
	Create(ctx context.Context, u dom.User) (dom.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (dom.User, error)
	GetByEmail(ctx context.Context, email string) (dom.User, error)
	List(ctx context.Context) ([]dom.User, error)
	// Update writes every business field of u; the service merges first.
	Update(ctx context.Context, u dom.User) (dom.User, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	// EmailExists reports whether another user has this exact email.
	// Pass uuid.Nil to exclude no one.
	EmailExists(ctx context.Context, email string, excludeID uuid.UUID) (bool, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

// PGUserRepo implements UserRepo with Postgres.
type PGUserRepo struct {
	db DB
}

// NewPGUserRepo returns a new PGUserRepo.
func NewPGUserRepo(db DB) *PGUserRepo {
	return &PGUserRepo{db: db}
}

func (r *PGUserRepo) Create(ctx context.Context, u dom.User) (dom.User, error) {
	query := `
		INSERT INTO users (first_name, last_name, email, phone_number, date_of_birth, gender, address, city, postal_code, country)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + userColumns
	row := r.db.QueryRow(ctx, query,
		u.FirstName, u.LastName, u.Email, u.PhoneNumber, u.DateOfBirth,
		u.Gender, u.Address, u.City, u.PostalCode, u.Country,
	)
	return scanUser(row)
}

func (r *PGUserRepo) GetByID(ctx context.Context, id uuid.UUID) (dom.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.QueryRow(ctx, query, id))
}

func (r *PGUserRepo) GetByEmail(ctx context.Context, email string) (dom.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(r.db.QueryRow(ctx, query, email))
}

func (r *PGUserRepo) List(ctx context.Context) ([]dom.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at ASC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []dom.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

func (r *PGUserRepo) Update(ctx context.Context, u dom.User) (dom.User, error) {
	query := `
		UPDATE users
		SET first_name = $2, last_name = $3, email = $4, phone_number = $5,
		    date_of_birth = $6, gender = $7, address = $8, city = $9,
		    postal_code = $10, country = $11, is_active = $12, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + userColumns
	row := r.db.QueryRow(ctx, query,
		u.ID, u.FirstName, u.LastName, u.Email, u.PhoneNumber, u.DateOfBirth,
		u.Gender, u.Address, u.City, u.PostalCode, u.Country, u.IsActive,
	)
	return scanUser(row)
}

func (r *PGUserRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PGUserRepo) EmailExists(ctx context.Context, email string, excludeID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE email = $1 AND id <> $2)`,
		email, excludeID,
	).Scan(&exists)
	return exists, err
}

func (r *PGUserRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}

func scanUser(row pgx.Row) (dom.User, error) {
	var u dom.User
	err := row.Scan(
		&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.PhoneNumber,
		&u.DateOfBirth, &u.Gender, &u.Address, &u.City, &u.PostalCode,
		&u.Country, &u.IsActive, &u.CreatedAt, &u.UpdatedAt,
	)
	return u, err
}

// scanUserAfter scans extra leading columns into extras, then a user row.
func scanUserAfter(row pgx.Row, extras ...any) (dom.User, error) {
	var u dom.User
	dest := append(extras,
		&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.PhoneNumber,
		&u.DateOfBirth, &u.Gender, &u.Address, &u.City, &u.PostalCode,
		&u.Country, &u.IsActive, &u.CreatedAt, &u.UpdatedAt,
	)
	err := row.Scan(dest...)
	return u, err
}

func prefixedUserColumns(alias string) string {
	return alias + `.id, ` + alias + `.first_name, ` + alias + `.last_name, ` + alias + `.email, ` +
		alias + `.phone_number, ` + alias + `.date_of_birth, ` + alias + `.gender, ` + alias + `.address, ` +
		alias + `.city, ` + alias + `.postal_code, ` + alias + `.country, ` + alias + `.is_active, ` +
		alias + `.created_at, ` + alias + `.updated_at`
}
