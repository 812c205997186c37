package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/localite/user-service/internal/domain"
	"github.com/localite/user-service/pkg/database"
)

const userColumns = `id, first_name, last_name, middle_name, mobile_number, email, dob,
		intro, address, city_id, pincode, gender, user_name, password,
		profile_pic_location, is_blocked, blocked_on, registered_on, last_login`

// PostgresUserRepository implements domain.UserRepository over users_t.
type PostgresUserRepository struct {
	pool   *database.ConnectionPool
	logger *slog.Logger
}

// NewPostgresUserRepository creates a new user repository.
func NewPostgresUserRepository(pool *database.ConnectionPool, logger *slog.Logger) *PostgresUserRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresUserRepository{pool: pool, logger: logger}
}

func scanUser(row *sql.Row) (*domain.User, error) {
	u := &domain.User{}
	err := row.Scan(
		&u.ID, &u.FirstName, &u.LastName, &u.MiddleName, &u.MobileNumber,
		&u.Email, &u.DOB, &u.Introduction, &u.Address, &u.CityID,
		&u.Pincode, &u.Gender, &u.Username, &u.PasswordHash,
		&u.ProfilePicLocation, &u.IsBlocked, &u.BlockedOn,
		&u.RegisteredOn, &u.LastLoginOn,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNoRows
		}
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	return u, nil
}

// GetByID retrieves a user by id.
func (r *PostgresUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users_t WHERE id = $1`
	return scanUser(r.pool.Querier(ctx).QueryRowContext(ctx, query, id))
}

// GetByUsernameOrEmail retrieves a user whose username or email matches
// name, case-insensitively, in one OR-combined query.
func (r *PostgresUserRepository) GetByUsernameOrEmail(ctx context.Context, name string) (*domain.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users_t
		WHERE lower(email) = lower($1) OR lower(user_name) = lower($1)
	`
	return scanUser(r.pool.Querier(ctx).QueryRowContext(ctx, query, name))
}

// GetAll retrieves every user.
func (r *PostgresUserRepository) GetAll(ctx context.Context) ([]*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users_t ORDER BY id`

	rows, err := r.pool.Querier(ctx).QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("failed to list users", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		u := &domain.User{}
		err := rows.Scan(
			&u.ID, &u.FirstName, &u.LastName, &u.MiddleName, &u.MobileNumber,
			&u.Email, &u.DOB, &u.Introduction, &u.Address, &u.CityID,
			&u.Pincode, &u.Gender, &u.Username, &u.PasswordHash,
			&u.ProfilePicLocation, &u.IsBlocked, &u.BlockedOn,
			&u.RegisteredOn, &u.LastLoginOn,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}

	return users, rows.Err()
}

// Create inserts a new user.
func (r *PostgresUserRepository) Create(ctx context.Context, u *domain.User) error {
	query := `
		INSERT INTO users_t (first_name, last_name, middle_name, mobile_number, email,
			dob, intro, address, city_id, pincode, gender, user_name, password,
			profile_pic_location, is_blocked)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id, registered_on
	`

	err := r.pool.Querier(ctx).QueryRowContext(ctx, query,
		u.FirstName, u.LastName, u.MiddleName, u.MobileNumber, u.Email,
		u.DOB, u.Introduction, u.Address, u.CityID, u.Pincode, u.Gender,
		u.Username, u.PasswordHash, u.ProfilePicLocation, u.IsBlocked,
	).Scan(&u.ID, &u.RegisteredOn)

	if err != nil {
		if isUniqueViolation(err, "") {
			return fmt.Errorf("user already exists: %w", domain.ErrDuplicate)
		}
		r.logger.Error("failed to create user",
			slog.String("username", u.Username),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// Update applies the current field values of u.
func (r *PostgresUserRepository) Update(ctx context.Context, u *domain.User) error {
	query := `
		UPDATE users_t
		SET first_name = $1, last_name = $2, middle_name = $3, mobile_number = $4,
			email = $5, dob = $6, intro = $7, address = $8, city_id = $9,
			pincode = $10, gender = $11, user_name = $12, password = $13,
			profile_pic_location = $14, is_blocked = $15, blocked_on = $16,
			last_login = $17
		WHERE id = $18
	`

	result, err := r.pool.Querier(ctx).ExecContext(ctx, query,
		u.FirstName, u.LastName, u.MiddleName, u.MobileNumber, u.Email,
		u.DOB, u.Introduction, u.Address, u.CityID, u.Pincode, u.Gender,
		u.Username, u.PasswordHash, u.ProfilePicLocation, u.IsBlocked,
		u.BlockedOn, u.LastLoginOn, u.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrNoRows
	}

	return nil
}
