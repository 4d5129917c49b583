package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"go-web-services/types"
)

// Common errors returned by user repository operations.
var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailExists  = errors.New("email already registered")
)

const usersSchema = `
CREATE TABLE IF NOT EXISTS users (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	name          TEXT NOT NULL,
	email         TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	created_at    TIMESTAMP NOT NULL
);`

// UserRepository defines the operations of the user store. Every
// implementation must issue parameterized statements only; no query ever
// interpolates caller input.
type UserRepository interface {
	Create(ctx context.Context, name, email, passwordHash string) (types.User, error)
	GetByID(ctx context.Context, id int64) (types.User, error)
	GetByEmail(ctx context.Context, email string) (types.User, error)
	List(ctx context.Context) ([]types.User, error)
	Update(ctx context.Context, user types.User) error
	Delete(ctx context.Context, id int64) error
	SearchByNamePrefix(ctx context.Context, prefix string) ([]types.User, error)
}

// userRecord maps a users table row.
type userRecord struct {
	ID           int64     `db:"id"`
	Name         string    `db:"name"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}

func (r *userRecord) toUser() types.User {
	return types.User{
		ID:           r.ID,
		Name:         r.Name,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		CreatedAt:    r.CreatedAt,
	}
}

// OpenUserDB opens the sqlite database at the given path and ensures the
// users schema exists.
func OpenUserDB(path string) (*sqlx.DB, error) {
	const op = "storage.OpenUserDB"

	db, err := sqlx.Connect("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to open database: %w", op, err)
	}

	// A :memory: database exists per connection; keep a single one so every
	// statement sees the same database.
	if strings.Contains(path, ":memory:") {
		db.SetMaxOpenConns(1)
	}

	if _, err := db.Exec(usersSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: failed to ensure schema: %w", op, err)
	}

	return db, nil
}

// SQLUserRepository implements UserRepository on top of sqlx.
type SQLUserRepository struct {
	db *sqlx.DB
}

// NewSQLUserRepository creates and returns a new SQLUserRepository instance.
func NewSQLUserRepository(db *sqlx.DB) *SQLUserRepository {
	return &SQLUserRepository{db: db}
}

func isUniqueViolation(err error) bool {
	var serr *sqlite.Error
	if errors.As(err, &serr) {
		return serr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// Create inserts a new user row and returns the stored user.
func (r *SQLUserRepository) Create(ctx context.Context, name, email, passwordHash string) (types.User, error) {
	const op = "storage.SQLUserRepository.Create"

	query := `INSERT INTO users (name, email, password_hash, created_at) VALUES (?, ?, ?, ?)`

	res, err := r.db.ExecContext(ctx, query, name, email, passwordHash, time.Now().UTC())
	if err != nil {
		if isUniqueViolation(err) {
			return types.User{}, fmt.Errorf("%s: %w", op, ErrEmailExists)
		}
		return types.User{}, fmt.Errorf("%s: failed to insert user: %w", op, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return types.User{}, fmt.Errorf("%s: failed to read inserted id: %w", op, err)
	}

	return r.GetByID(ctx, id)
}

// GetByID retrieves a user by its id.
func (r *SQLUserRepository) GetByID(ctx context.Context, id int64) (types.User, error) {
	const op = "storage.SQLUserRepository.GetByID"

	rec := new(userRecord)
	query := `SELECT id, name, email, password_hash, created_at FROM users WHERE id = ?`

	if err := r.db.GetContext(ctx, rec, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.User{}, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		return types.User{}, fmt.Errorf("%s: failed to get user: %w", op, err)
	}

	return rec.toUser(), nil
}

// GetByEmail retrieves a user by its email address.
func (r *SQLUserRepository) GetByEmail(ctx context.Context, email string) (types.User, error) {
	const op = "storage.SQLUserRepository.GetByEmail"

	rec := new(userRecord)
	query := `SELECT id, name, email, password_hash, created_at FROM users WHERE email = ?`

	if err := r.db.GetContext(ctx, rec, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.User{}, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		return types.User{}, fmt.Errorf("%s: failed to get user: %w", op, err)
	}

	return rec.toUser(), nil
}

// List returns all users ordered by id.
func (r *SQLUserRepository) List(ctx context.Context) ([]types.User, error) {
	const op = "storage.SQLUserRepository.List"

	var recs []userRecord
	query := `SELECT id, name, email, password_hash, created_at FROM users ORDER BY id`

	if err := r.db.SelectContext(ctx, &recs, query); err != nil {
		return nil, fmt.Errorf("%s: failed to list users: %w", op, err)
	}

	users := make([]types.User, 0, len(recs))
	for i := range recs {
		users = append(users, recs[i].toUser())
	}
	return users, nil
}

// Update rewrites the mutable columns of a user row.
func (r *SQLUserRepository) Update(ctx context.Context, user types.User) error {
	const op = "storage.SQLUserRepository.Update"

	query := `UPDATE users SET name = ?, email = ?, password_hash = ? WHERE id = ?`

	res, err := r.db.ExecContext(ctx, query, user.Name, user.Email, user.PasswordHash, user.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%s: %w", op, ErrEmailExists)
		}
		return fmt.Errorf("%s: failed to update user: %w", op, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: failed to read affected rows: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", op, ErrUserNotFound)
	}

	return nil
}

// Delete removes a user row by id.
func (r *SQLUserRepository) Delete(ctx context.Context, id int64) error {
	const op = "storage.SQLUserRepository.Delete"

	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("%s: failed to delete user: %w", op, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: failed to read affected rows: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", op, ErrUserNotFound)
	}

	return nil
}

// SearchByNamePrefix returns users whose name starts with the given prefix,
// ordered by id. The prefix is bound as a statement parameter, never
// concatenated into the query.
func (r *SQLUserRepository) SearchByNamePrefix(ctx context.Context, prefix string) ([]types.User, error) {
	const op = "storage.SQLUserRepository.SearchByNamePrefix"

	var recs []userRecord
	query := `SELECT id, name, email, password_hash, created_at FROM users WHERE name LIKE ? ORDER BY id`

	if err := r.db.SelectContext(ctx, &recs, query, prefix+"%"); err != nil {
		return nil, fmt.Errorf("%s: failed to search users: %w", op, err)
	}

	users := make([]types.User, 0, len(recs))
	for i := range recs {
		users = append(users, recs[i].toUser())
	}
	return users, nil
}
