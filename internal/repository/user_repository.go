package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/sahanmw/hostel-inventory/internal/model"
)

// ErrUsernameExists is returned by Register and Create when the username is
// already taken. Usernames are matched exactly (case-sensitive).
var ErrUsernameExists = errors.New("username already exists")

// ErrResetCodeInvalid is returned by ConsumeResetCode when the stored code
// does not match, has expired, or was already spent.
var ErrResetCodeInvalid = errors.New("invalid or expired reset code")

// UserRepo provides access to the user_profiles table.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userColumns = "id, username, password_hash, email, first_name, last_name, role, phone_number, reset_code, reset_code_expires, created_at, updated_at"

type rowScanner interface{ Scan(dest ...any) error }

// scanUser reads one user_profiles row, converting nullable columns into
// pointer fields.
func scanUser(rs rowScanner) (model.UserProfile, error) {
	var u model.UserProfile
	var phone, code sql.NullString
	var expires sql.NullTime
	err := rs.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Email, &u.FirstName,
		&u.LastName, &u.Role, &phone, &code, &expires, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return model.UserProfile{}, err
	}
	if phone.Valid {
		v := phone.String
		u.PhoneNumber = &v
	}
	if code.Valid {
		v := code.String
		u.ResetCode = &v
	}
	if expires.Valid {
		v := expires.Time
		u.ResetCodeExpires = &v
	}
	return u, nil
}

// Register inserts a self-registered profile, assigning the role within a
// single transaction: the very first profile in the table becomes Warden,
// everyone after that starts as Pending. The count check locks the scanned
// range so two concurrent first registrations serialize and exactly one
// can observe an empty table. On success u is refreshed from the inserted
// row, including the assigned role and timestamps.
func (r *UserRepo) Register(ctx context.Context, u *model.UserProfile) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var n int
	if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM user_profiles FOR UPDATE").Scan(&n); err != nil {
		return err
	}
	role := model.RolePending
	if n == 0 {
		role = model.RoleWarden
	}

	res, err := tx.ExecContext(ctx,
		"INSERT INTO user_profiles (username, password_hash, email, first_name, last_name, role) VALUES (?,?,?,?,?,?)",
		u.Username, u.PasswordHash, u.Email, u.FirstName, u.LastName, role)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrUsernameExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}

	got, err := scanUser(tx.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM user_profiles WHERE id=?", id))
	if err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	*u = got
	return nil
}

// Create inserts a profile with an explicit role (admin-created accounts).
// On success u is refreshed from the inserted row.
func (r *UserRepo) Create(ctx context.Context, u *model.UserProfile) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO user_profiles (username, password_hash, email, first_name, last_name, role) VALUES (?,?,?,?,?,?)",
		u.Username, u.PasswordHash, u.Email, u.FirstName, u.LastName, u.Role)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrUsernameExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	return r.reload(ctx, uint64(id), u)
}

// GetByID fetches a profile by id. ErrNotFound is returned when the row
// does not exist.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.UserProfile, error) {
	u, err := scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM user_profiles WHERE id=? LIMIT 1", id))
	if err == sql.ErrNoRows {
		return model.UserProfile{}, ErrNotFound
	}
	return u, err
}

// GetByUsername fetches a profile by exact username.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (model.UserProfile, error) {
	u, err := scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM user_profiles WHERE username=? LIMIT 1", username))
	if err == sql.ErrNoRows {
		return model.UserProfile{}, ErrNotFound
	}
	return u, err
}

// GetByEmail fetches a profile by email. Email is not unique in the
// schema; the oldest matching profile wins, mirroring a plain lookup.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.UserProfile, error) {
	u, err := scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM user_profiles WHERE email=? ORDER BY id LIMIT 1", email))
	if err == sql.ErrNoRows {
		return model.UserProfile{}, ErrNotFound
	}
	return u, err
}

// List returns all profiles ordered by id.
func (r *UserRepo) List(ctx context.Context) ([]model.UserProfile, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+userColumns+" FROM user_profiles ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.UserProfile
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// Update writes the mutable profile columns and refreshes u with the
// database-assigned updated_at. Username is immutable through every update
// path, so duplicate-key failures cannot happen here.
func (r *UserRepo) Update(ctx context.Context, u *model.UserProfile) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE user_profiles SET email=?, first_name=?, last_name=?, role=?, phone_number=?, password_hash=? WHERE id=?",
		u.Email, u.FirstName, u.LastName, u.Role, u.PhoneNumber, u.PasswordHash, u.ID)
	if err != nil {
		return err
	}
	return r.reload(ctx, u.ID, u)
}

// Delete removes a profile. ErrNotFound is returned when the id does not
// exist.
func (r *UserRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM user_profiles WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns the number of profiles in the table.
func (r *UserRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM user_profiles").Scan(&n)
	return n, err
}

// SetResetCode stores a password-reset code and its expiry on the profile,
// replacing any previous pending code.
func (r *UserRepo) SetResetCode(ctx context.Context, id uint64, code string, expires time.Time) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE user_profiles SET reset_code=?, reset_code_expires=? WHERE id=?",
		code, expires, id)
	if err != nil {
		return err
	}
	if _, err := res.RowsAffected(); err != nil {
		return err
	}
	return nil
}

// ConsumeResetCode atomically verifies and clears a reset code while
// storing the new password hash. The guard in the WHERE clause makes the
// check-and-clear a single statement: when two calls race on the same
// code, only the first finds a row to update and the second reports
// ErrResetCodeInvalid.
func (r *UserRepo) ConsumeResetCode(ctx context.Context, id uint64, code, passwordHash string) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE user_profiles
		 SET password_hash=?, reset_code=NULL, reset_code_expires=NULL
		 WHERE id=? AND reset_code=? AND reset_code_expires>=?`,
		passwordHash, id, code, time.Now().UTC())
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrResetCodeInvalid
	}
	return nil
}

// reload refreshes u from its row so callers see exactly what the database
// now holds.
func (r *UserRepo) reload(ctx context.Context, id uint64, u *model.UserProfile) error {
	got, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	*u = got
	return nil
}
