package repository

import (
    "context"
    "database/sql"
    "errors"
    "strings"

    "github.com/iliyamo/restaurant-table-reservation/internal/model"
    "github.com/iliyamo/restaurant-table-reservation/internal/utils"
)

// UserRepo persists diner accounts in the 'users' table.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

var ErrEmailExists = errors.New("email already exists")

// Create inserts a user and returns its ID.  The password is bcrypt
// hashed with the given cost before storage.
func (r *UserRepo) Create(ctx context.Context, email, password, name, phone string, cost int) (uint64, error) {
    email = strings.ToLower(strings.TrimSpace(email))
    hash, err := utils.HashPassword(password, cost)
    if err != nil {
        return 0, err
    }
    res, err := r.DB.ExecContext(ctx,
        "INSERT INTO users (email, password_hash, name, phone) VALUES (?,?,?,?)",
        email, hash, name, phone)
    if err != nil {
        if isDuplicateKey(err) {
            return 0, ErrEmailExists
        }
        return 0, err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return 0, err
    }
    return uint64(id), nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
    email = strings.ToLower(strings.TrimSpace(email))
    var u model.User
    err := r.DB.QueryRowContext(ctx,
        "SELECT id,email,name,phone,password_hash,is_active,created_at,updated_at FROM users WHERE email=? LIMIT 1",
        email).Scan(&u.ID, &u.Email, &u.Name, &u.Phone, &u.PasswordHash, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
    return u, err
}

// UpdateProfile updates the user's display name and phone.
func (r *UserRepo) UpdateProfile(ctx context.Context, id uint64, name, phone string) error {
    _, err := r.DB.ExecContext(ctx,
        "UPDATE users SET name=?, phone=? WHERE id=?", name, phone, id)
    return err
}

// UpdatePassword replaces the user's password with a fresh bcrypt
// hash computed at the given cost.
func (r *UserRepo) UpdatePassword(ctx context.Context, id uint64, password string, cost int) error {
    hash, err := utils.HashPassword(password, cost)
    if err != nil {
        return err
    }
    _, err = r.DB.ExecContext(ctx,
        "UPDATE users SET password_hash=? WHERE id=?", hash, id)
    return err
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
    var u model.User
    err := r.DB.QueryRowContext(ctx,
        "SELECT id,email,name,phone,password_hash,is_active,created_at,updated_at FROM users WHERE id=? LIMIT 1",
        id).Scan(&u.ID, &u.Email, &u.Name, &u.Phone, &u.PasswordHash, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
    return u, err
}
