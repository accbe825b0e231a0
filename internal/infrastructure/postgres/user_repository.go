package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/epharma-api/internal/domain"
	"github.com/jhoicas/epharma-api/internal/domain/entity"
	"github.com/jhoicas/epharma-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q     Querier
	table string
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(q Querier, table string) *UserRepo {
	return &UserRepo{q: q, table: table}
}

// Create persiste un nuevo usuario. domain.ErrDuplicate si el username ya existe.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (username, password_hash, created_at)
		VALUES ($1, $2, COALESCE($3, now()))
		RETURNING id, created_at`, r.table)
	err := r.q.QueryRow(ctx, query, user.Username, user.PasswordHash, nullTime(user.CreatedAt)).
		Scan(&user.ID, &user.CreatedAt)
	return mapError("insert user", err)
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	return r.one(ctx, "get user", fmt.Sprintf(`SELECT id, username, password_hash, created_at FROM %s WHERE id = $1`, r.table), id)
}

// GetByUsername obtiene un usuario por username.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.one(ctx, "get user by username",
		fmt.Sprintf(`SELECT id, username, password_hash, created_at FROM %s WHERE username = $1`, r.table), username)
}

// List lista los usuarios por ID.
func (r *UserRepo) List(ctx context.Context) ([]*entity.User, error) {
	rows, err := r.q.Query(ctx, fmt.Sprintf(`SELECT id, username, password_hash, created_at FROM %s ORDER BY id`, r.table))
	if err != nil {
		return nil, mapError("list users", err)
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		var u entity.User
		if err := rows.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt); err != nil {
			return nil, mapError("list users", err)
		}
		list = append(list, &u)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("list users", err)
	}
	return list, nil
}

// Update cambia username y hash de contraseña.
func (r *UserRepo) Update(ctx context.Context, user *entity.User) error {
	cmd, err := r.q.Exec(ctx, fmt.Sprintf(`UPDATE %s SET username = $2, password_hash = $3 WHERE id = $1`, r.table),
		user.ID, user.Username, user.PasswordHash)
	if err != nil {
		return mapError("update user", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el usuario.
func (r *UserRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.q.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.table), id)
	return mapError("delete user", err)
}

func (r *UserRepo) one(ctx context.Context, op, query string, args ...any) (*entity.User, error) {
	var u entity.User
	if err := r.q.QueryRow(ctx, query, args...).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt); err != nil {
		return nil, mapError(op, err)
	}
	return &u, nil
}
