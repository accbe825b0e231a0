package sqlite

import (
	"context"

	"gorm.io/gorm"

	"github.com/jhoicas/epharma-api/internal/domain"
	"github.com/jhoicas/epharma-api/internal/domain/entity"
	"github.com/jhoicas/epharma-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementa UserRepository con GORM.
type UserRepo struct {
	db    *gorm.DB
	table string
}

// NewUserRepository construye el adaptador.
func NewUserRepository(db *gorm.DB, table string) *UserRepo {
	return &UserRepo{db: db, table: table}
}

func (r *UserRepo) q(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Table(r.table)
}

// Create inserta el usuario. domain.ErrDuplicate si el username ya existe.
func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	m := &userModel{ID: u.ID, Username: u.Username, PasswordHash: u.PasswordHash, CreatedAt: u.CreatedAt}
	if err := r.q(ctx).Create(m).Error; err != nil {
		return mapError("insert user", err)
	}
	u.ID = m.ID
	u.CreatedAt = m.CreatedAt.UTC()
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	var m userModel
	if err := r.q(ctx).Where("id = ?", id).Take(&m).Error; err != nil {
		return nil, mapError("get user", err)
	}
	return m.toEntity(), nil
}

// GetByUsername obtiene un usuario por username.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	var m userModel
	if err := r.q(ctx).Where("username = ?", username).Take(&m).Error; err != nil {
		return nil, mapError("get user by username", err)
	}
	return m.toEntity(), nil
}

// List lista los usuarios por ID.
func (r *UserRepo) List(ctx context.Context) ([]*entity.User, error) {
	var models []userModel
	if err := r.q(ctx).Order("id").Find(&models).Error; err != nil {
		return nil, mapError("list users", err)
	}
	list := make([]*entity.User, 0, len(models))
	for i := range models {
		list = append(list, models[i].toEntity())
	}
	return list, nil
}

// Update cambia username y hash de contraseña.
func (r *UserRepo) Update(ctx context.Context, u *entity.User) error {
	res := r.q(ctx).Where("id = ?", u.ID).Updates(map[string]any{
		"username":      u.Username,
		"password_hash": u.PasswordHash,
	})
	if res.Error != nil {
		return mapError("update user", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el usuario.
func (r *UserRepo) Delete(ctx context.Context, id int64) error {
	return mapError("delete user", r.q(ctx).Where("id = ?", id).Delete(&userModel{}).Error)
}
