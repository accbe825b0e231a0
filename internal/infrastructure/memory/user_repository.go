package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/epharma-api/internal/domain"
	"github.com/jhoicas/epharma-api/internal/domain/entity"
	"github.com/jhoicas/epharma-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación en memoria de UserRepository.
type UserRepo struct {
	b binding
}

func usernameTaken(st *state, u *entity.User) bool {
	for id, other := range st.users {
		if id != u.ID && other.Username == u.Username {
			return true
		}
	}
	return false
}

// Create inserta el usuario; username es único.
func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	return r.b.do(func(st *state) error {
		if u.ID != 0 {
			if _, exists := st.users[u.ID]; exists {
				return domain.ErrDuplicate
			}
		}
		if usernameTaken(st, u) {
			return domain.ErrDuplicate
		}
		if u.ID == 0 {
			u.ID = st.userSeq + 1
		}
		if u.ID > st.userSeq {
			st.userSeq = u.ID
		}
		if u.CreatedAt.IsZero() {
			u.CreatedAt = nowUTC()
		}
		st.users[u.ID] = *u
		return nil
	})
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	var out *entity.User
	err := r.b.do(func(st *state) error {
		u, ok := st.users[id]
		if !ok {
			return domain.ErrNotFound
		}
		out = &u
		return nil
	})
	return out, err
}

// GetByUsername obtiene un usuario por nombre de usuario.
func (r *UserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	var out *entity.User
	err := r.b.do(func(st *state) error {
		for _, u := range st.users {
			if u.Username == username {
				u := u
				out = &u
				return nil
			}
		}
		return domain.ErrNotFound
	})
	return out, err
}

// List lista los usuarios por ID.
func (r *UserRepo) List(_ context.Context) ([]*entity.User, error) {
	var list []*entity.User
	err := r.b.do(func(st *state) error {
		for _, u := range st.users {
			u := u
			list = append(list, &u)
		}
		return nil
	})
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, err
}

// Update cambia username y hash de contraseña.
func (r *UserRepo) Update(_ context.Context, u *entity.User) error {
	return r.b.do(func(st *state) error {
		cur, ok := st.users[u.ID]
		if !ok {
			return domain.ErrNotFound
		}
		if usernameTaken(st, u) {
			return domain.ErrDuplicate
		}
		cur.Username = u.Username
		cur.PasswordHash = u.PasswordHash
		st.users[u.ID] = cur
		return nil
	})
}

// Delete elimina el usuario.
func (r *UserRepo) Delete(_ context.Context, id int64) error {
	return r.b.do(func(st *state) error {
		delete(st.users, id)
		return nil
	})
}
