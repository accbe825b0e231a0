package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/epharma-api/internal/domain"
	"github.com/jhoicas/epharma-api/internal/domain/entity"
	"github.com/jhoicas/epharma-api/internal/domain/repository"
)

var _ repository.SalesItemRepository = (*SalesItemRepo)(nil)

// SalesItemRepo implementación en memoria de SalesItemRepository.
type SalesItemRepo struct {
	b binding
}

// Create inserta la venta; respeta el ID si viene informado.
func (r *SalesItemRepo) Create(_ context.Context, s *entity.SalesItem) error {
	return r.b.do(func(st *state) error {
		if s.ID != 0 {
			if _, exists := st.sales[s.ID]; exists {
				return domain.ErrDuplicate
			}
		} else {
			s.ID = st.salesSeq + 1
		}
		if s.ID > st.salesSeq {
			st.salesSeq = s.ID
		}
		if s.CreatedAt.IsZero() {
			s.CreatedAt = nowUTC()
		}
		st.sales[s.ID] = *s
		return nil
	})
}

// GetByID obtiene una venta por ID.
func (r *SalesItemRepo) GetByID(_ context.Context, id int64) (*entity.SalesItem, error) {
	var out *entity.SalesItem
	err := r.b.do(func(st *state) error {
		s, ok := st.sales[id]
		if !ok {
			return domain.ErrNotFound
		}
		out = &s
		return nil
	})
	return out, err
}

// List lista todas las ventas por ID.
func (r *SalesItemRepo) List(_ context.Context) ([]*entity.SalesItem, error) {
	return r.filter(func(entity.SalesItem) bool { return true })
}

// Search lista las ventas cuyo nombre de item contiene itemName.
func (r *SalesItemRepo) Search(_ context.Context, itemName string) ([]*entity.SalesItem, error) {
	return r.filter(func(s entity.SalesItem) bool { return containsFold(s.ItemName, itemName) })
}

func (r *SalesItemRepo) filter(keep func(entity.SalesItem) bool) ([]*entity.SalesItem, error) {
	var list []*entity.SalesItem
	err := r.b.do(func(st *state) error {
		for _, s := range st.sales {
			if keep(s) {
				s := s
				list = append(list, &s)
			}
		}
		return nil
	})
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, err
}
