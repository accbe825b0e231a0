package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/epharma-api/internal/domain"
	"github.com/jhoicas/epharma-api/internal/domain/entity"
	"github.com/jhoicas/epharma-api/internal/domain/repository"
)

var _ repository.StockInRepository = (*StockInRepo)(nil)

// StockInRepo implementación en memoria de StockInRepository.
type StockInRepo struct {
	b binding
}

func nowUTC() time.Time { return time.Now().UTC() }

// Create inserta la entrada; respeta el ID si viene informado.
func (r *StockInRepo) Create(_ context.Context, s *entity.StockIn) error {
	return r.b.do(func(st *state) error {
		if s.ID != 0 {
			if _, exists := st.stockIns[s.ID]; exists {
				return domain.ErrDuplicate
			}
		} else {
			s.ID = st.stockInSeq + 1
		}
		if s.ID > st.stockInSeq {
			st.stockInSeq = s.ID
		}
		if s.CreatedAt.IsZero() {
			s.CreatedAt = nowUTC()
		}
		st.stockIns[s.ID] = *s
		return nil
	})
}

// GetByID obtiene una entrada por ID.
func (r *StockInRepo) GetByID(_ context.Context, id int64) (*entity.StockIn, error) {
	var out *entity.StockIn
	err := r.b.do(func(st *state) error {
		s, ok := st.stockIns[id]
		if !ok {
			return domain.ErrNotFound
		}
		out = &s
		return nil
	})
	return out, err
}

// List lista todas las entradas, más recientes primero.
func (r *StockInRepo) List(_ context.Context) ([]*entity.StockIn, error) {
	return r.filter(func(entity.StockIn) bool { return true })
}

// ListByItem lista las entradas de un item, más recientes primero.
func (r *StockInRepo) ListByItem(_ context.Context, itemID int64) ([]*entity.StockIn, error) {
	return r.filter(func(s entity.StockIn) bool { return s.ItemID == itemID })
}

// Search busca por coincidencia parcial en invoice_no o batch_no.
func (r *StockInRepo) Search(_ context.Context, column, query string) ([]*entity.StockIn, error) {
	switch column {
	case entity.StockInColumnInvoiceNo:
		return r.filter(func(s entity.StockIn) bool { return containsFold(s.InvoiceNo, query) })
	case entity.StockInColumnBatchNo:
		return r.filter(func(s entity.StockIn) bool { return containsFold(s.BatchNo, query) })
	default:
		return nil, domain.ErrInvalidInput
	}
}

func (r *StockInRepo) filter(keep func(entity.StockIn) bool) ([]*entity.StockIn, error) {
	var list []*entity.StockIn
	err := r.b.do(func(st *state) error {
		for _, s := range st.stockIns {
			if keep(s) {
				s := s
				list = append(list, &s)
			}
		}
		return nil
	})
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].ID > list[j].ID
	})
	return list, err
}

// Delete elimina una entrada. domain.ErrNotFound si no existe.
func (r *StockInRepo) Delete(_ context.Context, id int64) error {
	return r.b.do(func(st *state) error {
		if _, ok := st.stockIns[id]; !ok {
			return domain.ErrNotFound
		}
		delete(st.stockIns, id)
		return nil
	})
}
