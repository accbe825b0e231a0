package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/epharma-api/internal/domain"
	"github.com/jhoicas/epharma-api/internal/domain/entity"
	"github.com/jhoicas/epharma-api/internal/domain/repository"
)

var _ repository.InventoryItemRepository = (*ItemRepo)(nil)

// ItemRepo implementación en memoria de InventoryItemRepository.
type ItemRepo struct {
	b binding
}

func checkItemUnique(st *state, item *entity.InventoryItem) error {
	for id, other := range st.items {
		if id == item.ID {
			continue
		}
		if other.Name == item.Name && other.Brand == item.Brand {
			return domain.ErrDuplicate
		}
		if item.Barcode != nil && other.Barcode != nil && *item.Barcode == *other.Barcode {
			return domain.ErrDuplicate
		}
	}
	return nil
}

func copyItem(it entity.InventoryItem) *entity.InventoryItem {
	if it.ExpiryDate != nil {
		v := *it.ExpiryDate
		it.ExpiryDate = &v
	}
	if it.Barcode != nil {
		v := *it.Barcode
		it.Barcode = &v
	}
	return &it
}

// Create inserta el item; respeta el ID si viene informado.
func (r *ItemRepo) Create(_ context.Context, item *entity.InventoryItem) error {
	return r.b.do(func(st *state) error {
		if item.ID != 0 {
			if _, exists := st.items[item.ID]; exists {
				return domain.ErrDuplicate
			}
		}
		if err := checkItemUnique(st, item); err != nil {
			return err
		}
		if item.ID == 0 {
			item.ID = st.itemSeq + 1
		}
		if item.ID > st.itemSeq {
			st.itemSeq = item.ID
		}
		if item.CreatedAt.IsZero() {
			item.CreatedAt = nowUTC()
		}
		st.items[item.ID] = *copyItem(*item)
		return nil
	})
}

// GetByID obtiene un item por ID.
func (r *ItemRepo) GetByID(_ context.Context, id int64) (*entity.InventoryItem, error) {
	var out *entity.InventoryItem
	err := r.b.do(func(st *state) error {
		it, ok := st.items[id]
		if !ok {
			return domain.ErrNotFound
		}
		out = copyItem(it)
		return nil
	})
	return out, err
}

// GetByBarcode obtiene un item por código de barras.
func (r *ItemRepo) GetByBarcode(_ context.Context, barcode string) (*entity.InventoryItem, error) {
	var out *entity.InventoryItem
	err := r.b.do(func(st *state) error {
		for _, it := range st.items {
			if it.Barcode != nil && *it.Barcode == barcode {
				out = copyItem(it)
				return nil
			}
		}
		return domain.ErrNotFound
	})
	return out, err
}

// List lista todos los items ordenados por ID.
func (r *ItemRepo) List(ctx context.Context) ([]*entity.InventoryItem, error) {
	return r.filter(func(entity.InventoryItem) bool { return true })
}

// Search lista los items cuyo nombre contiene name.
func (r *ItemRepo) Search(_ context.Context, name string) ([]*entity.InventoryItem, error) {
	return r.filter(func(it entity.InventoryItem) bool { return containsFold(it.Name, name) })
}

func (r *ItemRepo) filter(keep func(entity.InventoryItem) bool) ([]*entity.InventoryItem, error) {
	var list []*entity.InventoryItem
	err := r.b.do(func(st *state) error {
		for _, it := range st.items {
			if keep(it) {
				list = append(list, copyItem(it))
			}
		}
		return nil
	})
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, err
}

// Update reemplaza los campos mutables del item. CreatedAt se conserva.
func (r *ItemRepo) Update(_ context.Context, item *entity.InventoryItem) error {
	return r.b.do(func(st *state) error {
		cur, ok := st.items[item.ID]
		if !ok {
			return domain.ErrNotFound
		}
		if err := checkItemUnique(st, item); err != nil {
			return err
		}
		next := *copyItem(*item)
		next.CreatedAt = cur.CreatedAt
		st.items[item.ID] = next
		return nil
	})
}

// UpdateQuantity fija la existencia del item.
func (r *ItemRepo) UpdateQuantity(_ context.Context, id int64, quantity int) error {
	return r.b.do(func(st *state) error {
		cur, ok := st.items[id]
		if !ok {
			return domain.ErrNotFound
		}
		cur.Quantity = quantity
		st.items[id] = cur
		return nil
	})
}

// UpdateBarcode asigna el código de barras del item.
func (r *ItemRepo) UpdateBarcode(_ context.Context, id int64, barcode string) error {
	return r.b.do(func(st *state) error {
		cur, ok := st.items[id]
		if !ok {
			return domain.ErrNotFound
		}
		cur.Barcode = &barcode
		if err := checkItemUnique(st, &cur); err != nil {
			return err
		}
		st.items[id] = cur
		return nil
	})
}

// Delete elimina el item sin tocar sus movimientos.
func (r *ItemRepo) Delete(_ context.Context, id int64) error {
	return r.b.do(func(st *state) error {
		delete(st.items, id)
		return nil
	})
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
