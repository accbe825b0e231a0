// Package memory implementa los puertos de persistencia en memoria. Cada transacción
// trabaja sobre una copia del estado que solo reemplaza al original al confirmar.
package memory

import (
	"context"
	"sync"

	appinventory "github.com/jhoicas/epharma-api/internal/application/inventory"
	"github.com/jhoicas/epharma-api/internal/domain/entity"
	"github.com/jhoicas/epharma-api/internal/domain/repository"
)

var _ appinventory.TxRunner = (*Store)(nil)

type state struct {
	items    map[int64]entity.InventoryItem
	stockIns map[int64]entity.StockIn
	sales    map[int64]entity.SalesItem
	users    map[int64]entity.User

	itemSeq    int64
	stockInSeq int64
	salesSeq   int64
	userSeq    int64
}

func newState() *state {
	return &state{
		items:    map[int64]entity.InventoryItem{},
		stockIns: map[int64]entity.StockIn{},
		sales:    map[int64]entity.SalesItem{},
		users:    map[int64]entity.User{},
	}
}

func (s *state) clone() *state {
	c := *s
	c.items = make(map[int64]entity.InventoryItem, len(s.items))
	for k, v := range s.items {
		c.items[k] = v
	}
	c.stockIns = make(map[int64]entity.StockIn, len(s.stockIns))
	for k, v := range s.stockIns {
		c.stockIns[k] = v
	}
	c.sales = make(map[int64]entity.SalesItem, len(s.sales))
	for k, v := range s.sales {
		c.sales[k] = v
	}
	c.users = make(map[int64]entity.User, len(s.users))
	for k, v := range s.users {
		c.users[k] = v
	}
	return &c
}

// Store guarda todo el estado del ledger en memoria.
type Store struct {
	mu sync.Mutex
	st *state
}

// NewStore construye un almacén vacío.
func NewStore() *Store {
	return &Store{st: newState()}
}

// Run ejecuta fn sobre una copia del estado; si fn no falla la copia pasa a ser el estado vigente.
func (s *Store) Run(ctx context.Context, fn func(
	itemRepo repository.InventoryItemRepository,
	stockInRepo repository.StockInRepository,
	salesRepo repository.SalesItemRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := s.st.clone()
	b := binding{tx: tx}
	if err := fn(&ItemRepo{b}, &StockInRepo{b}, &SalesItemRepo{b}); err != nil {
		return err
	}
	s.st = tx
	return nil
}

// Items repositorio de items fuera de transacción.
func (s *Store) Items() *ItemRepo { return &ItemRepo{binding{store: s}} }

// StockIns repositorio de entradas fuera de transacción.
func (s *Store) StockIns() *StockInRepo { return &StockInRepo{binding{store: s}} }

// Sales repositorio de ventas fuera de transacción.
func (s *Store) Sales() *SalesItemRepo { return &SalesItemRepo{binding{store: s}} }

// Users repositorio de usuarios.
func (s *Store) Users() *UserRepo { return &UserRepo{binding{store: s}} }

// Reports repositorio del reporte de ventas.
func (s *Store) Reports() *SalesReportRepo { return &SalesReportRepo{binding{store: s}} }

// binding resuelve el estado sobre el que opera un repositorio: la copia de una tx o el vigente.
type binding struct {
	store *Store
	tx    *state
}

func (b binding) do(fn func(st *state) error) error {
	if b.tx != nil {
		return fn(b.tx)
	}
	b.store.mu.Lock()
	defer b.store.mu.Unlock()
	return fn(b.store.st)
}
