package till

import (
	"context"
	"sync"
)

// Registry mantiene una sesión de caja por cajero. La primera vez que un
// cajero la pide se crea y se recupera el estado persistido.
type Registry struct {
	mu       sync.Mutex
	sesiones map[string]*Service

	catalog CatalogStore
	ledger  SalesLedger
	states  StateStore
}

func NewRegistry(catalog CatalogStore, ledger SalesLedger, states StateStore) *Registry {
	return &Registry{
		sesiones: make(map[string]*Service),
		catalog:  catalog,
		ledger:   ledger,
		states:   states,
	}
}

func (r *Registry) ForCashier(ctx context.Context, usuario string) (*Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.sesiones[usuario]; ok {
		return s, nil
	}

	s := NewService(usuario, r.catalog, r.ledger, r.states)
	if err := s.Resume(ctx); err != nil {
		return nil, err
	}
	r.sesiones[usuario] = s
	return s, nil
}
