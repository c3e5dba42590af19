package repository

import (
	"context"
	"sort"

	"prevently/internal/docstore"
	"prevently/internal/model"
)

type DomainRepository struct {
	store docstore.Store
}

func NewDomainRepository(store docstore.Store) *DomainRepository {
	return &DomainRepository{store: store}
}

func (r *DomainRepository) GetAllDomains(ctx context.Context) ([]model.Domain, error) {
	docs, err := r.store.Query(ctx, docstore.NewQuery(model.DomainsCollection))
	if err != nil {
		return nil, err
	}

	domains := make([]model.Domain, 0, len(docs))
	for _, d := range docs {
		domains = append(domains, model.NewDomain(d.ID, d.Data))
	}

	sort.Slice(domains, func(i, j int) bool {
		return domains[i].Name < domains[j].Name
	})

	return domains, nil
}

// Ping performs the cheapest read available against the store.
func (r *DomainRepository) Ping(ctx context.Context) error {
	_, err := r.store.Query(ctx, docstore.NewQuery(model.DomainsCollection).WithLimit(1))
	return err
}
