package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	playground "github.com/goliatone/go-playground/components/playground"
)

// CatalogInput optionally filters the catalog by category.
type CatalogInput struct {
	Category string
}

// CatalogQuery lists widget definitions.
type CatalogQuery struct {
	catalog playground.Catalog
}

// NewCatalogQuery builds the query.
func NewCatalogQuery(catalog playground.Catalog) *CatalogQuery {
	return &CatalogQuery{catalog: catalog}
}

var _ gocommand.Querier[CatalogInput, []playground.WidgetDefinition] = (*CatalogQuery)(nil)

// Query returns definitions in widget key order.
func (q *CatalogQuery) Query(ctx context.Context, input CatalogInput) ([]playground.WidgetDefinition, error) {
	defs := q.catalog.Definitions()
	if input.Category == "" {
		return defs, nil
	}
	filtered := make([]playground.WidgetDefinition, 0, len(defs))
	for _, def := range defs {
		if def.Category == input.Category {
			filtered = append(filtered, def)
		}
	}
	return filtered, nil
}
