package ports

import (
	"context"

	"sheettint/domain/table"
)

// TableSourcePort is the external data-loading collaborator: it supplies one
// table per sheet name. Implementations read workbooks, CSV files, or
// database query results.
type TableSourcePort interface {
	Tables(ctx context.Context) (map[string]*table.Table, error)
}
