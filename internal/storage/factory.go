package storage

import (
	"fmt"
	"path/filepath"

	"github.com/Veraticus/cashflow/internal/common"
	"github.com/Veraticus/cashflow/internal/service"
)

// Open creates the configured Store backend rooted at the data directory.
// The empty backend name means CSV.
func Open(backend, dir string) (service.Store, error) {
	switch backend {
	case "", "csv":
		return NewCSVStore(dir)
	case "sqlite":
		return NewSQLiteStore(filepath.Join(dir, "cashflow.db"))
	default:
		return nil, fmt.Errorf("%w: %q", common.ErrUnknownBackend, backend)
	}
}
