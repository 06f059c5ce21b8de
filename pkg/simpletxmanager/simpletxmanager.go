// Package simpletxmanager transaction manager над чистым *sql.DB
// для конфигураций с выключенными метриками.
package simpletxmanager

import (
	"context"
	"database/sql"

	"github.com/m1shk4/AquaWash-BookingService/pkg/dbmetrics"
	"github.com/m1shk4/AquaWash-BookingService/pkg/txmanager"
)

// sqlDBAdapter приводит *sql.DB к интерфейсу txmanager.TxBeginner
type sqlDBAdapter struct {
	db *sql.DB
}

func (a *sqlDBAdapter) BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	return a.db.BeginTx(ctx, opts)
}

// NewTransactionManager создает transaction manager над *sql.DB без метрик.
// Логика повторов и изоляции идентична pkg/txmanager.
func NewTransactionManager(db *sql.DB) *txmanager.TransactionManager {
	return txmanager.NewTransactionManager(&sqlDBAdapter{db: db})
}
