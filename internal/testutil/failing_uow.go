package testutil

import (
	"context"
	"errors"

	"github.com/jmorand/planline/internal/db"
)

// ErrUoWForced is the error injected by FailingUoW.
var ErrUoWForced = errors.New("unit of work failure injected")

// FailingUoW is a UnitOfWork that always fails without invoking the callback.
// Used to verify that services surface transaction errors.
type FailingUoW struct{}

func (FailingUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	return ErrUoWForced
}
