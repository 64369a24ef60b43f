package memory

import "context"

type TxManager struct {
	store *Store
}

func NewTxManager(store *Store) TxManager {
	return TxManager{store: store}
}

// RunInTx serializes fn against every other store access and undoes its
// writes when fn fails. Nested calls join the outer transaction.
func (t TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if tx, ok := ctx.Value(txKey).(*txState); ok && tx != nil {
		return fn(ctx)
	}
	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	tx := &txState{}
	if err := fn(context.WithValue(ctx, txKey, tx)); err != nil {
		tx.rollback()
		return err
	}
	return nil
}
