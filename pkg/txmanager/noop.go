package txmanager

import "context"

// NoopManager выполняет функции без транзакции (in-memory хранилище)
type NoopManager struct{}

// NewNoopManager создает NoopManager
func NewNoopManager() *NoopManager {
	return &NoopManager{}
}

func (NoopManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
