package unitofwork

import "context"

// RepositoryFactory hands out fresh units of work. Services hold the
// factory and open one unit per use case invocation.
type RepositoryFactory interface {
	NewUnitOfWork(ctx context.Context) UnitOfWork
}
