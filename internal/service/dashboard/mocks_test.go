package dashboard

import (
	"context"
	"sync"
	"time"

	"github.com/heartmarshall/regaudit-backend/internal/domain"
)

var (
	_ regulationRepo = &regulationRepoMock{}
	_ aggregateRepo  = &aggregateRepoMock{}
	_ auditRepo      = &auditRepoMock{}
	_ txManager      = &txManagerMock{}
)

type regulationRepoMock struct {
	CountFunc func(ctx context.Context) (int, error)
}

func (mock *regulationRepoMock) Count(ctx context.Context) (int, error) {
	if mock.CountFunc == nil {
		panic("regulationRepoMock.CountFunc: method is nil but regulationRepo.Count was just called")
	}
	return mock.CountFunc(ctx)
}

type aggregateRepoMock struct {
	CountByConformityFunc func(ctx context.Context, scope domain.AccessScope) ([]domain.ConformityCount, error)
	DomainCoverageFunc    func(ctx context.Context, scope domain.AccessScope) ([]domain.DomainCoverage, error)
}

func (mock *aggregateRepoMock) CountByConformity(ctx context.Context, scope domain.AccessScope) ([]domain.ConformityCount, error) {
	if mock.CountByConformityFunc == nil {
		panic("aggregateRepoMock.CountByConformityFunc: method is nil but aggregateRepo.CountByConformity was just called")
	}
	return mock.CountByConformityFunc(ctx, scope)
}

func (mock *aggregateRepoMock) DomainCoverage(ctx context.Context, scope domain.AccessScope) ([]domain.DomainCoverage, error) {
	if mock.DomainCoverageFunc == nil {
		panic("aggregateRepoMock.DomainCoverageFunc: method is nil but aggregateRepo.DomainCoverage was just called")
	}
	return mock.DomainCoverageFunc(ctx, scope)
}

type auditRepoMock struct {
	ListDueBetweenFunc func(ctx context.Context, scope domain.AccessScope, from, to time.Time) ([]domain.AuditListItem, error)

	calls struct {
		ListDueBetween []struct {
			Ctx   context.Context
			Scope domain.AccessScope
			From  time.Time
			To    time.Time
		}
	}
	lockListDueBetween sync.RWMutex
}

func (mock *auditRepoMock) ListDueBetween(ctx context.Context, scope domain.AccessScope, from, to time.Time) ([]domain.AuditListItem, error) {
	if mock.ListDueBetweenFunc == nil {
		panic("auditRepoMock.ListDueBetweenFunc: method is nil but auditRepo.ListDueBetween was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Scope domain.AccessScope
		From  time.Time
		To    time.Time
	}{Ctx: ctx, Scope: scope, From: from, To: to}
	mock.lockListDueBetween.Lock()
	mock.calls.ListDueBetween = append(mock.calls.ListDueBetween, callInfo)
	mock.lockListDueBetween.Unlock()
	return mock.ListDueBetweenFunc(ctx, scope, from, to)
}

func (mock *auditRepoMock) ListDueBetweenCalls() []struct {
	Ctx   context.Context
	Scope domain.AccessScope
	From  time.Time
	To    time.Time
} {
	mock.lockListDueBetween.RLock()
	calls := mock.calls.ListDueBetween
	mock.lockListDueBetween.RUnlock()
	return calls
}

type txManagerMock struct {
	RunReadOnlyFunc func(ctx context.Context, fn func(ctx context.Context) error) error

	calls struct {
		RunReadOnly []struct {
			Ctx context.Context
		}
	}
	lockRunReadOnly sync.RWMutex
}

func (mock *txManagerMock) RunReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	if mock.RunReadOnlyFunc == nil {
		panic("txManagerMock.RunReadOnlyFunc: method is nil but txManager.RunReadOnly was just called")
	}
	mock.lockRunReadOnly.Lock()
	mock.calls.RunReadOnly = append(mock.calls.RunReadOnly, struct{ Ctx context.Context }{Ctx: ctx})
	mock.lockRunReadOnly.Unlock()
	return mock.RunReadOnlyFunc(ctx, fn)
}

func (mock *txManagerMock) RunReadOnlyCalls() []struct {
	Ctx context.Context
} {
	mock.lockRunReadOnly.RLock()
	calls := mock.calls.RunReadOnly
	mock.lockRunReadOnly.RUnlock()
	return calls
}
