package audit

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/heartmarshall/regaudit-backend/internal/domain"
)

var _ auditRepo = &auditRepoMock{}

type auditRepoMock struct {
	UpsertFunc          func(ctx context.Context, regulationID int64, fields domain.AuditFields, editor uuid.UUID) (domain.AuditRecord, domain.SaveOutcome, error)
	GetByRegulationFunc func(ctx context.Context, scope domain.AccessScope, regulationID int64) (domain.AuditListItem, error)
	ListFunc            func(ctx context.Context, scope domain.AccessScope, filter domain.AuditFilter, page domain.Page) ([]domain.AuditListItem, int, error)
	ListAllFunc         func(ctx context.Context, scope domain.AccessScope, filter domain.AuditFilter) ([]domain.AuditListItem, error)

	calls struct {
		Upsert []struct {
			Ctx          context.Context
			RegulationID int64
			Fields       domain.AuditFields
			Editor       uuid.UUID
		}
		GetByRegulation []struct {
			Ctx          context.Context
			Scope        domain.AccessScope
			RegulationID int64
		}
		List []struct {
			Ctx    context.Context
			Scope  domain.AccessScope
			Filter domain.AuditFilter
			Page   domain.Page
		}
		ListAll []struct {
			Ctx    context.Context
			Scope  domain.AccessScope
			Filter domain.AuditFilter
		}
	}
	lockUpsert          sync.RWMutex
	lockGetByRegulation sync.RWMutex
	lockList            sync.RWMutex
	lockListAll         sync.RWMutex
}

func (mock *auditRepoMock) Upsert(ctx context.Context, regulationID int64, fields domain.AuditFields, editor uuid.UUID) (domain.AuditRecord, domain.SaveOutcome, error) {
	if mock.UpsertFunc == nil {
		panic("auditRepoMock.UpsertFunc: method is nil but auditRepo.Upsert was just called")
	}
	callInfo := struct {
		Ctx          context.Context
		RegulationID int64
		Fields       domain.AuditFields
		Editor       uuid.UUID
	}{Ctx: ctx, RegulationID: regulationID, Fields: fields, Editor: editor}
	mock.lockUpsert.Lock()
	mock.calls.Upsert = append(mock.calls.Upsert, callInfo)
	mock.lockUpsert.Unlock()
	return mock.UpsertFunc(ctx, regulationID, fields, editor)
}

func (mock *auditRepoMock) UpsertCalls() []struct {
	Ctx          context.Context
	RegulationID int64
	Fields       domain.AuditFields
	Editor       uuid.UUID
} {
	mock.lockUpsert.RLock()
	calls := mock.calls.Upsert
	mock.lockUpsert.RUnlock()
	return calls
}

func (mock *auditRepoMock) GetByRegulation(ctx context.Context, scope domain.AccessScope, regulationID int64) (domain.AuditListItem, error) {
	if mock.GetByRegulationFunc == nil {
		panic("auditRepoMock.GetByRegulationFunc: method is nil but auditRepo.GetByRegulation was just called")
	}
	callInfo := struct {
		Ctx          context.Context
		Scope        domain.AccessScope
		RegulationID int64
	}{Ctx: ctx, Scope: scope, RegulationID: regulationID}
	mock.lockGetByRegulation.Lock()
	mock.calls.GetByRegulation = append(mock.calls.GetByRegulation, callInfo)
	mock.lockGetByRegulation.Unlock()
	return mock.GetByRegulationFunc(ctx, scope, regulationID)
}

func (mock *auditRepoMock) GetByRegulationCalls() []struct {
	Ctx          context.Context
	Scope        domain.AccessScope
	RegulationID int64
} {
	mock.lockGetByRegulation.RLock()
	calls := mock.calls.GetByRegulation
	mock.lockGetByRegulation.RUnlock()
	return calls
}

func (mock *auditRepoMock) List(ctx context.Context, scope domain.AccessScope, filter domain.AuditFilter, page domain.Page) ([]domain.AuditListItem, int, error) {
	if mock.ListFunc == nil {
		panic("auditRepoMock.ListFunc: method is nil but auditRepo.List was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Scope  domain.AccessScope
		Filter domain.AuditFilter
		Page   domain.Page
	}{Ctx: ctx, Scope: scope, Filter: filter, Page: page}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, scope, filter, page)
}

func (mock *auditRepoMock) ListCalls() []struct {
	Ctx    context.Context
	Scope  domain.AccessScope
	Filter domain.AuditFilter
	Page   domain.Page
} {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}

func (mock *auditRepoMock) ListAll(ctx context.Context, scope domain.AccessScope, filter domain.AuditFilter) ([]domain.AuditListItem, error) {
	if mock.ListAllFunc == nil {
		panic("auditRepoMock.ListAllFunc: method is nil but auditRepo.ListAll was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Scope  domain.AccessScope
		Filter domain.AuditFilter
	}{Ctx: ctx, Scope: scope, Filter: filter}
	mock.lockListAll.Lock()
	mock.calls.ListAll = append(mock.calls.ListAll, callInfo)
	mock.lockListAll.Unlock()
	return mock.ListAllFunc(ctx, scope, filter)
}

func (mock *auditRepoMock) ListAllCalls() []struct {
	Ctx    context.Context
	Scope  domain.AccessScope
	Filter domain.AuditFilter
} {
	mock.lockListAll.RLock()
	calls := mock.calls.ListAll
	mock.lockListAll.RUnlock()
	return calls
}
