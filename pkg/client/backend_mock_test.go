package client

import (
	"context"
	"sync"
)

var _ Backend = &backendMock{}

type backendMock struct {
	CatalogFunc   func(ctx context.Context, domainName string) ([]Row, error)
	DomainsFunc   func(ctx context.Context) ([]string, error)
	StatsFunc     func(ctx context.Context) (Stats, error)
	SaveAuditFunc func(ctx context.Context, req SaveRequest) (Audit, error)
	BulkSaveFunc  func(ctx context.Context, items []SaveRequest) (BulkResult, error)

	calls struct {
		Catalog   []struct{ DomainName string }
		Domains   int
		Stats     int
		SaveAudit []struct{ Req SaveRequest }
		BulkSave  []struct{ Items []SaveRequest }
	}
	lockCatalog   sync.RWMutex
	lockDomains   sync.RWMutex
	lockStats     sync.RWMutex
	lockSaveAudit sync.RWMutex
	lockBulkSave  sync.RWMutex
}

func (mock *backendMock) Catalog(ctx context.Context, domainName string) ([]Row, error) {
	if mock.CatalogFunc == nil {
		panic("backendMock.CatalogFunc: method is nil but Backend.Catalog was just called")
	}
	mock.lockCatalog.Lock()
	mock.calls.Catalog = append(mock.calls.Catalog, struct{ DomainName string }{domainName})
	mock.lockCatalog.Unlock()
	return mock.CatalogFunc(ctx, domainName)
}

func (mock *backendMock) CatalogCalls() []struct{ DomainName string } {
	mock.lockCatalog.RLock()
	defer mock.lockCatalog.RUnlock()
	return mock.calls.Catalog
}

func (mock *backendMock) Domains(ctx context.Context) ([]string, error) {
	if mock.DomainsFunc == nil {
		panic("backendMock.DomainsFunc: method is nil but Backend.Domains was just called")
	}
	mock.lockDomains.Lock()
	mock.calls.Domains++
	mock.lockDomains.Unlock()
	return mock.DomainsFunc(ctx)
}

func (mock *backendMock) Stats(ctx context.Context) (Stats, error) {
	if mock.StatsFunc == nil {
		panic("backendMock.StatsFunc: method is nil but Backend.Stats was just called")
	}
	mock.lockStats.Lock()
	mock.calls.Stats++
	mock.lockStats.Unlock()
	return mock.StatsFunc(ctx)
}

func (mock *backendMock) SaveAudit(ctx context.Context, req SaveRequest) (Audit, error) {
	if mock.SaveAuditFunc == nil {
		panic("backendMock.SaveAuditFunc: method is nil but Backend.SaveAudit was just called")
	}
	mock.lockSaveAudit.Lock()
	mock.calls.SaveAudit = append(mock.calls.SaveAudit, struct{ Req SaveRequest }{req})
	mock.lockSaveAudit.Unlock()
	return mock.SaveAuditFunc(ctx, req)
}

func (mock *backendMock) SaveAuditCalls() []struct{ Req SaveRequest } {
	mock.lockSaveAudit.RLock()
	defer mock.lockSaveAudit.RUnlock()
	return mock.calls.SaveAudit
}

func (mock *backendMock) BulkSave(ctx context.Context, items []SaveRequest) (BulkResult, error) {
	if mock.BulkSaveFunc == nil {
		panic("backendMock.BulkSaveFunc: method is nil but Backend.BulkSave was just called")
	}
	mock.lockBulkSave.Lock()
	mock.calls.BulkSave = append(mock.calls.BulkSave, struct{ Items []SaveRequest }{items})
	mock.lockBulkSave.Unlock()
	return mock.BulkSaveFunc(ctx, items)
}

func (mock *backendMock) BulkSaveCalls() []struct{ Items []SaveRequest } {
	mock.lockBulkSave.RLock()
	defer mock.lockBulkSave.RUnlock()
	return mock.calls.BulkSave
}
