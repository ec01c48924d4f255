package client

import (
	"context"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	defaultDebounce = 300 * time.Millisecond
	defaultErrorTTL = 5 * time.Second
)

// Backend is the subset of the API a SyncCache needs. *Client implements it.
type Backend interface {
	Catalog(ctx context.Context, domainName string) ([]Row, error)
	Domains(ctx context.Context) ([]string, error)
	Stats(ctx context.Context) (Stats, error)
	SaveAudit(ctx context.Context, req SaveRequest) (Audit, error)
	BulkSave(ctx context.Context, items []SaveRequest) (BulkResult, error)
}

var _ Backend = (*Client)(nil)

// State is the refresh lifecycle of a SyncCache.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateReady
	StatePartiallyFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StatePartiallyFailed:
		return "partially_failed"
	default:
		return "unknown"
	}
}

// Part names one of the independently fetched pieces of a refresh.
type Part string

const (
	PartCatalog Part = "catalog"
	PartStats   Part = "stats"
	PartDomains Part = "domains"
)

var allParts = []Part{PartCatalog, PartStats, PartDomains}

// Snapshot is an immutable view of the cache. Slices must not be modified.
type Snapshot struct {
	// Version increases with every published change.
	Version uint64
	State   State
	Saving  bool

	Rows     []Row
	Visible  []Row
	Stats    Stats
	HasStats bool
	Domains  []string

	// Search is the applied term, which lags the typed one by the debounce
	// interval.
	Search string
	Domain string
	Err    error
}

// CacheOption configures a SyncCache.
type CacheOption func(*SyncCache)

// WithDebounce sets how long the search term must be stable before the
// visible rows are recomputed.
func WithDebounce(d time.Duration) CacheOption {
	return func(c *SyncCache) { c.debounce = d }
}

// WithErrorTTL sets how long a surfaced error stays in the snapshot.
func WithErrorTTL(d time.Duration) CacheOption {
	return func(c *SyncCache) { c.errorTTL = d }
}

// SyncCache keeps the caller's merged catalog view, stats, and domains in
// sync with the server and derives the filtered rows from them.
//
// Saves are pessimistic: local rows change only after the server confirms.
// At most one save (single or bulk) runs at a time per cache. After Close,
// late responses are discarded.
type SyncCache struct {
	api      Backend
	debounce time.Duration
	errorTTL time.Duration

	life   context.Context
	cancel context.CancelFunc

	saving atomic.Bool

	mu            sync.Mutex
	closed        bool
	state         State
	rows          []Row
	visible       []Row
	stats         Stats
	hasStats      bool
	domains       []string
	search        string
	pendingSearch string
	searchGen     uint64
	searchTimer   *time.Timer
	domainFilter  string
	lastErr       error
	errGen        uint64
	errTimer      *time.Timer
	version       uint64
	recomputes    int
	subs          map[int]func(Snapshot)
	nextSub       int
}

// NewSyncCache creates an idle cache on top of api. Call Refresh to load it
// and Close to release its timers.
func NewSyncCache(api Backend, opts ...CacheOption) *SyncCache {
	c := &SyncCache{
		api:      api,
		debounce: defaultDebounce,
		errorTTL: defaultErrorTTL,
		subs:     make(map[int]func(Snapshot)),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.life, c.cancel = context.WithCancel(context.Background())
	return c
}

// Snapshot returns the current state.
func (c *SyncCache) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Subscribe registers fn to receive a Snapshot after every change. fn runs
// on the goroutine that made the change and must not block. Snapshots from
// concurrent changes may arrive out of order; compare Version.
func (c *SyncCache) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

// Refresh fetches catalog, stats, and domains concurrently. A failed part
// keeps its previous data; if any part fails the state becomes
// StatePartiallyFailed and a *PartialRefreshError is returned.
func (c *SyncCache) Refresh(ctx context.Context) error {
	ctx, release := c.bind(ctx)
	defer release()

	if !c.update(func() { c.state = StateLoading }) {
		return ErrClosed
	}

	var (
		rows                     []Row
		stats                    Stats
		domains                  []string
		catErr, statsErr, domErr error
		g                        errgroup.Group
	)
	g.Go(func() error {
		rows, catErr = c.api.Catalog(ctx, "")
		return nil
	})
	g.Go(func() error {
		stats, statsErr = c.api.Stats(ctx)
		return nil
	})
	g.Go(func() error {
		domains, domErr = c.api.Domains(ctx)
		return nil
	})
	_ = g.Wait()

	failed := make(map[Part]error)
	ok := c.update(func() {
		if catErr == nil {
			c.rows = rows
			c.recomputeLocked()
		} else {
			failed[PartCatalog] = catErr
		}
		if statsErr == nil {
			c.stats, c.hasStats = stats, true
		} else {
			failed[PartStats] = statsErr
		}
		if domErr == nil {
			c.domains = domains
		} else {
			failed[PartDomains] = domErr
		}

		if len(failed) == 0 {
			c.state = StateReady
			return
		}
		c.state = StatePartiallyFailed
		c.setErrLocked(&PartialRefreshError{Failed: failed})
	})
	if !ok {
		return ErrClosed
	}
	if len(failed) > 0 {
		return &PartialRefreshError{Failed: failed}
	}
	return nil
}

// SetSearch changes the search term. The visible rows are recomputed once
// the term has been stable for the debounce interval; each call restarts
// the wait.
func (c *SyncCache) SetSearch(term string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}

	c.pendingSearch = term
	c.searchGen++
	gen := c.searchGen
	if c.searchTimer != nil {
		c.searchTimer.Stop()
	}
	c.searchTimer = time.AfterFunc(c.debounce, func() { c.applySearch(gen) })
}

func (c *SyncCache) applySearch(gen uint64) {
	c.update(func() {
		if gen != c.searchGen {
			return
		}
		c.search = c.pendingSearch
		c.recomputeLocked()
	})
}

// SetDomain restricts the visible rows to one domain; empty clears it. It
// applies immediately.
func (c *SyncCache) SetDomain(domainName string) {
	c.update(func() {
		c.domainFilter = domainName
		c.recomputeLocked()
	})
}

// SaveAudit trims fields and saves them for regulationID. It fails with
// ErrSaveInFlight without contacting the server while another save is
// running, and with a *ValidationError when conformity is empty. The row is
// updated from the server's response only.
func (c *SyncCache) SaveAudit(ctx context.Context, regulationID int64, fields AuditFields) (Audit, error) {
	if err := c.beginSave(); err != nil {
		return Audit{}, err
	}
	defer c.endSave()

	fields = fields.trimmed()
	if fields.Conformity == "" {
		err := &ValidationError{Errors: []FieldError{{Field: "conformity", Message: "required"}}}
		c.surface(err)
		return Audit{}, err
	}

	ctx, release := c.bind(ctx)
	defer release()

	saved, err := c.api.SaveAudit(ctx, SaveRequest{RegulationID: regulationID, AuditFields: fields})
	if err != nil {
		if c.isClosed() {
			return Audit{}, ErrClosed
		}
		c.surface(err)
		return Audit{}, err
	}

	if !c.update(func() { c.reconcileLocked(saved) }) {
		return Audit{}, ErrClosed
	}
	return saved, nil
}

// BulkSave sends items as one batch under the same guard as SaveAudit and
// reconciles every succeeded record. Item failures are in the result.
func (c *SyncCache) BulkSave(ctx context.Context, items []SaveRequest) (BulkResult, error) {
	if err := c.beginSave(); err != nil {
		return BulkResult{}, err
	}
	defer c.endSave()

	reqs := make([]SaveRequest, len(items))
	for i, it := range items {
		reqs[i] = SaveRequest{RegulationID: it.RegulationID, AuditFields: it.AuditFields.trimmed()}
	}

	ctx, release := c.bind(ctx)
	defer release()

	res, err := c.api.BulkSave(ctx, reqs)
	if err != nil {
		if c.isClosed() {
			return BulkResult{}, ErrClosed
		}
		c.surface(err)
		return BulkResult{}, err
	}

	ok := c.update(func() {
		for _, a := range res.Succeeded {
			c.reconcileLocked(a)
		}
	})
	if !ok {
		return BulkResult{}, ErrClosed
	}
	return res, nil
}

// Close cancels in-flight requests, stops timers, and drops subscribers.
// It is safe to call more than once.
func (c *SyncCache) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	if c.searchTimer != nil {
		c.searchTimer.Stop()
	}
	if c.errTimer != nil {
		c.errTimer.Stop()
	}
	clear(c.subs)
	c.mu.Unlock()

	c.cancel()
}

func (c *SyncCache) beginSave() error {
	if c.isClosed() {
		return ErrClosed
	}
	if !c.saving.CompareAndSwap(false, true) {
		return ErrSaveInFlight
	}
	c.update(func() {})
	return nil
}

func (c *SyncCache) endSave() {
	c.saving.Store(false)
	c.update(func() {})
}

func (c *SyncCache) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// bind ties ctx to the cache lifetime so Close cancels it.
func (c *SyncCache) bind(ctx context.Context) (context.Context, func()) {
	ctx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(c.life, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}

// update applies fn under the lock and publishes the result. It returns
// false, without calling fn, once the cache is closed.
func (c *SyncCache) update(fn func()) bool {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return false
	}
	fn()
	c.version++
	snap := c.snapshotLocked()
	subs := make([]func(Snapshot), 0, len(c.subs))
	for _, s := range c.subs {
		subs = append(subs, s)
	}
	c.mu.Unlock()

	for _, s := range subs {
		s(snap)
	}
	return true
}

func (c *SyncCache) surface(err error) {
	c.update(func() { c.setErrLocked(err) })
}

func (c *SyncCache) setErrLocked(err error) {
	c.lastErr = err
	c.errGen++
	gen := c.errGen
	if c.errTimer != nil {
		c.errTimer.Stop()
	}
	c.errTimer = time.AfterFunc(c.errorTTL, func() {
		c.update(func() {
			if gen == c.errGen {
				c.lastErr = nil
			}
		})
	})
}

func (c *SyncCache) reconcileLocked(a Audit) {
	i := slices.IndexFunc(c.rows, func(r Row) bool { return r.ID == a.RegulationID })
	if i < 0 {
		return
	}
	rows := slices.Clone(c.rows)
	saved := a
	rows[i].Audit = &saved
	c.rows = rows
	c.recomputeLocked()
}

func (c *SyncCache) recomputeLocked() {
	c.visible = filterRows(c.rows, c.search, c.domainFilter)
	c.recomputes++
}

func (c *SyncCache) snapshotLocked() Snapshot {
	return Snapshot{
		Version:  c.version,
		State:    c.state,
		Saving:   c.saving.Load(),
		Rows:     c.rows,
		Visible:  c.visible,
		Stats:    c.stats,
		HasStats: c.hasStats,
		Domains:  c.domains,
		Search:   c.search,
		Domain:   c.domainFilter,
		Err:      c.lastErr,
	}
}
