package service

import (
	"context"
	"errors"
	"time"

	"github.com/kwamevaughan/richuncle-outlook-sub003/internal/model"
	"github.com/kwamevaughan/richuncle-outlook-sub003/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ── In-memory SessionRepository ──────────────────────────────────────────────

type fakeSessionRepo struct {
	sessions map[uuid.UUID]*model.RegisterSession
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[uuid.UUID]*model.RegisterSession)}
}

func (r *fakeSessionRepo) CreateSession(_ context.Context, s *model.RegisterSession) error {
	// Emulates the partial unique index: one open session per register.
	for _, existing := range r.sessions {
		if existing.RegisterID == s.RegisterID && existing.Status == model.SessionOpen {
			return repository.ErrDuplicateOpen
		}
	}
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.OpenedAt.IsZero() {
		s.OpenedAt = time.Now()
	}
	r.sessions[s.ID] = s
	return nil
}

func (r *fakeSessionRepo) FindSessionByID(_ context.Context, id uuid.UUID) (*model.RegisterSession, error) {
	s, ok := r.sessions[id]
	if !ok {
		return nil, repository.ErrSessionNotFound
	}
	// Detached copy, like a row read: callers mutate their copy and the
	// "stored" state only changes through CloseSession.
	out := *s
	return &out, nil
}

func (r *fakeSessionRepo) FindOpenByRegister(_ context.Context, registerID uuid.UUID) (*model.RegisterSession, error) {
	for _, s := range r.sessions {
		if s.RegisterID == registerID && s.Status == model.SessionOpen {
			return s, nil
		}
	}
	return nil, nil
}

func (r *fakeSessionRepo) CloseSession(_ context.Context, s *model.RegisterSession) error {
	// Conditional like the real UPDATE ... WHERE status = 'open'.
	existing, ok := r.sessions[s.ID]
	if !ok || existing.Status != model.SessionOpen {
		return repository.ErrAlreadyClosed
	}
	stored := *s
	r.sessions[s.ID] = &stored
	return nil
}

func (r *fakeSessionRepo) ListClosed(_ context.Context, page, limit int) ([]model.RegisterSession, int64, error) {
	var closed []model.RegisterSession
	for _, s := range r.sessions {
		if s.Status == model.SessionClosed {
			closed = append(closed, *s)
		}
	}
	total := int64(len(closed))
	start := (page - 1) * limit
	if start >= len(closed) {
		return nil, total, nil
	}
	end := start + limit
	if end > len(closed) {
		end = len(closed)
	}
	return closed[start:end], total, nil
}

var _ repository.SessionRepository = (*fakeSessionRepo)(nil)

// ── In-memory MovementRepository ─────────────────────────────────────────────

type fakeMovementRepo struct {
	movements []model.CashMovement
}

func (r *fakeMovementRepo) CreateMovement(_ context.Context, m *model.CashMovement) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	m.CreatedAt = time.Now()
	r.movements = append(r.movements, *m)
	return nil
}

func (r *fakeMovementRepo) ListMovements(_ context.Context, sessionID uuid.UUID) ([]model.CashMovement, error) {
	var result []model.CashMovement
	for _, m := range r.movements {
		if m.SessionID == sessionID {
			result = append(result, m)
		}
	}
	return result, nil
}

func (r *fakeMovementRepo) SumByType(_ context.Context, sessionID uuid.UUID) (map[string]decimal.Decimal, error) {
	sums := map[string]decimal.Decimal{
		model.MovementCashIn:  decimal.Zero,
		model.MovementCashOut: decimal.Zero,
	}
	for _, m := range r.movements {
		if m.SessionID == sessionID {
			sums[m.Type] = sums[m.Type].Add(m.Amount)
		}
	}
	return sums, nil
}

var _ repository.MovementRepository = (*fakeMovementRepo)(nil)

// ── In-memory OrderRepository ────────────────────────────────────────────────

type fakeOrderRepo struct {
	orders   []model.Order
	items    map[uuid.UUID][]model.OrderItem
	refunds  decimal.Decimal
	expenses decimal.Decimal
	// itemsErr simulates a failed line-item sub-fetch.
	itemsErr error
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{items: make(map[uuid.UUID][]model.OrderItem)}
}

func (r *fakeOrderRepo) ListBySession(_ context.Context, registerID, sessionID uuid.UUID) ([]model.Order, error) {
	var result []model.Order
	for _, o := range r.orders {
		if o.RegisterID == registerID && o.SessionID != nil && *o.SessionID == sessionID {
			result = append(result, o)
		}
	}
	return result, nil
}

func (r *fakeOrderRepo) ListItemsByOrders(_ context.Context, orderIDs []uuid.UUID) (map[uuid.UUID][]model.OrderItem, error) {
	if r.itemsErr != nil {
		return nil, r.itemsErr
	}
	byOrder := make(map[uuid.UUID][]model.OrderItem)
	for _, id := range orderIDs {
		if items, ok := r.items[id]; ok {
			byOrder[id] = items
		}
	}
	return byOrder, nil
}

func (r *fakeOrderRepo) SumRefunds(_ context.Context, _ uuid.UUID) (decimal.Decimal, error) {
	return r.refunds, nil
}

func (r *fakeOrderRepo) SumExpenses(_ context.Context, _ uuid.UUID) (decimal.Decimal, error) {
	return r.expenses, nil
}

var _ repository.OrderRepository = (*fakeOrderRepo)(nil)

// ── In-memory ZReportRepository ──────────────────────────────────────────────

type fakeZReportRepo struct {
	reports map[uuid.UUID]*model.ZReport // keyed by session id
	creates int
}

func newFakeZReportRepo() *fakeZReportRepo {
	return &fakeZReportRepo{reports: make(map[uuid.UUID]*model.ZReport)}
}

func (r *fakeZReportRepo) CreateReport(_ context.Context, z *model.ZReport) error {
	if _, exists := r.reports[z.SessionID]; exists {
		return errors.New("duplicate z-report for session")
	}
	if z.ID == uuid.Nil {
		z.ID = uuid.New()
	}
	z.CreatedAt = time.Now()
	r.reports[z.SessionID] = z
	r.creates++
	return nil
}

func (r *fakeZReportRepo) FindBySession(_ context.Context, sessionID uuid.UUID) (*model.ZReport, error) {
	return r.reports[sessionID], nil
}

var _ repository.ZReportRepository = (*fakeZReportRepo)(nil)

// ── In-memory UserRepository ─────────────────────────────────────────────────

type fakeUserRepo struct {
	names map[uuid.UUID]string
}

func (r *fakeUserRepo) ListUsers(_ context.Context) ([]model.User, error) {
	var users []model.User
	for id, name := range r.names {
		users = append(users, model.User{ID: id, FullName: name, Active: true})
	}
	return users, nil
}

func (r *fakeUserRepo) NamesByIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	names := make(map[uuid.UUID]string)
	for _, id := range ids {
		if name, ok := r.names[id]; ok {
			names[id] = name
		}
	}
	return names, nil
}

var _ repository.UserRepository = (*fakeUserRepo)(nil)

// outageSessionRepo fails every call with the same storage error, as a
// repository would during a database outage.
type outageSessionRepo struct{ err error }

func (r *outageSessionRepo) CreateSession(context.Context, *model.RegisterSession) error {
	return r.err
}

func (r *outageSessionRepo) FindSessionByID(context.Context, uuid.UUID) (*model.RegisterSession, error) {
	return nil, r.err
}

func (r *outageSessionRepo) FindOpenByRegister(context.Context, uuid.UUID) (*model.RegisterSession, error) {
	return nil, r.err
}

func (r *outageSessionRepo) CloseSession(context.Context, *model.RegisterSession) error {
	return r.err
}

func (r *outageSessionRepo) ListClosed(context.Context, int, int) ([]model.RegisterSession, int64, error) {
	return nil, 0, r.err
}

var _ repository.SessionRepository = (*outageSessionRepo)(nil)

// racingSessionRepo simulates losing the close race: reads see the session
// still open, but the conditional write reports it already closed.
type racingSessionRepo struct{ *fakeSessionRepo }

func (r *racingSessionRepo) CloseSession(context.Context, *model.RegisterSession) error {
	return repository.ErrAlreadyClosed
}

var _ repository.SessionRepository = (*racingSessionRepo)(nil)

func money(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

// newTestStack wires the full service graph over in-memory repositories.
func newTestStack() (*fakeSessionRepo, *fakeMovementRepo, *fakeOrderRepo, *fakeZReportRepo, SessionService, LedgerService, ZReportService) {
	sessionRepo := newFakeSessionRepo()
	movementRepo := &fakeMovementRepo{}
	orderRepo := newFakeOrderRepo()
	zreportRepo := newFakeZReportRepo()
	userRepo := &fakeUserRepo{names: map[uuid.UUID]string{}}

	aggregator := NewSalesAggregator(orderRepo)
	ledger := NewLedgerService(sessionRepo, movementRepo, userRepo, decimal.NewFromInt(1000))
	zreports := NewZReportService(zreportRepo, userRepo)
	sessions := NewSessionService(
		sessionRepo, aggregator, ledger, zreports, userRepo,
		nil, decimal.NewFromInt(50), 30*time.Second,
	)
	return sessionRepo, movementRepo, orderRepo, zreportRepo, sessions, ledger, zreports
}
