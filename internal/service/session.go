package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/kwamevaughan/richuncle-outlook-sub003/internal/apierror"
	"github.com/kwamevaughan/richuncle-outlook-sub003/internal/dto"
	"github.com/kwamevaughan/richuncle-outlook-sub003/internal/model"
	"github.com/kwamevaughan/richuncle-outlook-sub003/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// SessionService owns the register-session state machine: none → open →
// closed. There is no reopen transition — a register starts over with a
// fresh session and closed ones are retained for history.
type SessionService interface {
	Open(ctx context.Context, userID uuid.UUID, req dto.OpenSessionRequest) (*dto.SessionResponse, error)
	Close(ctx context.Context, sessionID uuid.UUID, req dto.CloseSessionRequest) (*dto.CloseSessionResponse, error)
	// CurrentOpen returns (nil, nil) when the register has no open session.
	CurrentOpen(ctx context.Context, registerID uuid.UUID) (*dto.SessionResponse, error)
	Get(ctx context.Context, sessionID uuid.UUID) (*dto.SessionResponse, error)
	Summary(ctx context.Context, sessionID uuid.UUID) (*dto.SalesSummary, error)
	History(ctx context.Context, page, limit int) (*dto.SessionListResponse, error)
}

type sessionService struct {
	sessions   repository.SessionRepository
	aggregator SalesAggregator
	ledger     LedgerService
	zreports   ZReportService
	users      repository.UserRepository
	rdb        *redis.Client // nil in unit tests
	// largeDiscrepancy is the close-time warning threshold for |over/short|.
	largeDiscrepancy decimal.Decimal
	cacheTTL         time.Duration
}

func NewSessionService(
	sessions repository.SessionRepository,
	aggregator SalesAggregator,
	ledger LedgerService,
	zreports ZReportService,
	users repository.UserRepository,
	rdb *redis.Client,
	largeDiscrepancy decimal.Decimal,
	cacheTTL time.Duration,
) SessionService {
	return &sessionService{
		sessions:         sessions,
		aggregator:       aggregator,
		ledger:           ledger,
		zreports:         zreports,
		users:            users,
		rdb:              rdb,
		largeDiscrepancy: largeDiscrepancy,
		cacheTTL:         cacheTTL,
	}
}

// ── Open ─────────────────────────────────────────────────────────────────────

func (s *sessionService) Open(ctx context.Context, userID uuid.UUID, req dto.OpenSessionRequest) (*dto.SessionResponse, error) {
	registerID, err := uuid.Parse(req.RegisterID)
	if err != nil {
		return nil, apierror.ValidationField("register_id", "must be a valid uuid")
	}
	// Absent and zero are different things: an explicit 0 float is a valid
	// opening, a missing field is not.
	if req.OpeningCash == nil {
		return nil, apierror.ValidationField("opening_cash", "is required")
	}
	if req.OpeningCash.IsNegative() {
		return nil, apierror.ValidationField("opening_cash", "must not be negative")
	}

	session := &model.RegisterSession{
		RegisterID:  registerID,
		UserID:      userID,
		OpeningCash: *req.OpeningCash,
		Status:      model.SessionOpen,
		OpenedAt:    time.Now(),
	}
	// The partial unique index makes this an atomic check-and-create: a
	// concurrent open for the same register loses the insert race here.
	if err := s.sessions.CreateSession(ctx, session); err != nil {
		if errors.Is(err, repository.ErrDuplicateOpen) {
			return nil, apierror.Conflict("an open session already exists for this register")
		}
		return nil, err
	}

	s.invalidateOpenCache(ctx, registerID)

	resp := s.toResponse(ctx, session)
	return &resp, nil
}

// ── Close ────────────────────────────────────────────────────────────────────

func (s *sessionService) Close(ctx context.Context, sessionID uuid.UUID, req dto.CloseSessionRequest) (*dto.CloseSessionResponse, error) {
	session, err := lookupSession(ctx, s.sessions, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status != model.SessionOpen {
		return nil, apierror.InvalidState("session is already closed")
	}

	totals, err := s.ledger.Totals(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	summary, err := s.aggregator.Summarize(ctx, session.RegisterID, sessionID)
	if err != nil {
		return nil, err
	}

	rec := Reconcile(session.OpeningCash, totals, summary, req.CountedAmount)
	if rec.RequiresNote && strings.TrimSpace(req.Note) == "" {
		return nil, apierror.ValidationField("note", "required: counted amount differs from expected")
	}

	now := time.Now()
	counted := req.CountedAmount
	session.Status = model.SessionClosed
	session.ClosingCash = &counted
	session.OverShort = &rec.Difference
	session.ClosedAt = &now
	if note := strings.TrimSpace(req.Note); note != "" {
		session.CloseNote = &note
	}
	// Single conditional write guarded on status: a concurrent close racing
	// past the check above loses here and cannot overwrite the winner's
	// close columns. From here the session is read-only.
	if err := s.sessions.CloseSession(ctx, session); err != nil {
		if errors.Is(err, repository.ErrAlreadyClosed) {
			return nil, apierror.InvalidState("session is already closed")
		}
		return nil, err
	}

	report, err := s.zreports.Generate(ctx, session, summary)
	if err != nil {
		return nil, err
	}

	s.invalidateOpenCache(ctx, session.RegisterID)

	return &dto.CloseSessionResponse{
		Session:          s.toResponse(ctx, session),
		Reconciliation:   rec,
		LargeDiscrepancy: IsLargeDiscrepancy(rec.Difference, s.largeDiscrepancy),
		ZReport:          *report,
	}, nil
}

// ── Lookups ──────────────────────────────────────────────────────────────────

func (s *sessionService) CurrentOpen(ctx context.Context, registerID uuid.UUID) (*dto.SessionResponse, error) {
	if cached := s.openFromCache(ctx, registerID); cached != nil {
		return cached, nil
	}

	session, err := s.sessions.FindOpenByRegister(ctx, registerID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, nil
	}

	resp := s.toResponse(ctx, session)
	s.storeOpenCache(ctx, registerID, &resp)
	return &resp, nil
}

func (s *sessionService) Get(ctx context.Context, sessionID uuid.UUID) (*dto.SessionResponse, error) {
	session, err := lookupSession(ctx, s.sessions, sessionID)
	if err != nil {
		return nil, err
	}
	resp := s.toResponse(ctx, session)
	return &resp, nil
}

// Summary recomputes the live payment/product rollup for dashboard refresh.
// Works for closed sessions too, but the archived figures belong to the
// z-report — this one reflects the orders as they are now.
func (s *sessionService) Summary(ctx context.Context, sessionID uuid.UUID) (*dto.SalesSummary, error) {
	session, err := lookupSession(ctx, s.sessions, sessionID)
	if err != nil {
		return nil, err
	}
	return s.aggregator.Summarize(ctx, session.RegisterID, sessionID)
}

// lookupSession maps only the not-found sentinel to a typed 404; a storage
// failure stays untyped so it surfaces as an internal error the caller may
// retry, not as a definitive "this session does not exist".
func lookupSession(ctx context.Context, repo repository.SessionRepository, id uuid.UUID) (*model.RegisterSession, error) {
	session, err := repo.FindSessionByID(ctx, id)
	if errors.Is(err, repository.ErrSessionNotFound) {
		return nil, apierror.NotFound("session not found")
	}
	if err != nil {
		return nil, err
	}
	return session, nil
}

func (s *sessionService) History(ctx context.Context, page, limit int) (*dto.SessionListResponse, error) {
	sessions, total, err := s.sessions.ListClosed(ctx, page, limit)
	if err != nil {
		return nil, err
	}
	data := make([]dto.SessionResponse, 0, len(sessions))
	for _, session := range sessions {
		data = append(data, s.toResponse(ctx, &session))
	}
	return &dto.SessionListResponse{Data: data, Total: total, Page: page, Limit: limit}, nil
}

// ── Open-session cache ───────────────────────────────────────────────────────
// Best-effort redis cache for the hot "is this register open" lookup the POS
// frontends poll. Misses and redis errors just fall through to the DB.

func openCacheKey(registerID uuid.UUID) string {
	return "cash:session:open:" + registerID.String()
}

func (s *sessionService) openFromCache(ctx context.Context, registerID uuid.UUID) *dto.SessionResponse {
	if s.rdb == nil {
		return nil
	}
	raw, err := s.rdb.Get(ctx, openCacheKey(registerID)).Bytes()
	if err != nil {
		return nil
	}
	var resp dto.SessionResponse
	if json.Unmarshal(raw, &resp) != nil {
		return nil
	}
	return &resp
}

func (s *sessionService) storeOpenCache(ctx context.Context, registerID uuid.UUID, resp *dto.SessionResponse) {
	if s.rdb == nil {
		return
	}
	raw, err := json.Marshal(resp)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, openCacheKey(registerID), raw, s.cacheTTL).Err(); err != nil {
		log.Debug().Err(err).Msg("open session cache write failed")
	}
}

func (s *sessionService) invalidateOpenCache(ctx context.Context, registerID uuid.UUID) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, openCacheKey(registerID)).Err(); err != nil {
		log.Debug().Err(err).Msg("open session cache invalidation failed")
	}
}

// ── Helpers ──────────────────────────────────────────────────────────────────

func (s *sessionService) toResponse(ctx context.Context, session *model.RegisterSession) dto.SessionResponse {
	operatorName := ""
	if names, err := s.users.NamesByIDs(ctx, []uuid.UUID{session.UserID}); err == nil {
		operatorName = names[session.UserID]
	}

	resp := dto.SessionResponse{
		ID:           session.ID.String(),
		RegisterID:   session.RegisterID.String(),
		UserID:       session.UserID.String(),
		OperatorName: operatorName,
		OpeningCash:  session.OpeningCash,
		ClosingCash:  session.ClosingCash,
		OverShort:    session.OverShort,
		Status:       session.Status,
		CloseNote:    session.CloseNote,
		OpenedAt:     session.OpenedAt.UTC().Format(time.RFC3339),
	}
	if session.ClosedAt != nil {
		t := session.ClosedAt.UTC().Format(time.RFC3339)
		resp.ClosedAt = &t
	}
	return resp
}
