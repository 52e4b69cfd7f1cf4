package service

import (
	"context"
	"strings"
	"time"

	"github.com/kwamevaughan/richuncle-outlook-sub003/internal/apierror"
	"github.com/kwamevaughan/richuncle-outlook-sub003/internal/dto"
	"github.com/kwamevaughan/richuncle-outlook-sub003/internal/model"
	"github.com/kwamevaughan/richuncle-outlook-sub003/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LedgerService is the manual cash movement ledger for open sessions: float
// top-ups in, petty cash out. Movements are immutable once appended and the
// running balance is always derived from them on read — never stored on the
// session row, so a cached total can never diverge from the ledger.
type LedgerService interface {
	Append(ctx context.Context, userID uuid.UUID, req dto.AppendMovementRequest) (*dto.AppendMovementResult, error)
	Totals(ctx context.Context, sessionID uuid.UUID) (dto.LedgerTotals, error)
	Ledger(ctx context.Context, sessionID uuid.UUID) (*dto.LedgerResponse, error)
}

type ledgerService struct {
	sessions  repository.SessionRepository
	movements repository.MovementRepository
	users     repository.UserRepository
	// largeCashOut is the confirmation threshold for cash_out amounts. A UX
	// guard, not a ledger invariant: with Confirmed set the ledger accepts
	// any positive amount.
	largeCashOut decimal.Decimal
}

func NewLedgerService(
	sessions repository.SessionRepository,
	movements repository.MovementRepository,
	users repository.UserRepository,
	largeCashOut decimal.Decimal,
) LedgerService {
	return &ledgerService{
		sessions:     sessions,
		movements:    movements,
		users:        users,
		largeCashOut: largeCashOut,
	}
}

func (s *ledgerService) Append(ctx context.Context, userID uuid.UUID, req dto.AppendMovementRequest) (*dto.AppendMovementResult, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, apierror.ValidationField("amount", "must be greater than zero")
	}
	if strings.TrimSpace(req.Reason) == "" {
		return nil, apierror.ValidationField("reason", "must not be empty")
	}

	sessionID, err := uuid.Parse(req.SessionID)
	if err != nil {
		return nil, apierror.ValidationField("session_id", "must be a valid uuid")
	}

	session, err := lookupSession(ctx, s.sessions, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status != model.SessionOpen {
		return nil, apierror.InvalidState("session is not open")
	}

	// Large cash-out guard: nothing is written until the operator confirms.
	if req.Type == model.MovementCashOut && !req.Confirmed && req.Amount.GreaterThan(s.largeCashOut) {
		threshold := s.largeCashOut
		return &dto.AppendMovementResult{
			RequiresConfirmation: true,
			Threshold:            &threshold,
		}, nil
	}

	mov := &model.CashMovement{
		SessionID: sessionID,
		UserID:    userID,
		Type:      req.Type,
		Amount:    req.Amount,
		Reason:    strings.TrimSpace(req.Reason),
	}
	if err := s.movements.CreateMovement(ctx, mov); err != nil {
		return nil, err
	}

	resp := movementToResponse(mov, "")
	return &dto.AppendMovementResult{Movement: &resp}, nil
}

func (s *ledgerService) Totals(ctx context.Context, sessionID uuid.UUID) (dto.LedgerTotals, error) {
	sums, err := s.movements.SumByType(ctx, sessionID)
	if err != nil {
		return dto.LedgerTotals{}, err
	}
	return dto.LedgerTotals{
		CashInTotal:  sums[model.MovementCashIn],
		CashOutTotal: sums[model.MovementCashOut],
	}, nil
}

// Ledger returns the session's movement list with operator names plus the
// running cash-in-hand figure. Cash in hand is sales-independent: it is the
// till balance from opening float and manual movements only, distinct from
// the reconciliation "expected" which also folds in sales.
func (s *ledgerService) Ledger(ctx context.Context, sessionID uuid.UUID) (*dto.LedgerResponse, error) {
	session, err := lookupSession(ctx, s.sessions, sessionID)
	if err != nil {
		return nil, err
	}

	movs, err := s.movements.ListMovements(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	totals := dto.LedgerTotals{CashInTotal: decimal.Zero, CashOutTotal: decimal.Zero}
	userIDs := make([]uuid.UUID, 0, len(movs))
	for _, m := range movs {
		switch m.Type {
		case model.MovementCashIn:
			totals.CashInTotal = totals.CashInTotal.Add(m.Amount)
		case model.MovementCashOut:
			totals.CashOutTotal = totals.CashOutTotal.Add(m.Amount)
		}
		userIDs = append(userIDs, m.UserID)
	}

	// Name resolution is cosmetic — a failed lookup leaves names blank.
	names, err := s.users.NamesByIDs(ctx, userIDs)
	if err != nil {
		names = nil
	}

	responses := make([]dto.MovementResponse, 0, len(movs))
	for _, m := range movs {
		responses = append(responses, movementToResponse(&m, names[m.UserID]))
	}

	return &dto.LedgerResponse{
		SessionID:  sessionID.String(),
		Totals:     totals,
		CashInHand: CashInHand(session.OpeningCash, totals),
		Movements:  responses,
	}, nil
}

// CashInHand is opening_cash + cash_in_total − cash_out_total.
func CashInHand(openingCash decimal.Decimal, totals dto.LedgerTotals) decimal.Decimal {
	return openingCash.Add(totals.CashInTotal).Sub(totals.CashOutTotal)
}

func movementToResponse(m *model.CashMovement, operatorName string) dto.MovementResponse {
	return dto.MovementResponse{
		ID:           m.ID.String(),
		SessionID:    m.SessionID.String(),
		UserID:       m.UserID.String(),
		OperatorName: operatorName,
		Type:         m.Type,
		Amount:       m.Amount,
		Reason:       m.Reason,
		CreatedAt:    m.CreatedAt.UTC().Format(time.RFC3339),
	}
}
