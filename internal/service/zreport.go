package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/kwamevaughan/richuncle-outlook-sub003/internal/apierror"
	"github.com/kwamevaughan/richuncle-outlook-sub003/internal/dto"
	"github.com/kwamevaughan/richuncle-outlook-sub003/internal/model"
	"github.com/kwamevaughan/richuncle-outlook-sub003/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ZReportService freezes a closed session's final numbers into an immutable
// archived report. Generate runs exactly once per session, at close time; a
// repeat call (or a crash-retry of the close) returns the stored snapshot
// instead of recomputing, so late changes to the underlying orders can never
// rewrite history.
type ZReportService interface {
	Generate(ctx context.Context, session *model.RegisterSession, summary *dto.SalesSummary) (*dto.ZReportResponse, error)
	GetBySession(ctx context.Context, sessionID uuid.UUID) (*dto.ZReportResponse, error)
}

type zreportService struct {
	reports repository.ZReportRepository
	users   repository.UserRepository
}

func NewZReportService(reports repository.ZReportRepository, users repository.UserRepository) ZReportService {
	return &zreportService{reports: reports, users: users}
}

func (s *zreportService) Generate(ctx context.Context, session *model.RegisterSession, summary *dto.SalesSummary) (*dto.ZReportResponse, error) {
	if session.Status != model.SessionClosed || session.ClosingCash == nil || session.OverShort == nil || session.ClosedAt == nil {
		return nil, apierror.InvalidState("z-report requires a closed session")
	}

	if existing, err := s.reports.FindBySession(ctx, session.ID); err != nil {
		return nil, err
	} else if existing != nil {
		return s.toResponse(ctx, existing)
	}

	breakdown, err := json.Marshal(summary.PaymentBreakdown)
	if err != nil {
		return nil, err
	}
	products, err := json.Marshal(summary.ProductsSold)
	if err != nil {
		return nil, err
	}

	report := &model.ZReport{
		SessionID:        session.ID,
		RegisterID:       session.RegisterID,
		UserID:           session.UserID,
		OpeningCash:      session.OpeningCash,
		ClosingCash:      *session.ClosingCash,
		OverShort:        *session.OverShort,
		TotalSales:       summary.TotalSales,
		PaymentBreakdown: breakdown,
		ProductsSold:     products,
		OpenedAt:         session.OpenedAt,
		ClosedAt:         *session.ClosedAt,
	}
	if err := s.reports.CreateReport(ctx, report); err != nil {
		return nil, err
	}
	return s.toResponse(ctx, report)
}

func (s *zreportService) GetBySession(ctx context.Context, sessionID uuid.UUID) (*dto.ZReportResponse, error) {
	report, err := s.reports.FindBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, apierror.NotFound("z-report not found")
	}
	return s.toResponse(ctx, report)
}

func (s *zreportService) toResponse(ctx context.Context, report *model.ZReport) (*dto.ZReportResponse, error) {
	var breakdown map[string]decimal.Decimal
	if err := json.Unmarshal(report.PaymentBreakdown, &breakdown); err != nil {
		return nil, err
	}
	products := []dto.ProductSale{}
	if err := json.Unmarshal(report.ProductsSold, &products); err != nil {
		return nil, err
	}

	operatorName := ""
	if names, err := s.users.NamesByIDs(ctx, []uuid.UUID{report.UserID}); err == nil {
		operatorName = names[report.UserID]
	}

	return &dto.ZReportResponse{
		ID:               report.ID.String(),
		SessionID:        report.SessionID.String(),
		RegisterID:       report.RegisterID.String(),
		UserID:           report.UserID.String(),
		OperatorName:     operatorName,
		OpeningCash:      report.OpeningCash,
		ClosingCash:      report.ClosingCash,
		OverShort:        report.OverShort,
		TotalSales:       report.TotalSales,
		PaymentBreakdown: breakdown,
		ProductsSold:     products,
		OpenedAt:         report.OpenedAt.UTC().Format(time.RFC3339),
		ClosedAt:         report.ClosedAt.UTC().Format(time.RFC3339),
	}, nil
}
