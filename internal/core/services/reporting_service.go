package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shoplite/shop_management_app/internal/apperrors"
	"github.com/shoplite/shop_management_app/internal/core/domain"
	portsrepo "github.com/shoplite/shop_management_app/internal/core/ports/repositories"
	portssvc "github.com/shoplite/shop_management_app/internal/core/ports/services"
)

type reportingService struct {
	reportingRepo portsrepo.ReportingRepository
	shopSvc       portssvc.ShopAuthorizerSvc
}

// NewReportingService creates the dashboard aggregation service.
func NewReportingService(reportingRepo portsrepo.ReportingRepository, shopSvc portssvc.ShopAuthorizerSvc) portssvc.ReportingSvcFacade {
	return &reportingService{
		reportingRepo: reportingRepo,
		shopSvc:       shopSvc,
	}
}

func (s *reportingService) GetShopSummary(ctx context.Context, shopID string, from, to time.Time, requestingUserID string) (*domain.ShopSummary, error) {
	if err := s.shopSvc.AuthorizeUserAction(ctx, requestingUserID, shopID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	if to.Before(from) {
		return nil, fmt.Errorf("%w: period end precedes start", apperrors.ErrValidation)
	}
	return s.reportingRepo.GetShopSummary(ctx, shopID, from, to)
}
