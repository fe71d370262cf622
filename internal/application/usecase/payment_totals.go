package usecase

import (
	"context"
	"fmt"

	"github.com/terravista/projection-service/internal/application/dto"
	"github.com/terravista/projection-service/internal/domain/port"
	"github.com/terravista/projection-service/internal/domain/service"
	"github.com/terravista/projection-service/internal/domain/valueobject"
)

// GetPaymentTotalsUseCase reduces a stored projection's schedule into
// paid-through-month totals for a scenario.
type GetPaymentTotalsUseCase struct {
	repo       port.ProjectionRepository
	calculator *service.TotalsCalculator
}

// NewGetPaymentTotalsUseCase wires dependencies.
func NewGetPaymentTotalsUseCase(repo port.ProjectionRepository, calculator *service.TotalsCalculator) *GetPaymentTotalsUseCase {
	return &GetPaymentTotalsUseCase{repo: repo, calculator: calculator}
}

// Execute computes the totals. An empty scenario defaults to the standard one.
func (uc *GetPaymentTotalsUseCase) Execute(
	ctx context.Context,
	req dto.PaymentTotalsRequest,
) (dto.PaymentTotalsResponse, error) {
	scenarioStr := req.Scenario
	if scenarioStr == "" {
		scenarioStr = valueobject.ScenarioStandard.String()
	}
	scenario, err := valueobject.NewScenarioName(scenarioStr)
	if err != nil {
		return dto.PaymentTotalsResponse{}, err
	}

	projection, err := uc.repo.FindByID(ctx, req.ProjectionID)
	if err != nil {
		return dto.PaymentTotalsResponse{}, fmt.Errorf("find projection: %w", err)
	}

	totals, err := uc.calculator.Calculate(projection, scenario, req.SaleMonth)
	if err != nil {
		return dto.PaymentTotalsResponse{}, fmt.Errorf("calculate totals: %w", err)
	}

	return dto.PaymentTotalsResponse{
		Scenario:                totals.Scenario.String(),
		SaleMonth:               totals.SaleMonth,
		DownPayment:             totals.DownPayment,
		InstallmentsNominal:     totals.InstallmentsNominal,
		InstallmentsCorrected:   totals.InstallmentsCorrected,
		ReinforcementsNominal:   totals.ReinforcementsNominal,
		ReinforcementsCorrected: totals.ReinforcementsCorrected,
		KeysNominal:             totals.KeysNominal,
		KeysCorrected:           totals.KeysCorrected,
		TotalPaid:               totals.TotalPaid,
	}, nil
}
