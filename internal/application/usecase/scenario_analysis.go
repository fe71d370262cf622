package usecase

import (
	"context"
	"fmt"

	"github.com/terravista/projection-service/internal/application/dto"
	"github.com/terravista/projection-service/internal/domain/port"
	"github.com/terravista/projection-service/internal/domain/service"
	"github.com/terravista/projection-service/internal/domain/valueobject"
)

// GetScenarioAnalysisUseCase runs the investment analyses for a stored
// projection under one scenario.
type GetScenarioAnalysisUseCase struct {
	repo     port.ProjectionRepository
	analyzer *service.ScenarioAnalyzer
}

// NewGetScenarioAnalysisUseCase wires dependencies.
func NewGetScenarioAnalysisUseCase(repo port.ProjectionRepository, analyzer *service.ScenarioAnalyzer) *GetScenarioAnalysisUseCase {
	return &GetScenarioAnalysisUseCase{repo: repo, analyzer: analyzer}
}

// Execute runs the analyses. An empty scenario defaults to the standard one.
func (uc *GetScenarioAnalysisUseCase) Execute(
	ctx context.Context,
	req dto.ScenarioAnalysisRequest,
) (dto.ScenarioAnalysisResponse, error) {
	scenarioStr := req.Scenario
	if scenarioStr == "" {
		scenarioStr = valueobject.ScenarioStandard.String()
	}
	scenario, err := valueobject.NewScenarioName(scenarioStr)
	if err != nil {
		return dto.ScenarioAnalysisResponse{}, err
	}

	projection, err := uc.repo.FindByID(ctx, req.ProjectionID)
	if err != nil {
		return dto.ScenarioAnalysisResponse{}, fmt.Errorf("find projection: %w", err)
	}

	analysis, err := uc.analyzer.Analyze(projection, scenario)
	if err != nil {
		return dto.ScenarioAnalysisResponse{}, fmt.Errorf("analyze scenario: %w", err)
	}

	return toScenarioAnalysisResponse(analysis), nil
}

func toScenarioAnalysisResponse(a service.ScenarioAnalysis) dto.ScenarioAnalysisResponse {
	assetYearly := make([]dto.YearlyAssetValueResponse, len(a.AssetAppreciation.Yearly))
	for i, y := range a.AssetAppreciation.Yearly {
		assetYearly[i] = dto.YearlyAssetValueResponse{
			Year:          y.Year,
			PropertyValue: y.PropertyValue,
			NetValue:      y.NetValue,
		}
	}

	rentalYearly := make([]dto.YearlyRentalIncomeResponse, len(a.RentalYield.Yearly))
	for i, y := range a.RentalYield.Yearly {
		rentalYearly[i] = dto.YearlyRentalIncomeResponse{
			Year:            y.Year,
			MonthlyRent:     y.MonthlyRent,
			AnnualNetIncome: y.AnnualNetIncome,
		}
	}

	return dto.ScenarioAnalysisResponse{
		Scenario:  a.Scenario.String(),
		SaleMonth: a.SaleMonth,
		FutureSale: dto.FutureSaleResponse{
			SaleMonth:        a.FutureSale.SaleMonth,
			TotalInvestment:  a.FutureSale.TotalInvestment,
			ProjectedValue:   a.FutureSale.ProjectedValue,
			SaleExpenses:     a.FutureSale.SaleExpenses,
			GrossProfit:      a.FutureSale.GrossProfit,
			IncomeTax:        a.FutureSale.IncomeTax,
			NetProfit:        a.FutureSale.NetProfit,
			ROIPercentage:    a.FutureSale.ROIPercentage,
			AnnualizedReturn: a.FutureSale.AnnualizedReturn,
			PaybackMonths:    a.FutureSale.PaybackMonths,
		},
		AssetAppreciation: dto.AssetAppreciationResponse{
			PeriodYears:            a.AssetAppreciation.PeriodYears,
			InitialValue:           a.AssetAppreciation.InitialValue,
			FinalValue:             a.AssetAppreciation.FinalValue,
			TotalAppreciation:      a.AssetAppreciation.TotalAppreciation,
			AppreciationPercentage: a.AssetAppreciation.AppreciationPercentage,
			TotalMaintenance:       a.AssetAppreciation.TotalMaintenance,
			TotalTaxes:             a.AssetAppreciation.TotalTaxes,
			Yearly:                 assetYearly,
		},
		RentalYield: dto.RentalYieldResponse{
			MonthlyRent:          a.RentalYield.MonthlyRent,
			MonthlyNetIncome:     a.RentalYield.MonthlyNetIncome,
			AnnualGrossIncome:    a.RentalYield.AnnualGrossIncome,
			AnnualExpenses:       a.RentalYield.AnnualExpenses,
			AnnualNetIncome:      a.RentalYield.AnnualNetIncome,
			GrossYieldPercentage: a.RentalYield.GrossYieldPercentage,
			NetYieldPercentage:   a.RentalYield.NetYieldPercentage,
			Yearly:               rentalYearly,
		},
		InternalRate: dto.InternalRateResponse{
			SaleMonth:   a.InternalRate.SaleMonth,
			MonthlyRate: a.InternalRate.MonthlyRate,
			AnnualRate:  a.InternalRate.AnnualRate,
			Converged:   a.InternalRate.Converged,
			CashFlow:    a.InternalRate.CashFlow,
		},
	}
}
