package usecase

import (
	"github.com/shopspring/decimal"

	"github.com/terravista/projection-service/internal/application/dto"
	"github.com/terravista/projection-service/internal/domain/model"
	"github.com/terravista/projection-service/internal/domain/valueobject"
)

// inputFromRequest converts a calculation request into an engine input. An
// unknown installment mode or correction index is reported as a validation
// error so it surfaces the same way as any other bad field.
func inputFromRequest(req dto.CalculationRequest) (model.ProjectionInput, error) {
	fields := map[string]string{}

	modeStr := req.InstallmentMode
	if modeStr == "" {
		modeStr = valueobject.InstallmentModeAutomatic.String()
	}
	mode, err := valueobject.NewInstallmentMode(modeStr)
	if err != nil {
		fields["installment_mode"] = err.Error()
	}

	var indexPre, indexPost valueobject.CorrectionIndex
	if req.IndexPreDelivery != "" {
		if indexPre, err = valueobject.NewCorrectionIndex(req.IndexPreDelivery); err != nil {
			fields["index_pre_delivery"] = err.Error()
		}
	}
	if req.IndexPostDelivery != "" {
		if indexPost, err = valueobject.NewCorrectionIndex(req.IndexPostDelivery); err != nil {
			fields["index_post_delivery"] = err.Error()
		}
	}

	if len(fields) > 0 {
		return model.ProjectionInput{}, &model.ValidationError{Fields: fields}
	}

	var customs []model.CustomInstallment
	for _, ci := range req.CustomInstallments {
		customs = append(customs, model.CustomInstallment{Month: ci.Month, Amount: ci.Amount})
	}

	var reinforcement *model.Reinforcement
	if req.Reinforcement != nil {
		reinforcement = &model.Reinforcement{
			Amount:            req.Reinforcement.Amount,
			PeriodicityMonths: req.Reinforcement.PeriodicityMonths,
		}
	}

	return model.ProjectionInput{
		PropertyPrice:              req.PropertyPrice,
		Discount:                   req.Discount,
		DownPayment:                req.DownPayment,
		DeliveryMonth:              req.DeliveryMonth,
		PaymentTermMonths:          req.PaymentTermMonths,
		CorrectionRatePreDelivery:  req.CorrectionRatePreDelivery,
		CorrectionRatePostDelivery: req.CorrectionRatePostDelivery,
		IndexPreDelivery:           indexPre,
		IndexPostDelivery:          indexPost,
		InstallmentMode:            mode,
		CustomInstallments:         customs,
		Reinforcement:              reinforcement,
		KeysPayment:                req.KeysPayment,
	}, nil
}

// scenariosFromRequest resolves the caller's scenario overrides against the
// stock assumption values. A zero-valued override field keeps the default,
// mirroring how the projection form treats blank fields.
func scenariosFromRequest(req *dto.ScenariosRequest) valueobject.ScenarioSet {
	set := valueobject.DefaultScenarioSet()
	if req == nil {
		return set
	}
	set.Standard = applyScenarioOverrides(set.Standard, req.Standard)
	set.Conservative = applyScenarioOverrides(set.Conservative, req.Conservative)
	set.Optimistic = applyScenarioOverrides(set.Optimistic, req.Optimistic)
	return set
}

func applyScenarioOverrides(base valueobject.Scenario, ov *dto.ScenarioAssumptionsRequest) valueobject.Scenario {
	if ov == nil {
		return base
	}
	if fs := ov.FutureSale; fs != nil {
		base.FutureSale.InvestmentPeriodMonths = fs.InvestmentPeriodMonths
		base.FutureSale.AppreciationRate = orDecimal(fs.AppreciationRate, base.FutureSale.AppreciationRate)
		base.FutureSale.SellingExpenseRate = orDecimal(fs.SellingExpenseRate, base.FutureSale.SellingExpenseRate)
		base.FutureSale.IncomeTaxRate = orDecimal(fs.IncomeTaxRate, base.FutureSale.IncomeTaxRate)
		base.FutureSale.AdditionalCostsRate = orDecimal(fs.AdditionalCostsRate, base.FutureSale.AdditionalCostsRate)
		base.FutureSale.MaintenanceCostsRate = orDecimal(fs.MaintenanceCostsRate, base.FutureSale.MaintenanceCostsRate)
	}
	if aa := ov.AssetAppreciation; aa != nil {
		base.AssetAppreciation.AnnualRate = orDecimal(aa.AnnualRate, base.AssetAppreciation.AnnualRate)
		base.AssetAppreciation.AnalysisPeriodYears = orInt(aa.AnalysisPeriodYears, base.AssetAppreciation.AnalysisPeriodYears)
		base.AssetAppreciation.MaintenanceCosts = orDecimal(aa.MaintenanceCosts, base.AssetAppreciation.MaintenanceCosts)
		base.AssetAppreciation.AnnualTaxes = orDecimal(aa.AnnualTaxes, base.AssetAppreciation.AnnualTaxes)
	}
	if ry := ov.RentalYield; ry != nil {
		base.RentalYield.MonthlyRentRate = orDecimal(ry.MonthlyRentRate, base.RentalYield.MonthlyRentRate)
		base.RentalYield.OccupancyRate = orDecimal(ry.OccupancyRate, base.RentalYield.OccupancyRate)
		base.RentalYield.ManagementFee = orDecimal(ry.ManagementFee, base.RentalYield.ManagementFee)
		base.RentalYield.MaintenanceCosts = orDecimal(ry.MaintenanceCosts, base.RentalYield.MaintenanceCosts)
		base.RentalYield.AnnualIncrease = orDecimal(ry.AnnualIncrease, base.RentalYield.AnnualIncrease)
	}
	return base
}

func orDecimal(v, fallback decimal.Decimal) decimal.Decimal {
	if v.IsZero() {
		return fallback
	}
	return v
}

func orInt(v, fallback int) int {
	if v == 0 {
		return fallback
	}
	return v
}

// requestFromInput echoes a normalized engine input back out as a request DTO.
func requestFromInput(in model.ProjectionInput) dto.CalculationRequest {
	var customs []dto.CustomInstallmentRequest
	for _, ci := range in.CustomInstallments {
		customs = append(customs, dto.CustomInstallmentRequest{Month: ci.Month, Amount: ci.Amount})
	}

	var reinforcement *dto.ReinforcementRequest
	if in.Reinforcement != nil {
		reinforcement = &dto.ReinforcementRequest{
			Amount:            in.Reinforcement.Amount,
			PeriodicityMonths: in.Reinforcement.PeriodicityMonths,
		}
	}

	return dto.CalculationRequest{
		PropertyPrice:              in.PropertyPrice,
		Discount:                   in.Discount,
		DownPayment:                in.DownPayment,
		DeliveryMonth:              in.DeliveryMonth,
		PaymentTermMonths:          in.PaymentTermMonths,
		CorrectionRatePreDelivery:  in.CorrectionRatePreDelivery,
		CorrectionRatePostDelivery: in.CorrectionRatePostDelivery,
		IndexPreDelivery:           in.IndexPreDelivery.String(),
		IndexPostDelivery:          in.IndexPostDelivery.String(),
		InstallmentMode:            in.InstallmentMode.String(),
		CustomInstallments:         customs,
		Reinforcement:              reinforcement,
		KeysPayment:                in.KeysPayment,
	}
}

func toScheduleResponses(entries []model.ScheduleEntry) []dto.ScheduleEntryResponse {
	out := make([]dto.ScheduleEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.ScheduleEntryResponse{
			Month:                  e.Month,
			Kind:                   e.Kind.String(),
			BaseInstallment:        e.BaseInstallment,
			BaseReinforcement:      e.BaseReinforcement,
			BaseKeys:               e.BaseKeys,
			CorrectionFactor:       e.CorrectionFactor,
			CorrectedInstallment:   e.CorrectedInstallment,
			CorrectedReinforcement: e.CorrectedReinforcement,
			CorrectedKeys:          e.CorrectedKeys,
			NetBalance:             e.NetBalance,
			CorrectedBalance:       e.CorrectedBalance,
		})
	}
	return out
}

func toSummaryResponse(s model.ProjectionSummary) dto.SummaryResponse {
	return dto.SummaryResponse{
		FinancedAmount:       s.FinancedAmount,
		TotalNominalPaid:     s.TotalNominalPaid,
		TotalCorrectedPaid:   s.TotalCorrectedPaid,
		TotalCorrection:      s.TotalCorrection,
		CorrectionPercentage: s.CorrectionPercentage,
	}
}

func toProjectionResponse(p model.Projection, includeSchedule bool) dto.ProjectionResponse {
	resp := dto.ProjectionResponse{
		ID:         p.ID(),
		ClientID:   p.ClientID(),
		PropertyID: p.PropertyID(),
		Title:      p.Title(),
		Input:      requestFromInput(p.Input()),
		Summary:    toSummaryResponse(p.Summary()),
		Version:    p.Version(),
		CreatedAt:  p.CreatedAt(),
		UpdatedAt:  p.UpdatedAt(),
	}
	if includeSchedule {
		resp.Schedule = toScheduleResponses(p.Schedule())
	}
	return resp
}
