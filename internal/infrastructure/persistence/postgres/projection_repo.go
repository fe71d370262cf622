package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/terravista/projection-service/internal/domain/model"
	"github.com/terravista/projection-service/internal/domain/port"
	"github.com/terravista/projection-service/internal/domain/valueobject"
)

// ProjectionRepo implements port.ProjectionRepository.
type ProjectionRepo struct {
	pool *pgxpool.Pool
}

// NewProjectionRepo creates a new PostgreSQL-backed projection repository.
func NewProjectionRepo(pool *pgxpool.Pool) *ProjectionRepo {
	return &ProjectionRepo{pool: pool}
}

// Save persists a projection and replaces its schedule rows. Updates are
// guarded by optimistic version locking on the aggregate row.
func (r *ProjectionRepo) Save(ctx context.Context, p model.Projection) error {
	customsJSON, reinforcementJSON, scenariosJSON, err := marshalInputBlobs(p)
	if err != nil {
		return err
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	in := p.Input()
	s := p.Summary()

	projectionQuery := `
		INSERT INTO projections (
			id, client_id, property_id, title,
			property_price, discount, down_payment,
			delivery_month, payment_term_months,
			correction_rate_pre, correction_rate_post,
			index_pre, index_post, installment_mode,
			custom_installments, reinforcement, keys_payment, scenarios,
			financed_amount, total_nominal_paid, total_corrected_paid,
			total_correction, correction_percentage,
			version, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23,$24,$25,$26)
		ON CONFLICT (id) DO UPDATE SET
			title                 = EXCLUDED.title,
			property_price        = EXCLUDED.property_price,
			discount              = EXCLUDED.discount,
			down_payment          = EXCLUDED.down_payment,
			delivery_month        = EXCLUDED.delivery_month,
			payment_term_months   = EXCLUDED.payment_term_months,
			correction_rate_pre   = EXCLUDED.correction_rate_pre,
			correction_rate_post  = EXCLUDED.correction_rate_post,
			index_pre             = EXCLUDED.index_pre,
			index_post            = EXCLUDED.index_post,
			installment_mode      = EXCLUDED.installment_mode,
			custom_installments   = EXCLUDED.custom_installments,
			reinforcement         = EXCLUDED.reinforcement,
			keys_payment          = EXCLUDED.keys_payment,
			scenarios             = EXCLUDED.scenarios,
			financed_amount       = EXCLUDED.financed_amount,
			total_nominal_paid    = EXCLUDED.total_nominal_paid,
			total_corrected_paid  = EXCLUDED.total_corrected_paid,
			total_correction      = EXCLUDED.total_correction,
			correction_percentage = EXCLUDED.correction_percentage,
			version               = EXCLUDED.version,
			updated_at            = EXCLUDED.updated_at
		WHERE projections.version = EXCLUDED.version - 1
	`
	tag, err := tx.Exec(ctx, projectionQuery,
		p.ID(), p.ClientID(), p.PropertyID(), p.Title(),
		in.PropertyPrice, in.Discount, in.DownPayment,
		in.DeliveryMonth, in.PaymentTermMonths,
		in.CorrectionRatePreDelivery, in.CorrectionRatePostDelivery,
		in.IndexPreDelivery.String(), in.IndexPostDelivery.String(), in.InstallmentMode.String(),
		customsJSON, reinforcementJSON, in.KeysPayment, scenariosJSON,
		s.FinancedAmount, s.TotalNominalPaid, s.TotalCorrectedPaid,
		s.TotalCorrection, s.CorrectionPercentage,
		p.Version(), p.CreatedAt(), p.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("save projection: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return port.ErrVersionConflict
	}

	// Replace the schedule wholesale; recalculation may change its length.
	if _, err := tx.Exec(ctx, `DELETE FROM projection_schedule_entries WHERE projection_id = $1`, p.ID()); err != nil {
		return fmt.Errorf("clear schedule: %w", err)
	}
	entryQuery := `
		INSERT INTO projection_schedule_entries (
			projection_id, month, payment_kind,
			base_installment, base_reinforcement, base_keys,
			correction_factor,
			corrected_installment, corrected_reinforcement, corrected_keys,
			net_balance, corrected_balance
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
	`
	for _, e := range p.Schedule() {
		_, err := tx.Exec(ctx, entryQuery,
			p.ID(), e.Month, e.Kind.String(),
			e.BaseInstallment, e.BaseReinforcement, e.BaseKeys,
			e.CorrectionFactor,
			e.CorrectedInstallment, e.CorrectedReinforcement, e.CorrectedKeys,
			e.NetBalance, e.CorrectedBalance,
		)
		if err != nil {
			return fmt.Errorf("save schedule entry %d: %w", e.Month, err)
		}
	}

	return tx.Commit(ctx)
}

// FindByID retrieves a projection and its schedule by ID.
func (r *ProjectionRepo) FindByID(ctx context.Context, id string) (model.Projection, error) {
	row := r.pool.QueryRow(ctx, selectProjection+` WHERE id = $1`, id)
	p, err := scanProjectionRow(row)
	if err != nil {
		return model.Projection{}, err
	}

	schedule, err := r.loadSchedule(ctx, id)
	if err != nil {
		return model.Projection{}, err
	}

	return model.ReconstructProjection(
		p.ID(), p.ClientID(), p.PropertyID(), p.Title(),
		p.Input(), p.Scenarios(), schedule, p.Summary(),
		p.Version(), p.CreatedAt(), p.UpdatedAt(),
	), nil
}

// FindByClientID retrieves all projections for a client, newest first,
// without loading schedule rows.
func (r *ProjectionRepo) FindByClientID(ctx context.Context, clientID string) ([]model.Projection, error) {
	rows, err := r.pool.Query(ctx, selectProjection+` WHERE client_id = $1 ORDER BY created_at DESC`, clientID)
	if err != nil {
		return nil, fmt.Errorf("query projections: %w", err)
	}
	defer rows.Close()

	var projections []model.Projection
	for rows.Next() {
		p, err := scanProjectionRow(rows)
		if err != nil {
			return nil, err
		}
		projections = append(projections, p)
	}
	return projections, rows.Err()
}

// Delete removes a projection; schedule rows cascade.
func (r *ProjectionRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM projections WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete projection: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return port.ErrProjectionNotFound
	}
	return nil
}

// ---------------------------------------------------------------------------
// internal helpers
// ---------------------------------------------------------------------------

const selectProjection = `
	SELECT id, client_id, property_id, title,
	       property_price, discount, down_payment,
	       delivery_month, payment_term_months,
	       correction_rate_pre, correction_rate_post,
	       index_pre, index_post, installment_mode,
	       custom_installments, reinforcement, keys_payment, scenarios,
	       financed_amount, total_nominal_paid, total_corrected_paid,
	       total_correction, correction_percentage,
	       version, created_at, updated_at
	FROM projections`

type scannable interface {
	Scan(dest ...any) error
}

func scanProjectionRow(s scannable) (model.Projection, error) {
	var (
		id, clientID, propertyID, title                  string
		price, discount, downPayment                     decimal.Decimal
		deliveryMonth, termMonths                        int
		ratePre, ratePost                                decimal.Decimal
		indexPreStr, indexPostStr, modeStr               string
		customsRaw, reinforcementRaw, scenariosRaw       []byte
		keysPayment                                      decimal.Decimal
		financed, nominalPaid, correctedPaid, correction decimal.Decimal
		correctionPct                                    decimal.Decimal
		version                                          int
		createdAt, updatedAt                             time.Time
	)

	err := s.Scan(
		&id, &clientID, &propertyID, &title,
		&price, &discount, &downPayment,
		&deliveryMonth, &termMonths,
		&ratePre, &ratePost,
		&indexPreStr, &indexPostStr, &modeStr,
		&customsRaw, &reinforcementRaw, &keysPayment, &scenariosRaw,
		&financed, &nominalPaid, &correctedPaid,
		&correction, &correctionPct,
		&version, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Projection{}, port.ErrProjectionNotFound
		}
		return model.Projection{}, fmt.Errorf("scan projection: %w", err)
	}

	indexPre, err := valueobject.NewCorrectionIndex(indexPreStr)
	if err != nil {
		return model.Projection{}, fmt.Errorf("parse correction index: %w", err)
	}
	indexPost, err := valueobject.NewCorrectionIndex(indexPostStr)
	if err != nil {
		return model.Projection{}, fmt.Errorf("parse correction index: %w", err)
	}
	mode, err := valueobject.NewInstallmentMode(modeStr)
	if err != nil {
		return model.Projection{}, fmt.Errorf("parse installment mode: %w", err)
	}

	var customs []model.CustomInstallment
	if len(customsRaw) > 0 {
		if err := json.Unmarshal(customsRaw, &customs); err != nil {
			return model.Projection{}, fmt.Errorf("unmarshal custom installments: %w", err)
		}
	}
	var reinforcement *model.Reinforcement
	if len(reinforcementRaw) > 0 {
		reinforcement = &model.Reinforcement{}
		if err := json.Unmarshal(reinforcementRaw, reinforcement); err != nil {
			return model.Projection{}, fmt.Errorf("unmarshal reinforcement: %w", err)
		}
	}
	var scenarios valueobject.ScenarioSet
	if len(scenariosRaw) > 0 {
		if err := json.Unmarshal(scenariosRaw, &scenarios); err != nil {
			return model.Projection{}, fmt.Errorf("unmarshal scenarios: %w", err)
		}
	}

	input := model.ProjectionInput{
		PropertyPrice:              price,
		Discount:                   discount,
		DownPayment:                downPayment,
		DeliveryMonth:              deliveryMonth,
		PaymentTermMonths:          termMonths,
		CorrectionRatePreDelivery:  ratePre,
		CorrectionRatePostDelivery: ratePost,
		IndexPreDelivery:           indexPre,
		IndexPostDelivery:          indexPost,
		InstallmentMode:            mode,
		CustomInstallments:         customs,
		Reinforcement:              reinforcement,
		KeysPayment:                keysPayment,
	}
	summary := model.ProjectionSummary{
		FinancedAmount:       financed,
		TotalNominalPaid:     nominalPaid,
		TotalCorrectedPaid:   correctedPaid,
		TotalCorrection:      correction,
		CorrectionPercentage: correctionPct,
	}

	return model.ReconstructProjection(
		id, clientID, propertyID, title,
		input, scenarios, nil, summary,
		version, createdAt, updatedAt,
	), nil
}

func (r *ProjectionRepo) loadSchedule(ctx context.Context, projectionID string) ([]model.ScheduleEntry, error) {
	query := `
		SELECT month, payment_kind,
		       base_installment, base_reinforcement, base_keys,
		       correction_factor,
		       corrected_installment, corrected_reinforcement, corrected_keys,
		       net_balance, corrected_balance
		FROM projection_schedule_entries
		WHERE projection_id = $1
		ORDER BY month
	`
	rows, err := r.pool.Query(ctx, query, projectionID)
	if err != nil {
		return nil, fmt.Errorf("query schedule: %w", err)
	}
	defer rows.Close()

	var schedule []model.ScheduleEntry
	for rows.Next() {
		var (
			e       model.ScheduleEntry
			kindStr string
		)
		err := rows.Scan(
			&e.Month, &kindStr,
			&e.BaseInstallment, &e.BaseReinforcement, &e.BaseKeys,
			&e.CorrectionFactor,
			&e.CorrectedInstallment, &e.CorrectedReinforcement, &e.CorrectedKeys,
			&e.NetBalance, &e.CorrectedBalance,
		)
		if err != nil {
			return nil, fmt.Errorf("scan schedule entry: %w", err)
		}
		kind, err := valueobject.NewPaymentKind(kindStr)
		if err != nil {
			return nil, fmt.Errorf("parse payment kind: %w", err)
		}
		e.Kind = kind
		schedule = append(schedule, e)
	}
	return schedule, rows.Err()
}

func marshalInputBlobs(p model.Projection) (customs, reinforcement, scenarios []byte, err error) {
	in := p.Input()
	if len(in.CustomInstallments) > 0 {
		if customs, err = json.Marshal(in.CustomInstallments); err != nil {
			return nil, nil, nil, fmt.Errorf("marshal custom installments: %w", err)
		}
	}
	if in.Reinforcement != nil {
		if reinforcement, err = json.Marshal(in.Reinforcement); err != nil {
			return nil, nil, nil, fmt.Errorf("marshal reinforcement: %w", err)
		}
	}
	if scenarios, err = json.Marshal(p.Scenarios()); err != nil {
		return nil, nil, nil, fmt.Errorf("marshal scenarios: %w", err)
	}
	return customs, reinforcement, scenarios, nil
}
