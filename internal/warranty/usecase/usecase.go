package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/fekuna/omnipos-stock-service/internal/apperror"
	"github.com/fekuna/omnipos-stock-service/internal/model"
	"github.com/fekuna/omnipos-stock-service/internal/pkg/database"
	"github.com/fekuna/omnipos-stock-service/internal/pkg/logger"
	"github.com/fekuna/omnipos-stock-service/internal/pkg/validate"
	"github.com/fekuna/omnipos-stock-service/internal/product"
	"github.com/fekuna/omnipos-stock-service/internal/unit"
	"github.com/fekuna/omnipos-stock-service/internal/warranty"
	"github.com/fekuna/omnipos-stock-service/internal/warranty/dto"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Option func(*warrantyUseCase)

// WithClock replaces time.Now for attach and status checks.
func WithClock(now func() time.Time) Option {
	return func(uc *warrantyUseCase) { uc.now = now }
}

type warrantyUseCase struct {
	tx       database.Transactor
	repo     warranty.Repository
	units    unit.Repository
	products product.Repository
	now      func() time.Time
	logger   logger.ZapLogger
}

func NewWarrantyUseCase(tx database.Transactor, repo warranty.Repository, units unit.Repository, products product.Repository, log logger.ZapLogger, opts ...Option) warranty.UseCase {
	uc := &warrantyUseCase{
		tx:       tx,
		repo:     repo,
		units:    units,
		products: products,
		now:      time.Now,
		logger:   log,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

func (uc *warrantyUseCase) CreateTemplate(ctx context.Context, input *dto.CreateTemplateInput) (*model.Warranty, error) {
	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	now := uc.now()
	w := &model.Warranty{
		BaseModel:      model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		WarrantyNumber: strings.TrimSpace(input.WarrantyNumber),
		WarrantyType:   input.WarrantyType,
		Duration:       input.Duration,
		Terms:          input.Terms,
		UpdatedBy:      userPtr(input.UserID),
	}
	if err := uc.repo.CreateTemplate(ctx, w); err != nil {
		uc.logger.Error("failed to create warranty template", zap.Error(err))
		return nil, apperror.Ensure(err)
	}
	return w, nil
}

func (uc *warrantyUseCase) GetTemplate(ctx context.Context, id string) (*model.Warranty, error) {
	w, err := uc.repo.FindTemplateByID(ctx, id)
	if err != nil {
		return nil, apperror.Ensure(err)
	}
	if w == nil {
		return nil, apperror.NotFound("warranty", id)
	}
	return w, nil
}

func (uc *warrantyUseCase) UpdateTemplate(ctx context.Context, input *dto.UpdateTemplateInput) (*model.Warranty, error) {
	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	var w *model.Warranty
	err := uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		w, err = uc.repo.FindTemplateByID(ctx, input.ID)
		if err != nil {
			return err
		}
		if w == nil {
			return apperror.NotFound("warranty", input.ID)
		}

		if input.WarrantyNumber != nil {
			w.WarrantyNumber = strings.TrimSpace(*input.WarrantyNumber)
		}
		if input.Duration != nil {
			w.Duration = *input.Duration
		}
		if input.Terms != nil {
			w.Terms = *input.Terms
		}
		w.UpdatedBy = userPtr(input.UserID)
		w.UpdatedAt = uc.now()

		// issued warranty_unit rows keep their end dates
		return uc.repo.UpdateTemplate(ctx, w)
	})
	if err != nil {
		return nil, err
	}
	return w, nil
}

func (uc *warrantyUseCase) LinkProduct(ctx context.Context, productID, warrantyID string) error {
	if productID == "" || warrantyID == "" {
		return apperror.Validation("product id and warranty id are required")
	}

	return uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		p, err := uc.products.FindByID(ctx, productID)
		if err != nil {
			return err
		}
		if p == nil {
			return apperror.NotFound("product", productID)
		}
		w, err := uc.repo.FindTemplateByID(ctx, warrantyID)
		if err != nil {
			return err
		}
		if w == nil {
			return apperror.NotFound("warranty", warrantyID)
		}
		return uc.repo.LinkProduct(ctx, productID, warrantyID)
	})
}

func (uc *warrantyUseCase) AttachWarranty(ctx context.Context, unitID, warrantyID string, start time.Time) (*model.WarrantyUnit, error) {
	if unitID == "" || warrantyID == "" {
		return nil, apperror.Validation("unit id and warranty id are required")
	}
	if start.IsZero() {
		return nil, apperror.Validation("warranty start is required")
	}

	var wu *model.WarrantyUnit
	err := uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		u, err := uc.units.FindByID(ctx, unitID)
		if err != nil {
			return err
		}
		if u == nil {
			return apperror.NotFound("product_unit", unitID)
		}
		w, err := uc.repo.FindTemplateByID(ctx, warrantyID)
		if err != nil {
			return err
		}
		if w == nil {
			return apperror.NotFound("warranty", warrantyID)
		}

		wu, err = uc.attach(ctx, u, w, start)
		return err
	})
	if err != nil {
		return nil, err
	}
	return wu, nil
}

func (uc *warrantyUseCase) attach(ctx context.Context, u *model.ProductUnit, w *model.Warranty, start time.Time) (*model.WarrantyUnit, error) {
	existing, err := uc.repo.FindWarrantyUnitsByUnit(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	for _, e := range existing {
		if e.WarrantyType == w.WarrantyType {
			return nil, apperror.Validation("unit %s already carries a %s warranty", u.ID, w.WarrantyType)
		}
	}

	wu := &model.WarrantyUnit{
		ID:            uuid.New().String(),
		ProductUnitID: u.ID,
		WarrantyID:    w.ID,
		WarrantyType:  w.WarrantyType,
		WarrantyStart: start,
		WarrantyEnd:   w.EndFrom(start),
		CreatedAt:     uc.now(),
	}
	if err := uc.repo.CreateWarrantyUnit(ctx, wu); err != nil {
		return nil, err
	}

	if w.WarrantyType == model.WarrantyConsumer {
		if err := uc.units.SetWarranty(ctx, u.ID, w.ID, wu.CreatedAt); err != nil {
			return nil, err
		}
		u.WarrantyID = &wu.WarrantyID
	}
	return wu, nil
}

// AttachProductWarranties opens one window per warranty type linked to the
// unit's product. When several templates of one type are linked, the
// earliest link wins.
func (uc *warrantyUseCase) AttachProductWarranties(ctx context.Context, u *model.ProductUnit, start time.Time) ([]model.WarrantyUnit, error) {
	var attached []model.WarrantyUnit
	err := uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		templates, err := uc.repo.FindTemplatesByProduct(ctx, u.ProductID)
		if err != nil {
			return err
		}

		seen := map[model.WarrantyType]bool{}
		for i := range templates {
			w := &templates[i]
			if seen[w.WarrantyType] {
				uc.logger.Warn("skipping extra warranty template of the same type",
					zap.String("product_id", u.ProductID),
					zap.String("warranty_id", w.ID),
				)
				continue
			}
			seen[w.WarrantyType] = true

			wu, err := uc.attach(ctx, u, w, start)
			if err != nil {
				return err
			}
			attached = append(attached, *wu)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return attached, nil
}

func (uc *warrantyUseCase) LookupUnitWarranty(ctx context.Context, productID, serial string) (*dto.UnitWarranty, error) {
	if productID == "" || serial == "" {
		return nil, apperror.Validation("product id and serial number are required")
	}

	u, err := uc.units.FindBySerial(ctx, productID, serial)
	if err != nil {
		return nil, apperror.Ensure(err)
	}
	if u == nil {
		return nil, apperror.NotFound("product_unit", serial)
	}

	wus, err := uc.repo.FindWarrantyUnitsByUnit(ctx, u.ID)
	if err != nil {
		return nil, apperror.Ensure(err)
	}

	now := uc.now()
	out := &dto.UnitWarranty{Unit: *u, CheckedAt: now, Warranties: []dto.WarrantyStatusView{}}
	for _, wu := range wus {
		w, err := uc.repo.FindTemplateByID(ctx, wu.WarrantyID)
		if err != nil {
			return nil, apperror.Ensure(err)
		}
		status := wu.StatusAt(now)
		out.Warranties = append(out.Warranties, dto.WarrantyStatusView{
			WarrantyUnit: wu,
			Warranty:     w,
			Status:       status,
		})
		if wu.WarrantyType == model.WarrantyConsumer && status == model.WarrantyActive {
			out.Eligible = true
		}
	}
	return out, nil
}

func (uc *warrantyUseCase) CreateClaim(ctx context.Context, input *dto.CreateClaimInput) (*model.WarrantyClaim, error) {
	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	var claim *model.WarrantyClaim
	err := uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		u, err := uc.units.FindByID(ctx, input.ProductUnitID)
		if err != nil {
			return err
		}
		if u == nil {
			return apperror.NotFound("product_unit", input.ProductUnitID)
		}

		wus, err := uc.repo.FindWarrantyUnitsByUnit(ctx, u.ID)
		if err != nil {
			return err
		}

		now := uc.now()
		var active *model.WarrantyUnit
		for i := range wus {
			if wus[i].WarrantyType == model.WarrantyConsumer && wus[i].StatusAt(now) == model.WarrantyActive {
				active = &wus[i]
				break
			}
		}
		if active == nil {
			return apperror.New(apperror.KindNoActiveWarranty, "unit %s has no active consumer warranty", u.ID).
				With("product_unit_id", u.ID)
		}

		claim = &model.WarrantyClaim{
			ID:                uuid.New().String(),
			WarrantyID:        active.WarrantyID,
			ProductUnitID:     u.ID,
			ClaimType:         input.ClaimType,
			Priority:          input.Priority,
			ResolutionDetails: input.ResolutionDetails,
			AssignedTo:        userPtr(input.AssignedTo),
			CreatedBy:         userPtr(input.CreatedBy),
			CreatedAt:         now,
			UpdatedAt:         now,
		}
		return uc.repo.CreateClaim(ctx, claim)
	})
	if err != nil {
		if apperror.KindOf(err) == apperror.KindInternal {
			uc.logger.Error("claim creation failed", zap.String("product_unit_id", input.ProductUnitID), zap.Error(err))
		} else {
			uc.logger.Warn("claim rejected", zap.String("product_unit_id", input.ProductUnitID), zap.Error(err))
		}
		return nil, err
	}

	uc.logger.Info("warranty claim created",
		zap.String("claim_id", claim.ID),
		zap.String("product_unit_id", claim.ProductUnitID),
	)
	return claim, nil
}

func (uc *warrantyUseCase) ListClaims(ctx context.Context, productUnitID string) ([]model.WarrantyClaim, error) {
	u, err := uc.units.FindByID(ctx, productUnitID)
	if err != nil {
		return nil, apperror.Ensure(err)
	}
	if u == nil {
		return nil, apperror.NotFound("product_unit", productUnitID)
	}

	claims, err := uc.repo.FindClaimsByUnit(ctx, productUnitID)
	if err != nil {
		return nil, apperror.Ensure(err)
	}
	return claims, nil
}

func userPtr(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}
