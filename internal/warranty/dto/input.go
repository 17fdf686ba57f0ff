package dto

import (
	"time"

	"github.com/fekuna/omnipos-stock-service/internal/model"
)

type CreateTemplateInput struct {
	WarrantyNumber string             `validate:"required,max=64"`
	WarrantyType   model.WarrantyType `validate:"oneof=1 2"`
	Duration       int                `validate:"gt=0"`
	Terms          string
	UserID         string
}

// UpdateTemplateInput changes only the fields that are set.
type UpdateTemplateInput struct {
	ID             string  `validate:"required"`
	WarrantyNumber *string `validate:"omitempty,min=1,max=64"`
	Duration       *int    `validate:"omitempty,gt=0"`
	Terms          *string
	UserID         string
}

type CreateClaimInput struct {
	ProductUnitID     string              `validate:"required"`
	ClaimType         model.ClaimType     `validate:"oneof=REPAIR REPLACEMENT REFUND"`
	Priority          model.ClaimPriority `validate:"oneof=LOW MEDIUM HIGH"`
	ResolutionDetails string
	AssignedTo        string
	CreatedBy         string
}

type WarrantyStatusView struct {
	WarrantyUnit model.WarrantyUnit   `json:"warranty_unit"`
	Warranty     *model.Warranty      `json:"warranty"`
	Status       model.WarrantyStatus `json:"status"`
}

// UnitWarranty is a unit with every warranty window it carries and the
// status of each at lookup time.
type UnitWarranty struct {
	Unit       model.ProductUnit    `json:"unit"`
	Warranties []WarrantyStatusView `json:"warranties"`
	// Eligible reports whether a claim would be admitted right now.
	Eligible  bool      `json:"eligible"`
	CheckedAt time.Time `json:"checked_at"`
}
