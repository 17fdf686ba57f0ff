package model

import "time"

type WarrantyType int

const (
	WarrantyConsumer     WarrantyType = 1
	WarrantyManufacturer WarrantyType = 2
)

func (t WarrantyType) Valid() bool {
	return t == WarrantyConsumer || t == WarrantyManufacturer
}

func (t WarrantyType) String() string {
	switch t {
	case WarrantyConsumer:
		return "CONSUMER"
	case WarrantyManufacturer:
		return "MANUFACTURER"
	default:
		return "UNKNOWN"
	}
}

type WarrantyStatus string

const (
	WarrantyActive  WarrantyStatus = "ACTIVE"
	WarrantyExpired WarrantyStatus = "EXPIRED"
)

// Warranty is a policy template. Duration is in months.
type Warranty struct {
	BaseModel
	WarrantyNumber string       `db:"warranty_number" json:"warranty_number"`
	WarrantyType   WarrantyType `db:"warranty_type" json:"warranty_type"`
	Duration       int          `db:"duration" json:"duration"`
	Terms          string       `db:"terms" json:"terms"`
	UpdatedBy      *string      `db:"updated_by" json:"updated_by"`
}

// EndFrom is the coverage end for a window opening at start.
func (w *Warranty) EndFrom(start time.Time) time.Time {
	return start.AddDate(0, w.Duration, 0)
}

// WarrantyUnit binds a template to a sold unit. WarrantyType is copied from
// the template at attach time so one unit carries at most one row per type.
type WarrantyUnit struct {
	ID            string       `db:"id" json:"id"`
	ProductUnitID string       `db:"product_unit_id" json:"product_unit_id"`
	WarrantyID    string       `db:"warranty_id" json:"warranty_id"`
	WarrantyType  WarrantyType `db:"warranty_type" json:"warranty_type"`
	WarrantyStart time.Time    `db:"warranty_start" json:"warranty_start"`
	WarrantyEnd   time.Time    `db:"warranty_end" json:"warranty_end"`
	CreatedAt     time.Time    `db:"created_at" json:"created_at"`
}

// StatusAt is ACTIVE strictly before WarrantyEnd and EXPIRED from then on.
// There is no stored status.
func (wu *WarrantyUnit) StatusAt(now time.Time) WarrantyStatus {
	if now.Before(wu.WarrantyEnd) {
		return WarrantyActive
	}
	return WarrantyExpired
}

type ClaimType string

const (
	ClaimRepair      ClaimType = "REPAIR"
	ClaimReplacement ClaimType = "REPLACEMENT"
	ClaimRefund      ClaimType = "REFUND"
)

type ClaimPriority string

const (
	PriorityLow    ClaimPriority = "LOW"
	PriorityMedium ClaimPriority = "MEDIUM"
	PriorityHigh   ClaimPriority = "HIGH"
)

type WarrantyClaim struct {
	ID                string        `db:"id" json:"id"`
	WarrantyID        string        `db:"warranty_id" json:"warranty_id"`
	ProductUnitID     string        `db:"product_unit_id" json:"product_unit_id"`
	ClaimType         ClaimType     `db:"claim_type" json:"claim_type"`
	Priority          ClaimPriority `db:"priority" json:"priority"`
	ResolutionDetails string        `db:"resolution_details" json:"resolution_details"`
	AssignedTo        *string       `db:"assigned_to" json:"assigned_to"`
	CreatedBy         *string       `db:"created_by" json:"created_by"`
	CreatedAt         time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time     `db:"updated_at" json:"updated_at"`
}
