package matching

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Role string

const (
	RoleInvestor Role = "investor"
	RoleFounder  Role = "founder"
)

func (r Role) Valid() bool {
	return r == RoleInvestor || r == RoleFounder
}

// Opposite resolves the role a profile discovers by default. Kept as an
// explicit switch so an unknown role fails instead of flipping a boolean.
func (r Role) Opposite() (Role, error) {
	switch r {
	case RoleInvestor:
		return RoleFounder, nil
	case RoleFounder:
		return RoleInvestor, nil
	default:
		return "", fmt.Errorf("no opposite for role %q", string(r))
	}
}

// InvestorAttributes are the declared scoring attributes of an investor
// profile. Every field is optional; absence means "no signal".
type InvestorAttributes struct {
	FocusSectors []string `json:"focus_sectors,omitempty"`
	FocusStages  []string `json:"focus_stages,omitempty"`
	CheckSizeMin *int64   `json:"check_size_min,omitempty"`
	CheckSizeMax *int64   `json:"check_size_max,omitempty"`
}

// FounderAttributes are the declared scoring attributes of a founder
// profile. RevenueRunRate is monthly; annualized as rate*12 when matched
// against an investor check-size range.
type FounderAttributes struct {
	FocusSectors   []string `json:"focus_sectors,omitempty"`
	FocusStages    []string `json:"focus_stages,omitempty"`
	RevenueRunRate *float64 `json:"revenue_run_rate,omitempty"`
}

type Profile struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Role        Role      `gorm:"type:text;not null;index;column:role" json:"role"`
	DisplayName string    `gorm:"not null;column:display_name" json:"display_name"`
	Headline    string    `gorm:"column:headline" json:"headline,omitempty"`
	Location    *string   `gorm:"column:location" json:"location,omitempty"`

	SoftVerified   bool `gorm:"not null;default:false;column:soft_verified" json:"soft_verified"`
	ManualReviewed bool `gorm:"not null;default:false;column:manual_reviewed" json:"manual_reviewed"`

	InvestorAttrs *datatypes.JSONType[InvestorAttributes] `gorm:"column:investor_attributes" json:"investor_attributes,omitempty"`
	FounderAttrs  *datatypes.JSONType[FounderAttributes]  `gorm:"column:founder_attributes" json:"founder_attributes,omitempty"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Profile) TableName() string { return "profile" }

func (p *Profile) Verified() bool {
	return p.SoftVerified || p.ManualReviewed
}

// FocusSectors returns the declared sectors for either role, nil when
// undeclared.
func (p *Profile) FocusSectors() []string {
	switch p.Role {
	case RoleInvestor:
		if p.InvestorAttrs != nil {
			return p.InvestorAttrs.Data().FocusSectors
		}
	case RoleFounder:
		if p.FounderAttrs != nil {
			return p.FounderAttrs.Data().FocusSectors
		}
	}
	return nil
}

func (p *Profile) FocusStages() []string {
	switch p.Role {
	case RoleInvestor:
		if p.InvestorAttrs != nil {
			return p.InvestorAttrs.Data().FocusStages
		}
	case RoleFounder:
		if p.FounderAttrs != nil {
			return p.FounderAttrs.Data().FocusStages
		}
	}
	return nil
}

// CheckSizeRange returns the investor's declared check-size bounds. The
// second bound is nil for an open-ended maximum.
func (p *Profile) CheckSizeRange() (*int64, *int64) {
	if p.Role != RoleInvestor || p.InvestorAttrs == nil {
		return nil, nil
	}
	attrs := p.InvestorAttrs.Data()
	return attrs.CheckSizeMin, attrs.CheckSizeMax
}

// RevenueRunRate returns the founder's declared monthly run rate, nil when
// undeclared.
func (p *Profile) RevenueRunRate() *float64 {
	if p.Role != RoleFounder || p.FounderAttrs == nil {
		return nil
	}
	return p.FounderAttrs.Data().RevenueRunRate
}

// NewInvestorAttrs wraps attributes for assignment to Profile.InvestorAttrs.
func NewInvestorAttrs(attrs InvestorAttributes) *datatypes.JSONType[InvestorAttributes] {
	v := datatypes.NewJSONType(attrs)
	return &v
}

func NewFounderAttrs(attrs FounderAttributes) *datatypes.JSONType[FounderAttributes] {
	v := datatypes.NewJSONType(attrs)
	return &v
}
