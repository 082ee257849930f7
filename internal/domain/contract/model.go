package contract

import (
	"time"

	"github.com/propside/portal-go/internal/domain/template"
	"gorm.io/datatypes"
)

type Status string

const (
	StatusSent      Status = "sent"
	StatusAgreed    Status = "agreed"
	StatusDisagreed Status = "disagreed"
)

// Terminal reports whether no further transition is permitted.
func (s Status) Terminal() bool {
	return s == StatusAgreed || s == StatusDisagreed
}

// Contract is the single-recipient specialization of a distributed document:
// one owner, commission terms, and an agree/disagree terminal outcome.
type Contract struct {
	CID                  string                               `gorm:"primaryKey;column:c_id;size:36" json:"cid"`
	TemplateID           uint                                 `gorm:"not null" json:"template_id"`
	Title                string                               `gorm:"size:200;not null" json:"title"`
	OwnerID              uint                                 `gorm:"not null;index" json:"owner_id"`
	OwnerName            string                               `gorm:"size:100" json:"owner_name"`
	OwnerEmail           string                               `gorm:"size:100" json:"owner_email"`
	Terms                string                               `gorm:"type:text" json:"terms"`
	CommissionPercentage float64                              `gorm:"not null" json:"commission_percentage"`
	Fields               datatypes.JSONType[[]template.Field] `json:"fields"`
	Status               Status                               `gorm:"size:20;not null;default:'sent'" json:"status"`
	DisagreementReason   *string                              `gorm:"size:500" json:"disagreement_reason,omitempty"`
	ArtifactKey          string                               `gorm:"size:300;not null" json:"artifact_key"`
	ReviewedAt           *time.Time                           `json:"reviewed_at,omitempty"`
	AgreedAt             *time.Time                           `json:"agreed_at,omitempty"`
	DisagreedAt          *time.Time                           `json:"disagreed_at,omitempty"`
	CreatedBy            uint                                 `gorm:"not null" json:"created_by"`
	CreatedAt            time.Time                            `gorm:"column:create_at;autoCreateTime" json:"created_at"`
}

func (Contract) TableName() string {
	return "contracts"
}
