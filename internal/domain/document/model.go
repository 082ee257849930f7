package document

import (
	"time"

	"github.com/propside/portal-go/internal/domain/template"
	"gorm.io/datatypes"
)

type Category string

const (
	CategoryContract  Category = "contract"
	CategoryForm      Category = "form"
	CategoryAgreement Category = "agreement"
	CategoryNotice    Category = "notice"
)

type Status string

const (
	// StatusDraft is defined for forward compatibility; the current issue
	// flow always creates documents in StatusSent.
	StatusDraft     Status = "draft"
	StatusSent      Status = "sent"
	StatusSigned    Status = "signed"
	StatusCompleted Status = "completed"
)

type Document struct {
	DID         string                               `gorm:"primaryKey;column:d_id;size:36" json:"did"`
	Title       string                               `gorm:"size:200;not null" json:"title"`
	Description string                               `gorm:"size:500" json:"description"`
	Category    Category                             `gorm:"size:30;not null" json:"category"`
	ArtifactKey string                               `gorm:"size:300;not null" json:"artifact_key"`
	Fields      datatypes.JSONType[[]template.Field] `json:"fields"`
	SentTo      datatypes.JSONSlice[uint]            `json:"sent_to"`
	Status      Status                               `gorm:"size:20;not null;default:'sent'" json:"status"`
	CreatedBy   uint                                 `gorm:"not null" json:"created_by"`
	CreatedAt   time.Time                            `gorm:"column:create_at;autoCreateTime" json:"created_at"`

	Signatures []Signature `gorm:"foreignKey:DocumentID;references:DID" json:"signatures"`
}

func (Document) TableName() string {
	return "documents"
}

type Signature struct {
	SID         string    `gorm:"primaryKey;column:s_id;size:36" json:"sid"`
	DocumentID  string    `gorm:"size:36;not null;uniqueIndex:idx_document_signer" json:"document_id"`
	SignedBy    uint      `gorm:"not null;uniqueIndex:idx_document_signer" json:"signed_by"`
	SignerName  string    `gorm:"size:100" json:"signer_name"`
	SignedAt    time.Time `gorm:"not null" json:"signed_at"`
	ArtifactKey string    `gorm:"size:300;not null" json:"artifact_key"`
}

func (Signature) TableName() string {
	return "document_signatures"
}
