package template

import (
	"time"

	"gorm.io/datatypes"
)

type Category string

const (
	CategoryContracts  Category = "contracts"
	CategoryForms      Category = "forms"
	CategoryAgreements Category = "agreements"
	CategoryNotices    Category = "notices"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryContracts, CategoryForms, CategoryAgreements, CategoryNotices:
		return true
	}
	return false
}

type FieldType string

const (
	FieldText     FieldType = "text"
	FieldNumber   FieldType = "number"
	FieldEmail    FieldType = "email"
	FieldDate     FieldType = "date"
	FieldTextarea FieldType = "textarea"
	FieldCheckbox FieldType = "checkbox"
)

func (t FieldType) Valid() bool {
	switch t {
	case FieldText, FieldNumber, FieldEmail, FieldDate, FieldTextarea, FieldCheckbox:
		return true
	}
	return false
}

// Field is one entry of a template's ordered field list. Fields are stored
// inline as JSON; documents issued from a template carry their own frozen
// copy, so template edits never touch already-sent documents.
type Field struct {
	ID           string    `json:"id"`
	Label        string    `json:"label"`
	Type         FieldType `json:"type"`
	Required     bool      `json:"required"`
	DefaultValue *string   `json:"default_value,omitempty"`
}

type Template struct {
	TID                  uint                           `gorm:"primaryKey;column:t_id" json:"tid"`
	Name                 string                         `gorm:"size:200;not null" json:"name"`
	Description          string                         `gorm:"size:500" json:"description"`
	Category             Category                       `gorm:"size:30;not null" json:"category"`
	Fields               datatypes.JSONType[[]Field]    `gorm:"not null" json:"fields"`
	CommissionPercentage *float64                       `json:"commission_percentage,omitempty"`
	CreatedBy            uint                           `gorm:"not null" json:"created_by"`
	CreatedAt            time.Time                      `gorm:"column:create_at;autoCreateTime" json:"created_at"`
	UpdatedAt            time.Time                      `gorm:"column:update_at;autoUpdateTime" json:"updated_at"`
}

func (Template) TableName() string {
	return "templates"
}
