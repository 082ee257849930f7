package template

type CreateTemplateDTO struct {
	Name                 string   `json:"name" binding:"required"`
	Description          string   `json:"description"`
	Category             string   `json:"category" binding:"required"`
	Fields               []Field  `json:"fields" binding:"required"`
	CommissionPercentage *float64 `json:"commission_percentage,omitempty"`
}

type UpdateTemplateDTO struct {
	Name                 *string  `json:"name,omitempty"`
	Description          *string  `json:"description,omitempty"`
	Category             *string  `json:"category,omitempty"`
	Fields               []Field  `json:"fields,omitempty"`
	CommissionPercentage *float64 `json:"commission_percentage,omitempty"`
}
