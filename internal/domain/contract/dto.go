package contract

type IssueContractDTO struct {
	TemplateID uint   `json:"template_id" binding:"required"`
	Title      string `json:"title" binding:"required"`
	OwnerID    uint   `json:"owner_id" binding:"required"`
	Terms      string `json:"terms" binding:"required"`
}

type DisagreeContractDTO struct {
	Reason string `json:"reason" binding:"required"`
}
