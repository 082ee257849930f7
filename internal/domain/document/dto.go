package document

type IssueDocumentDTO struct {
	TemplateID  uint   `json:"template_id" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Recipients  []uint `json:"recipients" binding:"required"`
}

type SignDocumentDTO struct {
	SignerName string `json:"signer_name" binding:"required"`
}
