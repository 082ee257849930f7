package handlers

import (
	"github.com/propside/portal-go/internal/application"
)

type Handlers struct {
	Auth     *AuthHandler
	Template *TemplateHandler
	Document *DocumentHandler
	Contract *ContractHandler
}

func New(svc *application.Services) *Handlers {
	return &Handlers{
		Auth:     NewAuthHandler(svc.User),
		Template: NewTemplateHandler(svc.Template),
		Document: NewDocumentHandler(svc.Distribution, svc.Signing),
		Contract: NewContractHandler(svc.Contract),
	}
}
