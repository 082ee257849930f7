package application

import (
	"github.com/propside/portal-go/internal/notify"
	"github.com/propside/portal-go/internal/render"
	"github.com/propside/portal-go/internal/repository"
	"github.com/propside/portal-go/internal/storage"
)

type Services struct {
	User         *UserService
	Template     *TemplateService
	Distribution *DistributionService
	Contract     *ContractService
	Signing      *SigningService
}

func New(repos *repository.Repos, renderer render.Renderer, store storage.ArtifactStore, bus *notify.ChangeBus) *Services {
	distribution := NewDistributionService(repos, renderer, store, bus)
	return &Services{
		User:         NewUserService(repos),
		Template:     NewTemplateService(repos, bus),
		Distribution: distribution,
		Contract:     NewContractService(repos, renderer, store, bus),
		Signing:      NewSigningService(distribution, renderer, store),
	}
}
