package application

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/propside/portal-go/internal/domain/contract"
	"github.com/propside/portal-go/internal/domain/template"
	"github.com/propside/portal-go/internal/domain/user"
	"github.com/propside/portal-go/internal/notify"
	"github.com/propside/portal-go/internal/permission"
	"github.com/propside/portal-go/internal/render"
	"github.com/propside/portal-go/internal/repository"
	"github.com/propside/portal-go/internal/storage"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"k8s.io/klog/v2"
)

// ContractService handles the single-recipient contract variant: one owner,
// commission terms, and a terminal agree/disagree outcome.
type ContractService struct {
	Repos    *repository.Repos
	Renderer render.Renderer
	Store    storage.ArtifactStore
	Bus      *notify.ChangeBus

	// mu makes each review transition a single critical section, so two
	// near-simultaneous calls cannot both pass the terminal-state check.
	mu sync.Mutex
}

func NewContractService(repos *repository.Repos, renderer render.Renderer, store storage.ArtifactStore, bus *notify.ChangeBus) *ContractService {
	return &ContractService{Repos: repos, Renderer: renderer, Store: store, Bus: bus}
}

func (s *ContractService) Issue(ctx context.Context, actor user.User, input contract.IssueContractDTO) (contract.Contract, error) {
	if !permission.Allowed(actor.Role, permission.ContractIssue) {
		return contract.Contract{}, ErrPermissionDenied
	}

	tpl, err := s.Repos.Template.GetTemplateByID(input.TemplateID)
	if err != nil {
		return contract.Contract{}, ErrTemplateNotFound
	}
	if tpl.Category != template.CategoryContracts {
		return contract.Contract{}, fmt.Errorf("%w: template %d is not a contract template", ErrValidation, input.TemplateID)
	}
	if tpl.CommissionPercentage == nil {
		return contract.Contract{}, fmt.Errorf("%w: contract template has no commission percentage", ErrValidation)
	}

	owner, err := s.Repos.User.GetUserByID(input.OwnerID)
	if err != nil {
		return contract.Contract{}, ErrUserNotFound
	}
	ownerName := owner.Username
	if owner.FullName != nil {
		ownerName = *owner.FullName
	}
	ownerEmail := ""
	if owner.Email != nil {
		ownerEmail = *owner.Email
	}

	fields := snapshotFields(tpl.Fields.Data())
	artifact, err := s.Renderer.Render(ctx, render.Input{
		Title:                input.Title,
		RecipientName:        ownerName,
		RecipientEmail:       ownerEmail,
		Fields:               fields,
		Terms:                input.Terms,
		CommissionPercentage: tpl.CommissionPercentage,
	})
	if err != nil {
		return contract.Contract{}, fmt.Errorf("%w: %v", ErrRender, err)
	}

	cid := uuid.NewString()
	key := fmt.Sprintf("contracts/%s.pdf", cid)
	if err := s.Store.Put(ctx, key, artifact, "application/pdf"); err != nil {
		klog.Errorf("Failed to store artifact for contract %s: %v", cid, err)
		return contract.Contract{}, err
	}

	c := contract.Contract{
		CID:                  cid,
		TemplateID:           tpl.TID,
		Title:                input.Title,
		OwnerID:              owner.UID,
		OwnerName:            ownerName,
		OwnerEmail:           ownerEmail,
		Terms:                input.Terms,
		CommissionPercentage: *tpl.CommissionPercentage,
		Fields:               datatypes.NewJSONType(fields),
		Status:               contract.StatusSent,
		ArtifactKey:          key,
		CreatedBy:            actor.UID,
	}
	if err := s.Repos.Contract.CreateContract(&c); err != nil {
		klog.Errorf("Failed to persist contract %s: %v", cid, err)
		return contract.Contract{}, err
	}

	s.publish(ctx, notify.ChangeCreated, cid)
	return c, nil
}

// Agree moves a sent contract to its agreed terminal state. Only the owner
// may review; a finalized contract rejects any further transition.
func (s *ContractService) Agree(ctx context.Context, actor user.User, id string) (contract.Contract, error) {
	return s.transition(ctx, actor, id, func(c *contract.Contract) {
		now := time.Now()
		c.Status = contract.StatusAgreed
		c.ReviewedAt = &now
		c.AgreedAt = &now
	})
}

// Disagree moves a sent contract to its disagreed terminal state. A non-empty
// reason is required.
func (s *ContractService) Disagree(ctx context.Context, actor user.User, id, reason string) (contract.Contract, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return contract.Contract{}, fmt.Errorf("%w: disagreement reason is required", ErrValidation)
	}

	return s.transition(ctx, actor, id, func(c *contract.Contract) {
		now := time.Now()
		c.Status = contract.StatusDisagreed
		c.DisagreementReason = &reason
		c.ReviewedAt = &now
		c.DisagreedAt = &now
	})
}

// transition runs one review transition as a single critical section: load,
// owner and terminal-state checks, apply, and save happen inside one
// transaction under the service mutex, so a contract that reached a terminal
// state can never be overwritten by a racing second review.
func (s *ContractService) transition(ctx context.Context, actor user.User, id string, apply func(*contract.Contract)) (contract.Contract, error) {
	if !permission.Allowed(actor.Role, permission.ContractReview) {
		return contract.Contract{}, ErrPermissionDenied
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var updated contract.Contract
	err := s.Repos.Transaction(func(tx *gorm.DB) error {
		repo := s.Repos.Contract.WithTx(tx)

		c, err := repo.GetContractByID(id)
		if err != nil {
			return ErrContractNotFound
		}
		if actor.UID != c.OwnerID {
			return ErrPermissionDenied
		}
		if c.Status.Terminal() {
			return ErrInvalidTransition
		}

		apply(&c)
		if err := repo.UpdateContract(&c); err != nil {
			klog.Errorf("Failed to update contract %s: %v", id, err)
			return err
		}
		updated = c
		return nil
	})
	if err != nil {
		return contract.Contract{}, err
	}

	s.publish(ctx, notify.ChangeUpdated, updated.CID)
	return updated, nil
}

func (s *ContractService) GetContract(actor user.User, id string) (contract.Contract, error) {
	c, err := s.Repos.Contract.GetContractByID(id)
	if err != nil {
		return contract.Contract{}, ErrContractNotFound
	}
	if actor.UID != c.OwnerID && actor.UID != c.CreatedBy &&
		!permission.Allowed(actor.Role, permission.ContractViewAll) {
		return contract.Contract{}, ErrPermissionDenied
	}
	return c, nil
}

func (s *ContractService) ListContracts(actor user.User) ([]contract.Contract, error) {
	if !permission.Allowed(actor.Role, permission.ContractViewAll) {
		return nil, ErrPermissionDenied
	}
	return s.Repos.Contract.ListContracts()
}

func (s *ContractService) ListContractsByOwner(actor user.User) ([]contract.Contract, error) {
	return s.Repos.Contract.ListContractsByOwner(actor.UID)
}

func (s *ContractService) publish(ctx context.Context, action notify.ChangeAction, id string) {
	if s.Bus == nil {
		return
	}
	event := notify.ChangeEvent{Collection: notify.CollectionContracts, Action: action, ID: id}
	if err := s.Bus.Publish(ctx, notify.CollectionContracts, event); err != nil {
		klog.Warningf("Contract change notification failed: %v", err)
	}
}
