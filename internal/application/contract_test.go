package application_test

import (
	"context"
	"sync"
	"testing"

	"github.com/propside/portal-go/internal/application"
	"github.com/propside/portal-go/internal/domain/contract"
	"github.com/propside/portal-go/internal/domain/template"
	"github.com/propside/portal-go/internal/domain/user"
	"github.com/propside/portal-go/internal/notify"
	"github.com/propside/portal-go/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupContract(t *testing.T) (*application.ContractService, *repository.Repos) {
	t.Helper()
	repos := newRepos(t)
	svc := application.NewContractService(repos, stubRenderer{}, newMemStore(), notify.NewChangeBus())
	return svc, repos
}

func TestIssueContract(t *testing.T) {
	svc, repos := setupContract(t)
	ctx := context.Background()

	manager := createUser(t, repos, "manager", user.RolePropertyManager)
	owner := createUser(t, repos, "owner1", user.RoleUnitOwner)
	tpl := createTemplate(t, repos, template.CategoryContracts, floatPtr(15))

	t.Run("issue snapshots commission and fields", func(t *testing.T) {
		c, err := svc.Issue(ctx, manager, contract.IssueContractDTO{
			TemplateID: tpl.TID,
			Title:      "Management Agreement",
			OwnerID:    owner.UID,
			Terms:      "Standard management terms",
		})
		require.NoError(t, err)
		assert.Equal(t, contract.StatusSent, c.Status)
		assert.Equal(t, owner.UID, c.OwnerID)
		assert.Equal(t, 15.0, c.CommissionPercentage)
		assert.Len(t, c.Fields.Data(), 2)
		assert.NotEmpty(t, c.ArtifactKey)
	})

	t.Run("owner cannot issue", func(t *testing.T) {
		_, err := svc.Issue(ctx, owner, contract.IssueContractDTO{
			TemplateID: tpl.TID,
			Title:      "Nope",
			OwnerID:    owner.UID,
			Terms:      "x",
		})
		assert.ErrorIs(t, err, application.ErrPermissionDenied)
	})

	t.Run("non-contract template rejected", func(t *testing.T) {
		formTpl := createTemplate(t, repos, template.CategoryForms, nil)
		_, err := svc.Issue(ctx, manager, contract.IssueContractDTO{
			TemplateID: formTpl.TID,
			Title:      "Nope",
			OwnerID:    owner.UID,
			Terms:      "x",
		})
		assert.ErrorIs(t, err, application.ErrValidation)
	})

	t.Run("unknown owner rejected", func(t *testing.T) {
		_, err := svc.Issue(ctx, manager, contract.IssueContractDTO{
			TemplateID: tpl.TID,
			Title:      "Nope",
			OwnerID:    9999,
			Terms:      "x",
		})
		assert.ErrorIs(t, err, application.ErrUserNotFound)
	})
}

func TestContractReview(t *testing.T) {
	svc, repos := setupContract(t)
	ctx := context.Background()

	manager := createUser(t, repos, "manager", user.RolePropertyManager)
	owner := createUser(t, repos, "owner1", user.RoleUnitOwner)
	other := createUser(t, repos, "owner2", user.RoleUnitOwner)
	tpl := createTemplate(t, repos, template.CategoryContracts, floatPtr(15))

	issue := func(t *testing.T) contract.Contract {
		c, err := svc.Issue(ctx, manager, contract.IssueContractDTO{
			TemplateID: tpl.TID,
			Title:      "Management Agreement",
			OwnerID:    owner.UID,
			Terms:      "Standard terms",
		})
		require.NoError(t, err)
		return c
	}

	t.Run("disagree records reason and stays terminal", func(t *testing.T) {
		c := issue(t)

		updated, err := svc.Disagree(ctx, owner, c.CID, "rate too low")
		require.NoError(t, err)
		assert.Equal(t, contract.StatusDisagreed, updated.Status)
		require.NotNil(t, updated.DisagreementReason)
		assert.Equal(t, "rate too low", *updated.DisagreementReason)
		assert.Nil(t, updated.AgreedAt)
		assert.NotNil(t, updated.DisagreedAt)
		assert.NotNil(t, updated.ReviewedAt)

		_, err = svc.Agree(ctx, owner, c.CID)
		assert.ErrorIs(t, err, application.ErrInvalidTransition)
		_, err = svc.Disagree(ctx, owner, c.CID, "still no")
		assert.ErrorIs(t, err, application.ErrInvalidTransition)
	})

	t.Run("agree sets timestamps and is terminal", func(t *testing.T) {
		c := issue(t)

		updated, err := svc.Agree(ctx, owner, c.CID)
		require.NoError(t, err)
		assert.Equal(t, contract.StatusAgreed, updated.Status)
		assert.NotNil(t, updated.AgreedAt)
		assert.Nil(t, updated.DisagreedAt)

		_, err = svc.Disagree(ctx, owner, c.CID, "changed my mind")
		assert.ErrorIs(t, err, application.ErrInvalidTransition)
	})

	t.Run("concurrent reviews settle exactly once", func(t *testing.T) {
		c := issue(t)

		var wg sync.WaitGroup
		results := make([]error, 2)
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, results[0] = svc.Agree(ctx, owner, c.CID)
		}()
		go func() {
			defer wg.Done()
			_, results[1] = svc.Disagree(ctx, owner, c.CID, "changed my mind")
		}()
		wg.Wait()

		got, err := svc.GetContract(owner, c.CID)
		require.NoError(t, err)
		require.True(t, got.Status.Terminal())

		switch {
		case results[0] == nil:
			assert.ErrorIs(t, results[1], application.ErrInvalidTransition)
			assert.Equal(t, contract.StatusAgreed, got.Status)
		case results[1] == nil:
			assert.ErrorIs(t, results[0], application.ErrInvalidTransition)
			assert.Equal(t, contract.StatusDisagreed, got.Status)
		default:
			t.Fatalf("no transition succeeded: %v / %v", results[0], results[1])
		}
	})

	t.Run("disagree requires a reason", func(t *testing.T) {
		c := issue(t)
		_, err := svc.Disagree(ctx, owner, c.CID, "   ")
		assert.ErrorIs(t, err, application.ErrValidation)
	})

	t.Run("only the owner may review", func(t *testing.T) {
		c := issue(t)
		_, err := svc.Agree(ctx, other, c.CID)
		assert.ErrorIs(t, err, application.ErrPermissionDenied)
	})

	t.Run("owner and manager can view, others not", func(t *testing.T) {
		c := issue(t)

		_, err := svc.GetContract(owner, c.CID)
		assert.NoError(t, err)
		_, err = svc.GetContract(manager, c.CID)
		assert.NoError(t, err)
		_, err = svc.GetContract(other, c.CID)
		assert.ErrorIs(t, err, application.ErrPermissionDenied)
	})

	t.Run("list by owner", func(t *testing.T) {
		contracts, err := svc.ListContractsByOwner(owner)
		require.NoError(t, err)
		assert.NotEmpty(t, contracts)

		contracts, err = svc.ListContractsByOwner(other)
		require.NoError(t, err)
		assert.Empty(t, contracts)
	})
}
