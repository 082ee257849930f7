package application_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/propside/portal-go/internal/application"
	"github.com/propside/portal-go/internal/domain/document"
	"github.com/propside/portal-go/internal/domain/template"
	"github.com/propside/portal-go/internal/domain/user"
	"github.com/propside/portal-go/internal/notify"
	rendermock "github.com/propside/portal-go/internal/render/mock"
	"github.com/propside/portal-go/internal/repository"
	storagemock "github.com/propside/portal-go/internal/storage/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signingFixture struct {
	signing  *application.SigningService
	dist     *application.DistributionService
	repos    *repository.Repos
	renderer *rendermock.MockRenderer
	store    *storagemock.MockArtifactStore
	manager  user.User
	owner    user.User
	doc      document.Document
}

func setupSigning(t *testing.T) *signingFixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	repos := newRepos(t)
	renderer := rendermock.NewMockRenderer(ctrl)
	store := storagemock.NewMockArtifactStore(ctrl)

	dist := application.NewDistributionService(repos, renderer, store, notify.NewChangeBus())
	signing := application.NewSigningService(dist, renderer, store)

	manager := createUser(t, repos, "manager", user.RolePropertyManager)
	owner := createUser(t, repos, "owner1", user.RoleUnitOwner)
	tpl := createTemplate(t, repos, template.CategoryAgreements, nil)

	renderer.EXPECT().Render(gomock.Any(), gomock.Any()).Return([]byte("unsigned"), nil)
	store.EXPECT().Put(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	doc, err := dist.Issue(context.Background(), manager, document.IssueDocumentDTO{
		TemplateID: tpl.TID,
		Title:      "Renewal",
		Recipients: []uint{owner.UID},
	})
	require.NoError(t, err)

	return &signingFixture{
		signing:  signing,
		dist:     dist,
		repos:    repos,
		renderer: renderer,
		store:    store,
		manager:  manager,
		owner:    owner,
		doc:      doc,
	}
}

func TestPresentForSignature(t *testing.T) {
	t.Run("returns artifact for review", func(t *testing.T) {
		f := setupSigning(t)
		f.store.EXPECT().Get(gomock.Any(), f.doc.ArtifactKey).Return([]byte("unsigned"), nil)

		doc, artifact, err := f.signing.PresentForSignature(context.Background(), f.owner, f.doc.DID)
		require.NoError(t, err)
		assert.Equal(t, f.doc.DID, doc.DID)
		assert.Equal(t, []byte("unsigned"), artifact)
	})

	t.Run("storage failure surfaces as render error", func(t *testing.T) {
		f := setupSigning(t)
		f.store.EXPECT().Get(gomock.Any(), f.doc.ArtifactKey).Return(nil, errors.New("bucket gone"))

		_, _, err := f.signing.PresentForSignature(context.Background(), f.owner, f.doc.DID)
		assert.ErrorIs(t, err, application.ErrRender)
	})
}

func TestCompleteSignature(t *testing.T) {
	t.Run("renders, stores and records", func(t *testing.T) {
		f := setupSigning(t)
		f.renderer.EXPECT().Render(gomock.Any(), gomock.Any()).Return([]byte("signed"), nil)
		f.store.EXPECT().Put(gomock.Any(), gomock.Any(), []byte("signed"), "application/pdf").Return(nil)

		updated, err := f.signing.CompleteSignature(context.Background(), f.owner, f.doc.DID, "Owner One")
		require.NoError(t, err)
		assert.Equal(t, document.StatusCompleted, updated.Status)

		sigs, err := f.repos.Signature.ListSignaturesByDocument(f.doc.DID)
		require.NoError(t, err)
		require.Len(t, sigs, 1)
		assert.Equal(t, "Owner One", sigs[0].SignerName)
	})

	t.Run("render failure records no signature", func(t *testing.T) {
		f := setupSigning(t)
		f.renderer.EXPECT().Render(gomock.Any(), gomock.Any()).Return(nil, errors.New("font missing"))

		_, err := f.signing.CompleteSignature(context.Background(), f.owner, f.doc.DID, "Owner One")
		assert.ErrorIs(t, err, application.ErrRender)

		sigs, err := f.repos.Signature.ListSignaturesByDocument(f.doc.DID)
		require.NoError(t, err)
		assert.Empty(t, sigs)
	})

	t.Run("store failure records no signature", func(t *testing.T) {
		f := setupSigning(t)
		f.renderer.EXPECT().Render(gomock.Any(), gomock.Any()).Return([]byte("signed"), nil)
		f.store.EXPECT().Put(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("disk full"))

		_, err := f.signing.CompleteSignature(context.Background(), f.owner, f.doc.DID, "Owner One")
		assert.ErrorIs(t, err, application.ErrRender)

		sigs, err := f.repos.Signature.ListSignaturesByDocument(f.doc.DID)
		require.NoError(t, err)
		assert.Empty(t, sigs)
	})

	t.Run("second capture after signing is rejected", func(t *testing.T) {
		f := setupSigning(t)
		f.renderer.EXPECT().Render(gomock.Any(), gomock.Any()).Return([]byte("signed"), nil)
		f.store.EXPECT().Put(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		_, err := f.signing.CompleteSignature(context.Background(), f.owner, f.doc.DID, "Owner One")
		require.NoError(t, err)

		_, err = f.signing.CompleteSignature(context.Background(), f.owner, f.doc.DID, "Owner One")
		assert.ErrorIs(t, err, application.ErrAlreadySigned)

		_, _, err = f.signing.PresentForSignature(context.Background(), f.owner, f.doc.DID)
		assert.ErrorIs(t, err, application.ErrAlreadySigned)
	})

	t.Run("non-recipient cannot sign", func(t *testing.T) {
		f := setupSigning(t)
		outsider := createUser(t, f.repos, "outsider", user.RoleTenant)

		_, err := f.signing.CompleteSignature(context.Background(), outsider, f.doc.DID, "Outsider")
		assert.Error(t, err)

		sigs, err := f.repos.Signature.ListSignaturesByDocument(f.doc.DID)
		require.NoError(t, err)
		assert.Empty(t, sigs)
	})
}
