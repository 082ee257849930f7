package application

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/propside/portal-go/internal/domain/document"
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

// DistributionService turns templates into sent documents and tracks the
// per-recipient signature lifecycle. Document status is always derived from
// the signature set via document.DeriveStatus, both on write and on read.
type DistributionService struct {
	Repos    *repository.Repos
	Renderer render.Renderer
	Store    storage.ArtifactStore
	Bus      *notify.ChangeBus

	// mu makes each read-modify-write of the signature collection a single
	// critical section, so a double-submitted signature cannot interleave.
	mu sync.Mutex
}

func NewDistributionService(repos *repository.Repos, renderer render.Renderer, store storage.ArtifactStore, bus *notify.ChangeBus) *DistributionService {
	return &DistributionService{Repos: repos, Renderer: renderer, Store: store, Bus: bus}
}

var categoryByTemplate = map[template.Category]document.Category{
	template.CategoryContracts:  document.CategoryContract,
	template.CategoryForms:      document.CategoryForm,
	template.CategoryAgreements: document.CategoryAgreement,
	template.CategoryNotices:    document.CategoryNotice,
}

// Issue creates a document in sent status from a template. The template's
// fields are snapshotted at this instant; later template edits never change
// the issued document.
func (s *DistributionService) Issue(ctx context.Context, actor user.User, input document.IssueDocumentDTO) (document.Document, error) {
	if !permission.Allowed(actor.Role, permission.DocumentIssue) {
		return document.Document{}, ErrPermissionDenied
	}

	recipients := dedupe(input.Recipients)
	if len(recipients) == 0 {
		return document.Document{}, fmt.Errorf("%w: recipients must not be empty", ErrValidation)
	}
	known, err := s.Repos.User.ListUsersByIDs(recipients)
	if err != nil {
		return document.Document{}, err
	}
	if len(known) != len(recipients) {
		return document.Document{}, fmt.Errorf("%w: unknown recipient", ErrValidation)
	}

	tpl, err := s.Repos.Template.GetTemplateByID(input.TemplateID)
	if err != nil {
		return document.Document{}, ErrTemplateNotFound
	}

	fields := snapshotFields(tpl.Fields.Data())
	artifact, err := s.Renderer.Render(ctx, render.Input{
		Title:       input.Title,
		Description: input.Description,
		Fields:      fields,
	})
	if err != nil {
		return document.Document{}, fmt.Errorf("%w: %v", ErrRender, err)
	}

	did := uuid.NewString()
	key := fmt.Sprintf("documents/%s.pdf", did)
	if err := s.Store.Put(ctx, key, artifact, "application/pdf"); err != nil {
		klog.Errorf("Failed to store artifact for document %s: %v", did, err)
		return document.Document{}, err
	}

	doc := document.Document{
		DID:         did,
		Title:       input.Title,
		Description: input.Description,
		Category:    categoryByTemplate[tpl.Category],
		ArtifactKey: key,
		Fields:      datatypes.NewJSONType(fields),
		SentTo:      datatypes.NewJSONSlice(recipients),
		Status:      document.StatusSent,
		CreatedBy:   actor.UID,
	}
	if err := s.Repos.Document.CreateDocument(&doc); err != nil {
		klog.Errorf("Failed to persist document %s: %v", did, err)
		return document.Document{}, err
	}

	s.publish(ctx, notify.CollectionDocuments, notify.ChangeCreated, did)
	return doc, nil
}

// RecordSignature appends a signature for the acting recipient and recomputes
// the document status. The signature append and status write happen in one
// transaction; the service mutex keeps concurrent calls from interleaving
// between the idempotence check and the insert.
func (s *DistributionService) RecordSignature(ctx context.Context, actor user.User, documentID, signerName, artifactKey string) (document.Document, error) {
	if !permission.Allowed(actor.Role, permission.DocumentSign) {
		return document.Document{}, ErrPermissionDenied
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var updated document.Document
	err := s.Repos.Transaction(func(tx *gorm.DB) error {
		docRepo := s.Repos.Document.WithTx(tx)
		sigRepo := s.Repos.Signature.WithTx(tx)

		doc, err := docRepo.GetDocumentByID(documentID)
		if err != nil {
			return ErrDocumentNotFound
		}

		if !contains(doc.SentTo, actor.UID) {
			return ErrNotARecipient
		}
		if document.HasSigned(doc.Signatures, actor.UID) {
			return ErrAlreadySigned
		}

		sig := document.Signature{
			SID:         uuid.NewString(),
			DocumentID:  doc.DID,
			SignedBy:    actor.UID,
			SignerName:  signerName,
			SignedAt:    time.Now(),
			ArtifactKey: artifactKey,
		}
		if err := sigRepo.CreateSignature(&sig); err != nil {
			return err
		}

		doc.Signatures = append(doc.Signatures, sig)
		status := document.DeriveStatus(doc.SentTo, doc.Signatures)
		if err := docRepo.UpdateDocumentStatus(doc.DID, status); err != nil {
			return err
		}
		doc.Status = status
		updated = doc
		return nil
	})
	if err != nil {
		if !isRejection(err) {
			klog.Errorf("Failed to record signature on document %s: %v", documentID, err)
		}
		return document.Document{}, err
	}

	s.publish(ctx, notify.CollectionSignatures, notify.ChangeCreated, updated.DID)
	s.publish(ctx, notify.CollectionDocuments, notify.ChangeUpdated, updated.DID)
	return updated, nil
}

func (s *DistributionService) GetDocument(actor user.User, id string) (document.Document, error) {
	doc, err := s.Repos.Document.GetDocumentByID(id)
	if err != nil {
		return document.Document{}, ErrDocumentNotFound
	}
	if !s.canView(actor, doc) {
		return document.Document{}, ErrPermissionDenied
	}
	doc.Status = document.DeriveStatus(doc.SentTo, doc.Signatures)
	return doc, nil
}

// ListDocuments returns every document; manager-only.
func (s *DistributionService) ListDocuments(actor user.User) ([]document.Document, error) {
	if !permission.Allowed(actor.Role, permission.DocumentViewAll) {
		return nil, ErrPermissionDenied
	}
	docs, err := s.Repos.Document.ListDocuments()
	if err != nil {
		return nil, err
	}
	for i := range docs {
		docs[i].Status = document.DeriveStatus(docs[i].SentTo, docs[i].Signatures)
	}
	return docs, nil
}

func (s *DistributionService) ListDocumentsForRecipient(actor user.User) ([]document.Document, error) {
	docs, err := s.Repos.Document.ListDocumentsByRecipient(actor.UID)
	if err != nil {
		return nil, err
	}
	for i := range docs {
		docs[i].Status = document.DeriveStatus(docs[i].SentTo, docs[i].Signatures)
	}
	return docs, nil
}

// ListSignatures exposes the aggregate signature list across recipients;
// manager-only.
func (s *DistributionService) ListSignatures(actor user.User, documentID string) ([]document.Signature, error) {
	if !permission.Allowed(actor.Role, permission.DocumentViewAll) {
		return nil, ErrPermissionDenied
	}
	if _, err := s.Repos.Document.GetDocumentByID(documentID); err != nil {
		return nil, ErrDocumentNotFound
	}
	return s.Repos.Signature.ListSignaturesByDocument(documentID)
}

// ListSignaturesForSigner returns the acting user's own signature history.
func (s *DistributionService) ListSignaturesForSigner(actor user.User) ([]document.Signature, error) {
	return s.Repos.Signature.ListSignaturesBySigner(actor.UID)
}

func (s *DistributionService) HasSigned(documentID string, uid uint) (bool, error) {
	_, err := s.Repos.Signature.GetSignature(documentID, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *DistributionService) canView(actor user.User, doc document.Document) bool {
	if permission.Allowed(actor.Role, permission.DocumentViewAll) {
		return true
	}
	if actor.UID == doc.CreatedBy {
		return true
	}
	return contains(doc.SentTo, actor.UID)
}

func (s *DistributionService) publish(ctx context.Context, collection notify.Collection, action notify.ChangeAction, id string) {
	if s.Bus == nil {
		return
	}
	event := notify.ChangeEvent{Collection: collection, Action: action, ID: id}
	if err := s.Bus.Publish(ctx, collection, event); err != nil {
		klog.Warningf("Change notification for %s failed: %v", collection, err)
	}
}

// isRejection separates user-visible rejections from persistence failures so
// only the latter get logged as errors.
func isRejection(err error) bool {
	return errors.Is(err, ErrAlreadySigned) ||
		errors.Is(err, ErrNotARecipient) ||
		errors.Is(err, ErrDocumentNotFound) ||
		errors.Is(err, ErrValidation)
}

func snapshotFields(fields []template.Field) []template.Field {
	out := make([]template.Field, len(fields))
	copy(out, fields)
	return out
}

func dedupe(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

func contains(ids []uint, id uint) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
