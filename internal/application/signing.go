package application

import (
	"context"
	"fmt"
	"sync"

	"github.com/propside/portal-go/internal/domain/document"
	"github.com/propside/portal-go/internal/domain/user"
	"github.com/propside/portal-go/internal/render"
	"github.com/propside/portal-go/internal/storage"
	"k8s.io/klog/v2"
)

// SigningService drives the capture flow: present the artifact for review,
// then render and store the recipient-specific signed artifact and record the
// signature. A failed render records nothing.
type SigningService struct {
	Distribution *DistributionService
	Renderer     render.Renderer
	Store        storage.ArtifactStore

	mu       sync.Mutex
	inFlight map[string]bool
}

func NewSigningService(distribution *DistributionService, renderer render.Renderer, store storage.ArtifactStore) *SigningService {
	return &SigningService{
		Distribution: distribution,
		Renderer:     renderer,
		Store:        store,
		inFlight:     make(map[string]bool),
	}
}

// PresentForSignature loads the document artifact for review. Recipients who
// already signed are rejected up front.
func (s *SigningService) PresentForSignature(ctx context.Context, actor user.User, documentID string) (document.Document, []byte, error) {
	doc, err := s.Distribution.GetDocument(actor, documentID)
	if err != nil {
		return document.Document{}, nil, err
	}
	if document.HasSigned(doc.Signatures, actor.UID) {
		return document.Document{}, nil, ErrAlreadySigned
	}

	artifact, err := s.Store.Get(ctx, doc.ArtifactKey)
	if err != nil {
		return document.Document{}, nil, fmt.Errorf("%w: %v", ErrRender, err)
	}
	return doc, artifact, nil
}

// CompleteSignature renders the signed artifact for the acting recipient,
// stores it, and records the signature. At most one capture per
// (document, recipient) pair may be in flight at a time.
func (s *SigningService) CompleteSignature(ctx context.Context, actor user.User, documentID, signerName string) (document.Document, error) {
	guard := fmt.Sprintf("%s:%d", documentID, actor.UID)
	if !s.acquire(guard) {
		return document.Document{}, ErrSignatureInFlight
	}
	defer s.release(guard)

	doc, err := s.Distribution.GetDocument(actor, documentID)
	if err != nil {
		return document.Document{}, err
	}
	if !contains(doc.SentTo, actor.UID) {
		return document.Document{}, ErrNotARecipient
	}
	if document.HasSigned(doc.Signatures, actor.UID) {
		return document.Document{}, ErrAlreadySigned
	}

	signed, err := s.Renderer.Render(ctx, render.Input{
		Title:         doc.Title,
		Description:   doc.Description,
		RecipientName: signerName,
		Fields:        doc.Fields.Data(),
		Signed:        true,
	})
	if err != nil {
		return document.Document{}, fmt.Errorf("%w: %v", ErrRender, err)
	}

	key := fmt.Sprintf("signatures/%s-%d.pdf", doc.DID, actor.UID)
	if err := s.Store.Put(ctx, key, signed, "application/pdf"); err != nil {
		return document.Document{}, fmt.Errorf("%w: %v", ErrRender, err)
	}

	updated, err := s.Distribution.RecordSignature(ctx, actor, documentID, signerName, key)
	if err != nil {
		// The stored artifact is orphaned if the record step fails; clean it
		// up best effort.
		if rmErr := s.Store.Remove(ctx, key); rmErr != nil {
			klog.Warningf("Failed to remove orphaned signed artifact %s: %v", key, rmErr)
		}
		return document.Document{}, err
	}
	return updated, nil
}

func (s *SigningService) acquire(guard string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight[guard] {
		return false
	}
	s.inFlight[guard] = true
	return true
}

func (s *SigningService) release(guard string) {
	s.mu.Lock()
	delete(s.inFlight, guard)
	s.mu.Unlock()
}
