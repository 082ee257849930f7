package repository

import (
	"github.com/propside/portal-go/internal/domain/document"
	"gorm.io/gorm"
)

type DocumentRepo interface {
	GetDocumentByID(id string) (document.Document, error)
	CreateDocument(d *document.Document) error
	UpdateDocumentStatus(id string, status document.Status) error
	ListDocuments() ([]document.Document, error)
	ListDocumentsByRecipient(uid uint) ([]document.Document, error)
	WithTx(tx *gorm.DB) DocumentRepo
}

type SignatureRepo interface {
	GetSignature(documentID string, signedBy uint) (document.Signature, error)
	CreateSignature(s *document.Signature) error
	ListSignaturesByDocument(documentID string) ([]document.Signature, error)
	ListSignaturesBySigner(uid uint) ([]document.Signature, error)
	WithTx(tx *gorm.DB) SignatureRepo
}

type DBDocumentRepo struct {
	db *gorm.DB
}

func NewDocumentRepo(db *gorm.DB) *DBDocumentRepo {
	return &DBDocumentRepo{db: db}
}

func (r *DBDocumentRepo) GetDocumentByID(id string) (document.Document, error) {
	var d document.Document
	err := r.db.Preload("Signatures").Where("d_id = ?", id).First(&d).Error
	return d, err
}

func (r *DBDocumentRepo) CreateDocument(d *document.Document) error {
	return r.db.Create(d).Error
}

func (r *DBDocumentRepo) UpdateDocumentStatus(id string, status document.Status) error {
	return r.db.Model(&document.Document{}).Where("d_id = ?", id).
		Update("status", status).Error
}

func (r *DBDocumentRepo) ListDocuments() ([]document.Document, error) {
	var docs []document.Document
	err := r.db.Preload("Signatures").Find(&docs).Error
	return docs, err
}

// ListDocumentsByRecipient matches against the JSON-encoded recipient set, so
// filtering happens in memory after the scan.
func (r *DBDocumentRepo) ListDocumentsByRecipient(uid uint) ([]document.Document, error) {
	docs, err := r.ListDocuments()
	if err != nil {
		return nil, err
	}
	out := make([]document.Document, 0, len(docs))
	for _, d := range docs {
		for _, recipient := range d.SentTo {
			if recipient == uid {
				out = append(out, d)
				break
			}
		}
	}
	return out, nil
}

func (r *DBDocumentRepo) WithTx(tx *gorm.DB) DocumentRepo {
	if tx == nil {
		return r
	}
	return &DBDocumentRepo{db: tx}
}

type DBSignatureRepo struct {
	db *gorm.DB
}

func NewSignatureRepo(db *gorm.DB) *DBSignatureRepo {
	return &DBSignatureRepo{db: db}
}

func (r *DBSignatureRepo) GetSignature(documentID string, signedBy uint) (document.Signature, error) {
	var s document.Signature
	err := r.db.Where("document_id = ? AND signed_by = ?", documentID, signedBy).First(&s).Error
	return s, err
}

func (r *DBSignatureRepo) CreateSignature(s *document.Signature) error {
	return r.db.Create(s).Error
}

func (r *DBSignatureRepo) ListSignaturesByDocument(documentID string) ([]document.Signature, error) {
	var sigs []document.Signature
	err := r.db.Where("document_id = ?", documentID).Find(&sigs).Error
	return sigs, err
}

func (r *DBSignatureRepo) ListSignaturesBySigner(uid uint) ([]document.Signature, error) {
	var sigs []document.Signature
	err := r.db.Where("signed_by = ?", uid).Find(&sigs).Error
	return sigs, err
}

func (r *DBSignatureRepo) WithTx(tx *gorm.DB) SignatureRepo {
	if tx == nil {
		return r
	}
	return &DBSignatureRepo{db: tx}
}
