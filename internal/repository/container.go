package repository

import (
	"github.com/propside/portal-go/internal/config/db"
	"gorm.io/gorm"
)

type Repos struct {
	User      UserRepo
	Template  TemplateRepo
	Document  DocumentRepo
	Signature SignatureRepo
	Contract  ContractRepo

	db *gorm.DB
}

func New() *Repos {
	return NewRepositories(db.DB)
}

func NewRepositories(db *gorm.DB) *Repos {
	return &Repos{
		User:      NewUserRepo(db),
		Template:  NewTemplateRepo(db),
		Document:  NewDocumentRepo(db),
		Signature: NewSignatureRepo(db),
		Contract:  NewContractRepo(db),
		db:        db,
	}
}

// Transaction runs fn inside one gorm transaction.
func (r *Repos) Transaction(fn func(tx *gorm.DB) error) error {
	return r.db.Transaction(fn)
}
