package repository

import (
	"github.com/propside/portal-go/internal/domain/template"
	"gorm.io/gorm"
)

type TemplateRepo interface {
	GetTemplateByID(id uint) (template.Template, error)
	CreateTemplate(t *template.Template) error
	UpdateTemplate(t *template.Template) error
	DeleteTemplate(id uint) error
	ListTemplates() ([]template.Template, error)
	ListTemplatesByCategory(category template.Category) ([]template.Template, error)
	WithTx(tx *gorm.DB) TemplateRepo
}

type DBTemplateRepo struct {
	db *gorm.DB
}

func NewTemplateRepo(db *gorm.DB) *DBTemplateRepo {
	return &DBTemplateRepo{db: db}
}

func (r *DBTemplateRepo) GetTemplateByID(id uint) (template.Template, error) {
	var t template.Template
	err := r.db.First(&t, id).Error
	return t, err
}

func (r *DBTemplateRepo) CreateTemplate(t *template.Template) error {
	return r.db.Create(t).Error
}

func (r *DBTemplateRepo) UpdateTemplate(t *template.Template) error {
	return r.db.Save(t).Error
}

func (r *DBTemplateRepo) DeleteTemplate(id uint) error {
	return r.db.Delete(&template.Template{}, id).Error
}

func (r *DBTemplateRepo) ListTemplates() ([]template.Template, error) {
	var templates []template.Template
	err := r.db.Find(&templates).Error
	return templates, err
}

func (r *DBTemplateRepo) ListTemplatesByCategory(category template.Category) ([]template.Template, error) {
	var templates []template.Template
	err := r.db.Where("category = ?", category).Find(&templates).Error
	return templates, err
}

func (r *DBTemplateRepo) WithTx(tx *gorm.DB) TemplateRepo {
	if tx == nil {
		return r
	}
	return &DBTemplateRepo{db: tx}
}
