package repository

import (
	"github.com/propside/portal-go/internal/domain/contract"
	"gorm.io/gorm"
)

type ContractRepo interface {
	GetContractByID(id string) (contract.Contract, error)
	CreateContract(c *contract.Contract) error
	UpdateContract(c *contract.Contract) error
	ListContracts() ([]contract.Contract, error)
	ListContractsByOwner(uid uint) ([]contract.Contract, error)
	WithTx(tx *gorm.DB) ContractRepo
}

type DBContractRepo struct {
	db *gorm.DB
}

func NewContractRepo(db *gorm.DB) *DBContractRepo {
	return &DBContractRepo{db: db}
}

func (r *DBContractRepo) GetContractByID(id string) (contract.Contract, error) {
	var c contract.Contract
	err := r.db.Where("c_id = ?", id).First(&c).Error
	return c, err
}

func (r *DBContractRepo) CreateContract(c *contract.Contract) error {
	return r.db.Create(c).Error
}

func (r *DBContractRepo) UpdateContract(c *contract.Contract) error {
	return r.db.Save(c).Error
}

func (r *DBContractRepo) ListContracts() ([]contract.Contract, error) {
	var contracts []contract.Contract
	err := r.db.Find(&contracts).Error
	return contracts, err
}

func (r *DBContractRepo) ListContractsByOwner(uid uint) ([]contract.Contract, error) {
	var contracts []contract.Contract
	err := r.db.Where("owner_id = ?", uid).Find(&contracts).Error
	return contracts, err
}

func (r *DBContractRepo) WithTx(tx *gorm.DB) ContractRepo {
	if tx == nil {
		return r
	}
	return &DBContractRepo{db: tx}
}
