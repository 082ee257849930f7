package application

import (
	"errors"
	"fmt"

	"github.com/propside/portal-go/internal/domain/user"
	"github.com/propside/portal-go/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"k8s.io/klog/v2"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

type UserService struct {
	Repos *repository.Repos
}

func NewUserService(repos *repository.Repos) *UserService {
	return &UserService{Repos: repos}
}

// selfRegisterRoles are the roles a user may pick at registration. Managers
// and admins are provisioned out of band.
var selfRegisterRoles = map[user.Role]bool{
	user.RoleUnitOwner: true,
	user.RoleTenant:    true,
}

func (s *UserService) Register(input user.RegisterDTO) (user.User, error) {
	role := user.RoleTenant
	if input.Role != nil {
		role = user.Role(*input.Role)
		if !selfRegisterRoles[role] {
			return user.User{}, fmt.Errorf("%w: role %q cannot self-register", ErrValidation, role)
		}
	}

	if _, err := s.Repos.User.GetUserByUsername(input.Username); err == nil {
		return user.User{}, fmt.Errorf("%w: username %q is already taken", ErrValidation, input.Username)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return user.User{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.User{}, err
	}

	u := user.User{
		Username: input.Username,
		Password: string(hashed),
		Email:    input.Email,
		FullName: input.FullName,
		Role:     role,
	}
	if err := s.Repos.User.CreateUser(&u); err != nil {
		// The unique index still backs the pre-check under a race.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return user.User{}, fmt.Errorf("%w: username %q is already taken", ErrValidation, input.Username)
		}
		klog.Errorf("Failed to create user %q: %v", input.Username, err)
		return user.User{}, err
	}
	return u, nil
}

func (s *UserService) Authenticate(input user.LoginDTO) (user.User, error) {
	u, err := s.Repos.User.GetUserByUsername(input.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return user.User{}, ErrInvalidCredentials
		}
		return user.User{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(input.Password)); err != nil {
		return user.User{}, ErrInvalidCredentials
	}
	return u, nil
}

func (s *UserService) GetUser(id uint) (user.User, error) {
	u, err := s.Repos.User.GetUserByID(id)
	if err != nil {
		return user.User{}, ErrUserNotFound
	}
	return u, nil
}
