package user

import "time"

type Role string

const (
	RoleAdmin           Role = "admin"
	RolePropertyManager Role = "property_manager"
	RoleUnitOwner       Role = "unit_owner"
	RoleTenant          Role = "tenant"
)

type User struct {
	UID       uint      `gorm:"primaryKey;column:u_id" json:"uid"`
	Username  string    `gorm:"size:50;not null;unique" json:"username"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	Email     *string   `gorm:"size:100" json:"email"`
	FullName  *string   `gorm:"size:100" json:"full_name"`
	Role      Role      `gorm:"size:30;not null;default:'tenant'" json:"role"`
	CreatedAt time.Time `gorm:"column:create_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:update_at;autoUpdateTime" json:"updated_at"`
}
