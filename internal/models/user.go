package models

// Staff roles. The first account registered owns the CRM; later ones are
// staff.
const (
	RoleOwner = "owner"
	RoleStaff = "staff"
)

// User is a staff login. Clients of the CRM never authenticate.
type User struct {
	Base

	Name         string `gorm:"size:120;not null" json:"name"`
	Email        string `gorm:"size:120;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Phone        string `gorm:"size:30" json:"phone"`
	Role         string `gorm:"size:20;not null;default:'staff'" json:"role"`
}
