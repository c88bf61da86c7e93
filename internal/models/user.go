package models

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a registered account.
type User struct {
	ID           uint      `gorm:"primaryKey" csv:"id"`
	Name         string    `gorm:"size:255;not null" csv:"name"`
	Email        string    `gorm:"size:255;not null;index" csv:"email"`
	Country      string    `gorm:"size:100" csv:"country"`
	PasswordHash string    `gorm:"size:255;not null" csv:"password_hash"`
	Role         string    `gorm:"size:50;not null;default:'user'" csv:"role"`
	RegisteredAt Timestamp `gorm:"type:timestamptz" csv:"registered_at"`
	Deleted      bool      `gorm:"not null;default:false;index" csv:"deleted"`
}

func (u *User) GetID() uint     { return u.ID }
func (u *User) SetID(id uint)   { u.ID = id }
func (u *User) IsDeleted() bool { return u.Deleted }
