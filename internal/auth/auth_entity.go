package auth

// Credential adalah tampilan tabel employees untuk login.
type Credential struct {
	ID           string `gorm:"column:id"`
	Name         string `gorm:"column:name"`
	Email        string `gorm:"column:email"`
	Role         string `gorm:"column:role"`
	PasswordHash string `gorm:"column:password_hash"`
}

func (Credential) TableName() string {
	return "employees"
}
