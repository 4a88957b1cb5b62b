package model

// User is a registered participant. Rows are append-only: users are never
// deleted and, outside of an admin-driven password reset, never mutated.
type User struct {
	ID           uint   `gorm:"primarykey" json:"-"`
	Company      string `json:"company"`
	FullName     string `json:"full_name"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	Position     string `json:"position"`
	Department   string `json:"department"`
	Gender       string `json:"gender"`
	PasswordHash string `json:"-"`
}

// AdminCredential is the single administrator login row.
type AdminCredential struct {
	ID           uint   `gorm:"primarykey" json:"-"`
	Username     string `gorm:"uniqueIndex;not null" json:"username"`
	PasswordHash string `json:"-"`
}
