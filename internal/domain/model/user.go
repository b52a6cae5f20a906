package model

import "time"

// User representa um usuário do sistema
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Nome     string `json:"nome,omitempty"`
	IsAdmin  bool   `json:"is_admin"`
}

// UserEntity é a representação de banco de dados de um usuário
type UserEntity struct {
	ID        string    `gorm:"primaryKey;type:uuid"`
	Username  string    `gorm:"uniqueIndex;not null;size:50"`
	Password  string    `gorm:"not null"`
	Nome      string    `gorm:"size:100"`
	IsAdmin   bool      `gorm:"not null;default:false"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName define o nome da tabela
func (UserEntity) TableName() string {
	return "usuarios"
}

// ToModel converte a entidade para o modelo exposto pela API
func (u *UserEntity) ToModel() *User {
	return &User{
		ID:       u.ID,
		Username: u.Username,
		Nome:     u.Nome,
		IsAdmin:  u.IsAdmin,
	}
}
