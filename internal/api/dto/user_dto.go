package dto

import "time"

// RegisterDTO 注册
type RegisterDTO struct {
	Email    string `json:"email" binding:"required" validate:"required,email,max=100"`
	Password string `json:"password" binding:"required" validate:"min=6,max=72"`
	Name     string `json:"name" binding:"required" validate:"min=1,max=50"`
}

// CredentialDTO 登录凭证
type CredentialDTO struct {
	Email    string `json:"email" binding:"required" validate:"required,email"`
	Password string `json:"password" binding:"required" validate:"required"`
}

// UserDTO 用户
type UserDTO struct {
	ID        uint64     `json:"id"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// AuthResultDTO 注册/登录结果
type AuthResultDTO struct {
	User  *UserDTO `json:"user"`
	Token string   `json:"token"`
}
