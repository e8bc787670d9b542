package user

import (
	"example.com/brewery-admin/internal/domain/common"
	"example.com/brewery-admin/internal/domain/page"
)

type User struct {
	ID        int64             `json:"id"`
	Username  string            `json:"username"`
	Name      string            `json:"name"`
	Email     string            `json:"email"`
	Phone     string            `json:"phoneNumber,omitempty"`
	IsActive  bool              `json:"isActive"`
	Roles     []RoleCode        `json:"roles"`
	LastLogin *common.Timestamp `json:"lastLoginDate,omitempty"`
}

func (u User) RowID() int64 { return u.ID }

type CreateInput struct {
	Username string     `json:"username"`
	Name     string     `json:"name"`
	Email    string     `json:"email"`
	Phone    string     `json:"phoneNumber,omitempty"`
	Password string     `json:"password"`
	Roles    []RoleCode `json:"roles"`
}

type UpdateInput struct {
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty"`
	Phone    *string `json:"phoneNumber,omitempty"`
	Password *string `json:"password,omitempty"`
}

type ListUsersFilter struct {
	Name   string        `url:"name,omitempty"`
	Estado common.Estado `url:"estado,omitempty"`
	page.Request
}
