package models

import "time"

type UserRole string

const (
	RoleAdmin     UserRole = "ADMIN"
	RoleEmployer  UserRole = "EMPLOYER"
	RoleJobSeeker UserRole = "JOB_SEEKER"
)

type User struct {
	ID              int64     `json:"id"`
	Email           string    `json:"email"`
	PhoneNumber     string    `json:"phoneNumber,omitempty"`
	FirstName       string    `json:"firstName"`
	LastName        string    `json:"lastName"`
	FullName        string    `json:"fullName"`
	Role            UserRole  `json:"role"`
	IsActive        bool      `json:"isActive"`
	IsEmailVerified bool      `json:"isEmailVerified"`
	IsPhoneVerified bool      `json:"isPhoneVerified"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}
