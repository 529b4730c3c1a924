package models

import "time"

// User represents a row in the PostgreSQL users table.
type User struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Joined       string  `json:"joined"`
	ProfilePic   *string `json:"profile_pic"`
	PasswordHash string  `json:"-"` // never serialize
}

// LoginEvent is an audit row in the logins table. Written once per
// successful login and never read back by the service.
type LoginEvent struct {
	ID        int64     `json:"id"`
	UserEmail string    `json:"user_email"`
	LoginTime time.Time `json:"login_time"`
}

// ProfileRequest is the JSON body for POST /api/profile.
type ProfileRequest struct {
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Joined     string  `json:"joined"`
	ProfilePic *string `json:"profilePic"`
	Password   string  `json:"password"`
}

// LoginRequest is the JSON body for POST /api/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
