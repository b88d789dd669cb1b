package domain

import "time"

type Item struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       string    `json:"price"`
	Type        string    `json:"type"`
	Size        string    `json:"size"`
	Gender      string    `json:"gender"`
	Vendor      string    `json:"vendor"`
	Site        string    `json:"site"`
	Tags        string    `json:"tags"`
	Modified    time.Time `json:"modified"`
}

type User struct {
	ID           int64  `json:"id"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	PasswordHash string `json:"-"`
}
