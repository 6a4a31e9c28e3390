package domain

import "time"

type Article struct {
	ID       int64     `json:"id"`
	Title    string    `json:"title"`
	Content  string    `json:"content"`
	Image    string    `json:"image"`
	Category string    `json:"category"`
	Author   string    `json:"author"`
	Date     time.Time `json:"date"`
	Views    int       `json:"views"`
	Featured bool      `json:"featured"`
}
