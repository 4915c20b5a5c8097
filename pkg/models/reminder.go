package models

import "time"

// Reminder is a one-shot task scheduled for delivery to its owner
type Reminder struct {
	ID           string    `json:"id" db:"id" bson:"_id"`
	UserID       string    `json:"user_id" db:"user_id" bson:"user_id"`
	UserName     string    `json:"user_name" db:"user_name" bson:"user_name"` // Owner's display name at creation time
	Task         string    `json:"task" db:"task" bson:"task"`
	ScheduledAt  time.Time `json:"scheduled_at" db:"scheduled_at" bson:"scheduled_at"`    // UTC
	LocalDisplay string    `json:"local_display" db:"local_display" bson:"local_display"` // Rendered once in the owner's local time
	Completed    bool      `json:"completed" db:"completed" bson:"completed"`
	CreatedAt    time.Time `json:"created_at" db:"created_at" bson:"created_at"`
}
