package dto

import "time"

type CreateTaskRequest struct {
	Title       string `json:"title" validate:"required"`
	When        string `json:"when" validate:"required"`
	Description string `json:"description,omitempty"`
}

type TaskResponse struct {
	Title       string    `json:"title"`
	When        string    `json:"when"`
	Description string    `json:"description,omitempty"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
}

type CompleteTaskRequest struct {
	Title string `json:"title" validate:"required"`
}
