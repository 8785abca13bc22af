package service

import (
	"context"

	"ai-concierge-be/internal/dto"
	"ai-concierge-be/pkg/tasks"
)

type ITaskService interface {
	Create(ctx context.Context, userID string, req *dto.CreateTaskRequest) (*dto.TaskResponse, error)
	List(ctx context.Context, userID string) ([]*dto.TaskResponse, error)
	Complete(ctx context.Context, userID, title string) (*dto.TaskResponse, error)
	Remove(ctx context.Context, userID, title string) error
}

type taskService struct {
	store *tasks.Store
}

func NewTaskService(store *tasks.Store) ITaskService {
	return &taskService{store: store}
}

func (s *taskService) Create(ctx context.Context, userID string, req *dto.CreateTaskRequest) (*dto.TaskResponse, error) {
	task := s.store.Add(userID, req.Title, req.When, req.Description)
	return mapTask(task), nil
}

func (s *taskService) List(ctx context.Context, userID string) ([]*dto.TaskResponse, error) {
	list := s.store.List(userID)
	out := make([]*dto.TaskResponse, 0, len(list))
	for _, task := range list {
		out = append(out, mapTask(task))
	}
	return out, nil
}

func (s *taskService) Complete(ctx context.Context, userID, title string) (*dto.TaskResponse, error) {
	task, err := s.store.Complete(userID, title)
	if err != nil {
		return nil, err
	}
	return mapTask(task), nil
}

func (s *taskService) Remove(ctx context.Context, userID, title string) error {
	return s.store.Remove(userID, title)
}

func mapTask(task tasks.Task) *dto.TaskResponse {
	return &dto.TaskResponse{
		Title:       task.Title,
		When:        task.When,
		Description: task.Description,
		Completed:   task.Completed,
		CreatedAt:   task.CreatedAt,
	}
}
