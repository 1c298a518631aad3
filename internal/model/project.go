package model

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

type ProjectStatus string

const (
	ProjectActive    ProjectStatus = "ACTIVE"
	ProjectArchived  ProjectStatus = "ARCHIVED"
	ProjectCompleted ProjectStatus = "COMPLETED"
)

type Project struct {
	ID      ProjectID     `json:"id"`
	Title   string        `json:"title"`
	StartAt time.Time     `json:"startAt"`
	DueAt   *time.Time    `json:"dueAt,omitempty"`
	Status  ProjectStatus `json:"status"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func NewProject(title string) Project {
	now := time.Now()
	return Project{
		ID:        ProjectID(uuid.NewString()),
		Title:     title,
		StartAt:   now,
		Status:    ProjectActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (p Project) Validate() error {
	if strings.TrimSpace(p.Title) == "" {
		return errors.New("project title must not be blank")
	}
	switch p.Status {
	case ProjectActive, ProjectArchived, ProjectCompleted:
		return nil
	default:
		return errors.New("unknown project status " + string(p.Status))
	}
}
