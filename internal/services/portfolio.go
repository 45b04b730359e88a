package services

import (
	"context"
	"strings"

	"github.com/xteonlyone/portfolio/backend/internal/auth"
	"github.com/xteonlyone/portfolio/backend/internal/models"
	"github.com/xteonlyone/portfolio/backend/internal/repositories"
	"go.uber.org/zap"
)

const DefaultTechIcon = "Circle"

// PortfolioService manages showcased projects and the tech stack list.
type PortfolioService struct {
	repo   repositories.PortfolioRepository
	policy auth.Policy
	logger *zap.Logger
}

func NewPortfolioService(repo repositories.PortfolioRepository, policy auth.Policy, logger *zap.Logger) *PortfolioService {
	return &PortfolioService{repo: repo, policy: policy, logger: logger}
}

// CreateProject adds a project. New projects are featured.
func (s *PortfolioService) CreateProject(ctx context.Context, subject auth.Subject, req models.CreateProjectRequest) (*models.Project, error) {
	if err := requireAdmin(s.policy, subject, auth.ActionManagePortfolio); err != nil {
		return nil, err
	}

	project := &models.Project{
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		ImageURL:    req.ImageURL,
		DemoURL:     req.DemoURL,
		RepoURL:     req.RepoURL,
		TechStack:   req.TechStack,
		IsFeatured:  true,
	}
	if project.Title == "" || project.Description == "" {
		return nil, ErrInvalidInput
	}

	if err := s.repo.CreateProject(ctx, project); err != nil {
		return nil, fail(s.logger, "Failed to create project", err)
	}
	return project, nil
}

func (s *PortfolioService) ListProjects(ctx context.Context) ([]models.Project, error) {
	projects, err := s.repo.ListProjects(ctx)
	if err != nil {
		return nil, fail(s.logger, "Failed to fetch projects", err)
	}
	return projects, nil
}

func (s *PortfolioService) DeleteProject(ctx context.Context, subject auth.Subject, id string) error {
	if err := requireAdmin(s.policy, subject, auth.ActionManagePortfolio); err != nil {
		return err
	}

	if err := s.repo.DeleteProject(ctx, id); err != nil {
		return fail(s.logger, "Failed to delete project", err, zap.String("project_id", id))
	}
	return nil
}

func (s *PortfolioService) CreateTech(ctx context.Context, subject auth.Subject, req models.CreateTechRequest) (*models.TechStack, error) {
	if err := requireAdmin(s.policy, subject, auth.ActionManagePortfolio); err != nil {
		return nil, err
	}

	tech := &models.TechStack{
		Name:     strings.TrimSpace(req.Name),
		Category: strings.TrimSpace(req.Category),
		IconName: strings.TrimSpace(req.IconName),
	}
	if tech.Name == "" || tech.Category == "" {
		return nil, ErrInvalidInput
	}
	if tech.IconName == "" {
		tech.IconName = DefaultTechIcon
	}

	if err := s.repo.CreateTech(ctx, tech); err != nil {
		return nil, fail(s.logger, "Failed to create tech", err)
	}
	return tech, nil
}

func (s *PortfolioService) ListTech(ctx context.Context) ([]models.TechStack, error) {
	tech, err := s.repo.ListTech(ctx)
	if err != nil {
		return nil, fail(s.logger, "Failed to fetch tech stack", err)
	}
	return tech, nil
}

func (s *PortfolioService) DeleteTech(ctx context.Context, subject auth.Subject, id string) error {
	if err := requireAdmin(s.policy, subject, auth.ActionManagePortfolio); err != nil {
		return err
	}

	if err := s.repo.DeleteTech(ctx, id); err != nil {
		return fail(s.logger, "Failed to delete tech", err, zap.String("tech_id", id))
	}
	return nil
}
