package repositories

import (
	"context"

	"github.com/xteonlyone/portfolio/backend/internal/models"
	"gorm.io/gorm"
)

// PortfolioRepository covers the showcase content: projects and tech stack.
type PortfolioRepository interface {
	CreateProject(ctx context.Context, project *models.Project) error
	ListProjects(ctx context.Context) ([]models.Project, error)
	DeleteProject(ctx context.Context, id string) error
	CountProjects(ctx context.Context) (int64, error)

	CreateTech(ctx context.Context, tech *models.TechStack) error
	ListTech(ctx context.Context) ([]models.TechStack, error)
	DeleteTech(ctx context.Context, id string) error
}

type postgresPortfolioRepository struct {
	db *gorm.DB
}

func NewPostgresPortfolioRepository(db *gorm.DB) PortfolioRepository {
	return &postgresPortfolioRepository{db: db}
}

func (r *postgresPortfolioRepository) CreateProject(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

func (r *postgresPortfolioRepository) ListProjects(ctx context.Context) ([]models.Project, error) {
	var projects []models.Project
	err := r.db.WithContext(ctx).Order("is_featured DESC, created_at DESC").Find(&projects).Error
	return projects, err
}

func (r *postgresPortfolioRepository) DeleteProject(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Project{}).Error
}

func (r *postgresPortfolioRepository) CountProjects(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Project{}).Count(&count).Error
	return count, err
}

func (r *postgresPortfolioRepository) CreateTech(ctx context.Context, tech *models.TechStack) error {
	return r.db.WithContext(ctx).Create(tech).Error
}

func (r *postgresPortfolioRepository) ListTech(ctx context.Context) ([]models.TechStack, error) {
	var tech []models.TechStack
	err := r.db.WithContext(ctx).Order("category ASC, name ASC").Find(&tech).Error
	return tech, err
}

func (r *postgresPortfolioRepository) DeleteTech(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.TechStack{}).Error
}
