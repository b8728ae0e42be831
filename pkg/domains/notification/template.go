package notification

import (
	"context"
	"errors"
	"fmt"

	"github.com/restobook/pkg/entities"
	"gorm.io/gorm"
)

var ErrTemplateNotFound = errors.New("email template not found")

type TemplateRepository interface {
	FindByName(ctx context.Context, name string) (entities.EmailTemplate, error)
}

type templateRepository struct {
	db *gorm.DB
}

func NewTemplateRepo(db *gorm.DB) TemplateRepository {
	return &templateRepository{
		db: db,
	}
}

func (r *templateRepository) FindByName(ctx context.Context, name string) (entities.EmailTemplate, error) {
	var tpl entities.EmailTemplate
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&tpl).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return tpl, fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
	}
	return tpl, err
}
