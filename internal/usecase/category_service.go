package usecase

import (
	"context"

	"github.com/St1cky1/taskr-service/internal/entity"
	"github.com/St1cky1/taskr-service/internal/repository"
	"github.com/go-playground/validator/v10"
)

// CategoryService - реестр категорий. Категории удаляются только пока
// на них не ссылается ни одна задача.
type CategoryService struct {
	categoryRepo repository.ICategoryRepository
	taskRepo     repository.ITaskRepository
	validate     *validator.Validate
}

func NewCategoryService(
	categoryRepo repository.ICategoryRepository,
	taskRepo repository.ITaskRepository,
) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		taskRepo:     taskRepo,
		validate:     newValidator(),
	}
}

func (s *CategoryService) ListCategories(ctx context.Context) ([]entity.TaskCategory, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []entity.TaskCategory{}
	}
	return categories, nil
}

func (s *CategoryService) CreateCategory(ctx context.Context, req *entity.CreateCategoryRequest) (*entity.TaskCategory, error) {
	verrs := entity.NewValidationError()
	checkStruct(s.validate, req, verrs)
	if !verrs.Empty() {
		return nil, verrs
	}

	return s.categoryRepo.Create(ctx, &entity.TaskCategory{
		Name:        req.Name,
		Description: req.Description,
	})
}

func (s *CategoryService) GetCategory(ctx context.Context, id int) (*entity.TaskCategory, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, entity.ErrCategoryNotFound
	}
	return category, nil
}

// DeleteCategory - удаление запрещено, пока на категорию ссылаются задачи.
// Проверяем явно, FK RESTRICT в БД остается страховкой от гонки.
func (s *CategoryService) DeleteCategory(ctx context.Context, id int) error {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if category == nil {
		return entity.ErrCategoryNotFound
	}

	count, err := s.taskRepo.CountByCategory(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return entity.ErrCategoryInUse
	}

	return s.categoryRepo.Delete(ctx, id)
}
