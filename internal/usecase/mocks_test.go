package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/St1cky1/taskr-service/internal/entity"
	"github.com/St1cky1/taskr-service/internal/repository"
)

// Инмемори реализации репозиториев для тестов: ведут себя как настоящие,
// включая каскадное удаление журнала вместе с задачей.

type MockTaskRepository struct {
	nextTaskID  int
	nextEventID int
	tasks       map[int]*entity.Task
	events      map[int][]entity.TaskEventLog
}

var _ repository.ITaskRepository = (*MockTaskRepository)(nil)
var _ repository.ITaskEventLogRepository = (*MockTaskRepository)(nil)

func NewMockTaskRepository() *MockTaskRepository {
	return &MockTaskRepository{
		nextTaskID:  1,
		nextEventID: 1,
		tasks:       make(map[int]*entity.Task),
		events:      make(map[int][]entity.TaskEventLog),
	}
}

func (m *MockTaskRepository) sorted() []entity.Task {
	ids := make([]int, 0, len(m.tasks))
	for id := range m.tasks {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	tasks := make([]entity.Task, 0, len(ids))
	for _, id := range ids {
		tasks = append(tasks, *m.tasks[id])
	}
	return tasks
}

func (m *MockTaskRepository) appendEvent(event *entity.TaskEventLog) {
	event.ID = m.nextEventID
	m.nextEventID++
	event.CreatedOn = time.Now()
	m.events[event.TaskID] = append(m.events[event.TaskID], *event)
}

func (m *MockTaskRepository) List(ctx context.Context, limit, offset int) ([]entity.Task, int, error) {
	all := m.sorted()
	total := len(all)

	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}

func (m *MockTaskRepository) GetByID(ctx context.Context, id int) (*entity.Task, error) {
	task, ok := m.tasks[id]
	if !ok {
		return nil, nil
	}
	copied := *task
	return &copied, nil
}

func (m *MockTaskRepository) CreateWithEvent(ctx context.Context, task *entity.Task, event *entity.TaskEventLog) (*entity.Task, error) {
	created := *task
	created.ID = m.nextTaskID
	m.nextTaskID++
	created.CreatedOn = time.Now()
	created.ModifiedOn = created.CreatedOn
	m.tasks[created.ID] = &created

	event.TaskID = created.ID
	m.appendEvent(event)

	copied := created
	return &copied, nil
}

func (m *MockTaskRepository) UpdateWithEvent(ctx context.Context, id int, updates map[string]interface{}, event *entity.TaskEventLog) (*entity.Task, error) {
	task, ok := m.tasks[id]
	if !ok {
		return nil, nil
	}

	if v, ok := updates["name"]; ok {
		task.Name = v.(string)
	}
	if v, ok := updates["description"]; ok {
		task.Description = v.(string)
	}
	if v, ok := updates["category_id"]; ok {
		task.CategoryID = v.(int)
	}
	if v, ok := updates["priority"]; ok {
		task.Priority = v.(entity.TaskPriority)
	}
	task.ModifiedOn = time.Now()

	event.TaskID = id
	m.appendEvent(event)

	copied := *task
	return &copied, nil
}

func (m *MockTaskRepository) SetAssigneeWithEvent(ctx context.Context, id int, assigneeID *int, event *entity.TaskEventLog) (*entity.Task, error) {
	task, ok := m.tasks[id]
	if !ok {
		return nil, nil
	}

	task.AssigneeID = assigneeID
	task.ModifiedOn = time.Now()

	event.TaskID = id
	m.appendEvent(event)

	copied := *task
	return &copied, nil
}

func (m *MockTaskRepository) SetStatusWithEvent(ctx context.Context, id int, status entity.TaskStatus, event *entity.TaskEventLog) (*entity.Task, error) {
	task, ok := m.tasks[id]
	if !ok {
		return nil, nil
	}

	task.Status = status
	task.ModifiedOn = time.Now()

	event.TaskID = id
	m.appendEvent(event)

	copied := *task
	return &copied, nil
}

func (m *MockTaskRepository) Delete(ctx context.Context, id int) error {
	delete(m.tasks, id)
	delete(m.events, id) // каскад, как в БД
	return nil
}

func (m *MockTaskRepository) CountByCategory(ctx context.Context, categoryID int) (int, error) {
	count := 0
	for _, task := range m.tasks {
		if task.CategoryID == categoryID {
			count++
		}
	}
	return count, nil
}

func (m *MockTaskRepository) GetUserReport(ctx context.Context, userID int) (*entity.UserReport, error) {
	var report entity.UserReport
	for _, task := range m.tasks {
		if task.ReporterID == userID {
			report.Created++
		}
		if task.AssigneeID != nil && *task.AssigneeID == userID {
			report.Assigned++
			if task.Status == entity.StatusDone {
				report.Completed++
			} else {
				report.Incompleted++
			}
		}
	}
	return &report, nil
}

func (m *MockTaskRepository) ListByTaskID(ctx context.Context, taskID int) ([]entity.TaskEventLog, error) {
	events := m.events[taskID]
	copied := make([]entity.TaskEventLog, len(events))
	copy(copied, events)
	return copied, nil
}

// MockCategoryRepository - инмемори реализация ICategoryRepository
type MockCategoryRepository struct {
	nextID     int
	categories map[int]*entity.TaskCategory
}

var _ repository.ICategoryRepository = (*MockCategoryRepository)(nil)

func NewMockCategoryRepository() *MockCategoryRepository {
	return &MockCategoryRepository{
		nextID:     1,
		categories: make(map[int]*entity.TaskCategory),
	}
}

func (m *MockCategoryRepository) Add(name string) *entity.TaskCategory {
	category := &entity.TaskCategory{
		ID:        m.nextID,
		Name:      name,
		CreatedOn: time.Now(),
	}
	m.nextID++
	m.categories[category.ID] = category
	return category
}

func (m *MockCategoryRepository) Create(ctx context.Context, category *entity.TaskCategory) (*entity.TaskCategory, error) {
	created := m.Add(category.Name)
	created.Description = category.Description
	copied := *created
	return &copied, nil
}

func (m *MockCategoryRepository) GetByID(ctx context.Context, id int) (*entity.TaskCategory, error) {
	category, ok := m.categories[id]
	if !ok {
		return nil, nil
	}
	copied := *category
	return &copied, nil
}

func (m *MockCategoryRepository) List(ctx context.Context) ([]entity.TaskCategory, error) {
	ids := make([]int, 0, len(m.categories))
	for id := range m.categories {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	categories := make([]entity.TaskCategory, 0, len(ids))
	for _, id := range ids {
		categories = append(categories, *m.categories[id])
	}
	return categories, nil
}

func (m *MockCategoryRepository) Delete(ctx context.Context, id int) error {
	delete(m.categories, id)
	return nil
}

// MockUserRepository - инмемори реализация IUserRepository
type MockUserRepository struct {
	nextID int
	users  map[int]*entity.User
}

var _ repository.IUserRepository = (*MockUserRepository)(nil)

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		nextID: 1,
		users:  make(map[int]*entity.User),
	}
}

func (m *MockUserRepository) Add(name string) *entity.User {
	user := &entity.User{
		ID:       m.nextID,
		Name:     name,
		IsActive: true,
	}
	m.nextID++
	m.users[user.ID] = user
	return user
}

func (m *MockUserRepository) CreateWithAuth(ctx context.Context, name, email, passwordHash string) (*entity.User, error) {
	user := m.Add(name)
	user.Email = &email
	user.PasswordHash = passwordHash
	copied := *user
	return &copied, nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int) (*entity.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, user := range m.users {
		if user.Email != nil && *user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *MockUserRepository) List(ctx context.Context) ([]entity.User, error) {
	ids := make([]int, 0, len(m.users))
	for id := range m.users {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	users := make([]entity.User, 0, len(ids))
	for _, id := range ids {
		users = append(users, *m.users[id])
	}
	return users, nil
}

func (m *MockUserRepository) Update(ctx context.Context, id int, updates map[string]interface{}) (*entity.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	if v, ok := updates["name"].(string); ok {
		user.Name = v
	}
	if v, ok := updates["last_login"].(time.Time); ok {
		user.LastLogin = &v
	}
	copied := *user
	return &copied, nil
}

// MockRefreshTokenRepository - инмемори реализация IRefreshTokenRepository
type MockRefreshTokenRepository struct {
	nextID int
	tokens map[string]*repository.RefreshToken
}

var _ repository.IRefreshTokenRepository = (*MockRefreshTokenRepository)(nil)

func NewMockRefreshTokenRepository() *MockRefreshTokenRepository {
	return &MockRefreshTokenRepository{
		nextID: 1,
		tokens: make(map[string]*repository.RefreshToken),
	}
}

func (m *MockRefreshTokenRepository) Save(ctx context.Context, userID int, tokenHash string, expiresAt time.Time) error {
	m.tokens[tokenHash] = &repository.RefreshToken{
		ID:        m.nextID,
		UserID:    userID,
		TokenHash: tokenHash,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}
	m.nextID++
	return nil
}

func (m *MockRefreshTokenRepository) GetByHash(ctx context.Context, tokenHash string) (*repository.RefreshToken, error) {
	token, ok := m.tokens[tokenHash]
	if !ok || token.Revoked || token.ExpiresAt.Before(time.Now()) {
		return nil, nil
	}
	copied := *token
	return &copied, nil
}

func (m *MockRefreshTokenRepository) Revoke(ctx context.Context, tokenHash string) error {
	if token, ok := m.tokens[tokenHash]; ok {
		token.Revoked = true
	}
	return nil
}

func (m *MockRefreshTokenRepository) RevokeAll(ctx context.Context, userID int) error {
	for _, token := range m.tokens {
		if token.UserID == userID {
			token.Revoked = true
		}
	}
	return nil
}

func (m *MockRefreshTokenRepository) CleanupExpired(ctx context.Context) error {
	for hash, token := range m.tokens {
		if token.ExpiresAt.Before(time.Now()) {
			delete(m.tokens, hash)
		}
	}
	return nil
}

// MockEventPublisher - мок для EventPublisher
type MockEventPublisher struct {
	PublishTaskEventFunc func(ctx context.Context, message *entity.TaskEventMessage) error
}

func (m *MockEventPublisher) PublishTaskEvent(ctx context.Context, message *entity.TaskEventMessage) error {
	if m.PublishTaskEventFunc != nil {
		return m.PublishTaskEventFunc(ctx, message)
	}
	return nil
}
