package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/vladislavdragonenkov/dinepos/internal/domain"
)

// menuGroupRepositoryInMemory — простая in-memory реализация MenuGroupRepository.
type menuGroupRepositoryInMemory struct {
	mu     sync.RWMutex
	items  map[int64]domain.MenuGroup
	nextID int64
}

// NewMenuGroupRepository возвращает in-memory репозиторий групп меню.
func NewMenuGroupRepository() domain.MenuGroupRepository {
	return &menuGroupRepositoryInMemory{
		items:  make(map[int64]domain.MenuGroup),
		nextID: 1,
	}
}

// Create сохраняет группу и присваивает ей следующий идентификатор.
func (r *menuGroupRepositoryInMemory) Create(group domain.MenuGroup) (domain.MenuGroup, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	group.ID = r.nextID
	r.nextID++
	if group.CreatedAt.IsZero() {
		group.CreatedAt = time.Now().UTC()
	}

	r.items[group.ID] = group
	return group, nil
}

// Exists проверяет существование группы по идентификатору.
func (r *menuGroupRepositoryInMemory) Exists(id int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.items[id]
	return ok, nil
}

// List возвращает все группы, отсортированные по идентификатору.
func (r *menuGroupRepositoryInMemory) List() ([]domain.MenuGroup, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.MenuGroup, 0, len(r.items))
	for _, group := range r.items {
		result = append(result, group)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

var _ domain.MenuGroupRepository = (*menuGroupRepositoryInMemory)(nil)
