package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/vladislavdragonenkov/dinepos/internal/domain"
)

// tableRepositoryInMemory — простая in-memory реализация TableRepository.
type tableRepositoryInMemory struct {
	mu     sync.RWMutex
	items  map[int64]domain.Table
	nextID int64
}

// NewTableRepository возвращает in-memory репозиторий столов.
func NewTableRepository() domain.TableRepository {
	return &tableRepositoryInMemory{
		items:  make(map[int64]domain.Table),
		nextID: 1,
	}
}

// Create сохраняет стол и присваивает ему следующий идентификатор.
func (r *tableRepositoryInMemory) Create(table domain.Table) (domain.Table, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	table.ID = r.nextID
	r.nextID++
	now := time.Now().UTC()
	if table.CreatedAt.IsZero() {
		table.CreatedAt = now
	}
	table.UpdatedAt = now

	r.items[table.ID] = table
	return table, nil
}

// Get возвращает стол или ErrTableNotFound, если его нет.
func (r *tableRepositoryInMemory) Get(id int64) (domain.Table, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	table, ok := r.items[id]
	if !ok {
		return domain.Table{}, domain.ErrTableNotFound
	}
	return table, nil
}

// Update применяет изменения стола или возвращает ErrTableNotFound.
func (r *tableRepositoryInMemory) Update(table domain.Table) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.items[table.ID]
	if !ok {
		return domain.ErrTableNotFound
	}
	table.CreatedAt = existing.CreatedAt
	table.UpdatedAt = time.Now().UTC()
	r.items[table.ID] = table
	return nil
}

// List возвращает все столы, отсортированные по идентификатору.
func (r *tableRepositoryInMemory) List() ([]domain.Table, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Table, 0, len(r.items))
	for _, table := range r.items {
		result = append(result, table)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

var _ domain.TableRepository = (*tableRepositoryInMemory)(nil)
