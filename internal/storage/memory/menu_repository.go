package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/vladislavdragonenkov/dinepos/internal/domain"
)

// menuRepositoryInMemory — простая in-memory реализация MenuRepository.
// Позиции меню живут внутри записи меню: каскадное владение без отдельной таблицы.
type menuRepositoryInMemory struct {
	mu         sync.RWMutex
	items      map[int64]domain.Menu
	nextID     int64
	nextItemID int64
}

// NewMenuRepository возвращает in-memory репозиторий меню.
func NewMenuRepository() domain.MenuRepository {
	return &menuRepositoryInMemory{
		items:      make(map[int64]domain.Menu),
		nextID:     1,
		nextItemID: 1,
	}
}

// Create сохраняет меню вместе с позициями и присваивает идентификаторы.
func (r *menuRepositoryInMemory) Create(menu domain.Menu) (domain.Menu, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	menu.ID = r.nextID
	r.nextID++
	if menu.CreatedAt.IsZero() {
		menu.CreatedAt = time.Now().UTC()
	}

	products := make([]domain.MenuProduct, len(menu.MenuProducts))
	copy(products, menu.MenuProducts)
	for i := range products {
		products[i].ID = r.nextItemID
		r.nextItemID++
		products[i].MenuID = menu.ID
	}
	menu.MenuProducts = products

	r.items[menu.ID] = menu
	return cloneMenu(menu), nil
}

// Get возвращает меню с позициями или ErrMenuNotFound.
func (r *menuRepositoryInMemory) Get(id int64) (domain.Menu, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	menu, ok := r.items[id]
	if !ok {
		return domain.Menu{}, domain.ErrMenuNotFound
	}
	return cloneMenu(menu), nil
}

// CountByIDs возвращает число существующих меню среди переданных идентификаторов.
func (r *menuRepositoryInMemory) CountByIDs(ids []int64) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, id := range ids {
		if _, ok := r.items[id]; ok {
			count++
		}
	}
	return count, nil
}

// List возвращает все меню, отсортированные по идентификатору.
func (r *menuRepositoryInMemory) List() ([]domain.Menu, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Menu, 0, len(r.items))
	for _, menu := range r.items {
		result = append(result, cloneMenu(menu))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// cloneMenu копирует меню вместе со слайсом позиций, чтобы избежать мутаций извне.
func cloneMenu(menu domain.Menu) domain.Menu {
	products := make([]domain.MenuProduct, len(menu.MenuProducts))
	copy(products, menu.MenuProducts)
	menu.MenuProducts = products
	return menu
}

var _ domain.MenuRepository = (*menuRepositoryInMemory)(nil)
