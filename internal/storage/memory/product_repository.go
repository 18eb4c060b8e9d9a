package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/vladislavdragonenkov/dinepos/internal/domain"
)

// productRepositoryInMemory — простая in-memory реализация ProductRepository.
type productRepositoryInMemory struct {
	mu     sync.RWMutex
	items  map[int64]domain.Product
	nextID int64
}

// NewProductRepository возвращает in-memory репозиторий для локальной разработки и тестов.
func NewProductRepository() domain.ProductRepository {
	return &productRepositoryInMemory{
		items:  make(map[int64]domain.Product),
		nextID: 1,
	}
}

// Create сохраняет товар и присваивает ему следующий идентификатор.
func (r *productRepositoryInMemory) Create(product domain.Product) (domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	product.ID = r.nextID
	r.nextID++
	if product.CreatedAt.IsZero() {
		product.CreatedAt = time.Now().UTC()
	}

	r.items[product.ID] = product
	return product, nil
}

// Get возвращает товар или ErrProductNotFound, если его нет.
func (r *productRepositoryInMemory) Get(id int64) (domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.items[id]
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return product, nil
}

// GetByIDs возвращает найденные товары; отсутствующие идентификаторы пропускаются.
func (r *productRepositoryInMemory) GetByIDs(ids []int64) (map[int64]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make(map[int64]domain.Product, len(ids))
	for _, id := range ids {
		if product, ok := r.items[id]; ok {
			result[id] = product
		}
	}
	return result, nil
}

// List возвращает все товары, отсортированные по идентификатору.
func (r *productRepositoryInMemory) List() ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Product, 0, len(r.items))
	for _, product := range r.items {
		result = append(result, product)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

var _ domain.ProductRepository = (*productRepositoryInMemory)(nil)
