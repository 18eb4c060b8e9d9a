package menu

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/dinepos/internal/domain"
	"github.com/vladislavdragonenkov/dinepos/internal/metrics"
)

// ProductInput описывает позицию создаваемого меню: товар и количество.
type ProductInput struct {
	ProductID int64
	Quantity  int64
}

// Service реализует создание и чтение меню поверх доменных репозиториев.
// Валидация выполняется целиком до записи в хранилище: частично созданных
// меню не бывает.
type Service struct {
	menus    domain.MenuRepository
	groups   domain.MenuGroupRepository
	products domain.ProductRepository
	metrics  *metrics.PosMetrics
	logger   *log.Entry
}

// NewService конструирует сервис меню с зависимостями.
func NewService(
	menus domain.MenuRepository,
	groups domain.MenuGroupRepository,
	products domain.ProductRepository,
	posMetrics *metrics.PosMetrics,
	logger *log.Entry,
) *Service {
	if logger == nil {
		logger = log.WithField("component", "menu-service")
	}
	return &Service{
		menus:    menus,
		groups:   groups,
		products: products,
		metrics:  posMetrics,
		logger:   logger,
	}
}

// Create проверяет группу, позиции и ценовой инвариант, после чего атомарно
// сохраняет меню вместе с позициями. Цены товаров читаются на момент создания;
// меню не инвалидируется, если цена товара позже изменится.
func (s *Service) Create(name string, price decimal.Decimal, menuGroupID int64, inputs []ProductInput) (domain.Menu, error) {
	started := time.Now()
	defer func() {
		s.metrics.RecordOpDuration("create_menu", time.Since(started))
	}()

	if menuGroupID == 0 {
		s.metrics.RecordMenuRejected()
		return domain.Menu{}, domain.ErrMenuGroupRequired
	}
	exists, err := s.groups.Exists(menuGroupID)
	if err != nil {
		return domain.Menu{}, fmt.Errorf("check menu group: %w", err)
	}
	if !exists {
		s.metrics.RecordMenuRejected()
		return domain.Menu{}, domain.ErrMenuGroupUnknown
	}

	if len(inputs) == 0 {
		s.metrics.RecordMenuRejected()
		return domain.Menu{}, domain.ErrMenuProductsRequired
	}

	menu := domain.Menu{
		Name:        name,
		Price:       price,
		MenuGroupID: menuGroupID,
	}
	for _, input := range inputs {
		menu.MenuProducts = append(menu.MenuProducts, domain.MenuProduct{
			ProductID: input.ProductID,
			Quantity:  input.Quantity,
		})
	}

	products, err := s.products.GetByIDs(menu.ProductIDs())
	if err != nil {
		return domain.Menu{}, fmt.Errorf("resolve products: %w", err)
	}

	if errs := menu.ValidateInvariants(products); len(errs) > 0 {
		s.metrics.RecordMenuRejected()
		return domain.Menu{}, errors.Join(errs...)
	}

	created, err := s.menus.Create(menu)
	if err != nil {
		s.logger.WithError(err).Error("failed to persist menu")
		return domain.Menu{}, fmt.Errorf("persist menu: %w", err)
	}

	s.metrics.RecordMenuCreated()
	s.logger.WithFields(log.Fields{
		"menu_id":       created.ID,
		"menu_group_id": created.MenuGroupID,
		"price":         created.Price.String(),
	}).Info("menu created")

	return created, nil
}

// Get возвращает меню по идентификатору.
func (s *Service) Get(id int64) (domain.Menu, error) {
	return s.menus.Get(id)
}

// List возвращает все меню.
func (s *Service) List() ([]domain.Menu, error) {
	return s.menus.List()
}
