package catalog

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/dinepos/internal/domain"
)

// Service — тонкий слой над каталогом: товары и группы меню.
// Сложной логики здесь нет, только базовая валидация перед записью;
// товары после создания не изменяются.
type Service struct {
	products domain.ProductRepository
	groups   domain.MenuGroupRepository
	logger   *log.Entry
}

// NewService конструирует сервис каталога.
func NewService(products domain.ProductRepository, groups domain.MenuGroupRepository, logger *log.Entry) *Service {
	if logger == nil {
		logger = log.WithField("component", "catalog-service")
	}
	return &Service{
		products: products,
		groups:   groups,
		logger:   logger,
	}
}

// CreateProduct регистрирует товар каталога.
func (s *Service) CreateProduct(name string, price decimal.Decimal) (domain.Product, error) {
	product := domain.Product{Name: name, Price: price}
	if errs := product.ValidateInvariants(); len(errs) > 0 {
		return domain.Product{}, errors.Join(errs...)
	}

	created, err := s.products.Create(product)
	if err != nil {
		return domain.Product{}, fmt.Errorf("persist product: %w", err)
	}

	s.logger.WithFields(log.Fields{
		"product_id": created.ID,
		"price":      created.Price.String(),
	}).Info("product created")

	return created, nil
}

// ListProducts возвращает все товары.
func (s *Service) ListProducts() ([]domain.Product, error) {
	return s.products.List()
}

// CreateMenuGroup регистрирует группу меню.
func (s *Service) CreateMenuGroup(name string) (domain.MenuGroup, error) {
	group := domain.MenuGroup{Name: name}
	if errs := group.ValidateInvariants(); len(errs) > 0 {
		return domain.MenuGroup{}, errors.Join(errs...)
	}

	created, err := s.groups.Create(group)
	if err != nil {
		return domain.MenuGroup{}, fmt.Errorf("persist menu group: %w", err)
	}

	s.logger.WithField("menu_group_id", created.ID).Info("menu group created")
	return created, nil
}

// ListMenuGroups возвращает все группы меню.
func (s *Service) ListMenuGroups() ([]domain.MenuGroup, error) {
	return s.groups.List()
}
