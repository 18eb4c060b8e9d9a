package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/dinepos/internal/domain"
	"github.com/vladislavdragonenkov/dinepos/internal/service/catalog"
	"github.com/vladislavdragonenkov/dinepos/internal/service/menu"
	"github.com/vladislavdragonenkov/dinepos/internal/service/order"
	"github.com/vladislavdragonenkov/dinepos/internal/service/table"
)

// Server связывает HTTP-маршруты с сервисным слоем.
type Server struct {
	catalog *catalog.Service
	menus   *menu.Service
	tables  *table.Service
	orders  *order.Service
	idem    domain.IdempotencyRepository
	logger  *log.Entry
}

// NewServer создаёт HTTP-слой поверх сервисов.
// idem может быть nil: тогда Idempotency-Key игнорируется.
func NewServer(
	catalogSvc *catalog.Service,
	menuSvc *menu.Service,
	tableSvc *table.Service,
	orderSvc *order.Service,
	idem domain.IdempotencyRepository,
	logger *log.Entry,
) *Server {
	if logger == nil {
		logger = log.WithField("component", "api")
	}
	return &Server{
		catalog: catalogSvc,
		menus:   menuSvc,
		tables:  tableSvc,
		orders:  orderSvc,
		idem:    idem,
		logger:  logger,
	}
}

// Routes возвращает mux со всеми маршрутами API.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/v1/products", s.handleCreateProduct)
	mux.HandleFunc("GET /api/v1/products", s.handleListProducts)

	mux.HandleFunc("POST /api/v1/menu-groups", s.handleCreateMenuGroup)
	mux.HandleFunc("GET /api/v1/menu-groups", s.handleListMenuGroups)

	mux.HandleFunc("POST /api/v1/menus", s.withIdempotency(s.handleCreateMenu))
	mux.HandleFunc("GET /api/v1/menus", s.handleListMenus)

	mux.HandleFunc("POST /api/v1/tables", s.handleCreateTable)
	mux.HandleFunc("GET /api/v1/tables", s.handleListTables)
	mux.HandleFunc("PUT /api/v1/tables/{id}/empty", s.handleChangeTableEmpty)
	mux.HandleFunc("PUT /api/v1/tables/{id}/guests", s.handleChangeTableGuests)

	mux.HandleFunc("POST /api/v1/orders", s.withIdempotency(s.handleCreateOrder))
	mux.HandleFunc("GET /api/v1/orders", s.handleListOrders)
	mux.HandleFunc("PUT /api/v1/orders/{id}/status", s.handleChangeOrderStatus)
	mux.HandleFunc("GET /api/v1/orders/{id}/timeline", s.handleOrderTimeline)

	return mux
}

func (s *Server) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	product, err := s.catalog.CreateProduct(req.Name, req.Price)
	if err != nil {
		writeDomainError(w, s.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, toProductResponse(product))
}

func (s *Server) handleListProducts(w http.ResponseWriter, _ *http.Request) {
	products, err := s.catalog.ListProducts()
	if err != nil {
		writeDomainError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductResponses(products))
}

func (s *Server) handleCreateMenuGroup(w http.ResponseWriter, r *http.Request) {
	var req createMenuGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	group, err := s.catalog.CreateMenuGroup(req.Name)
	if err != nil {
		writeDomainError(w, s.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, toMenuGroupResponse(group))
}

func (s *Server) handleListMenuGroups(w http.ResponseWriter, _ *http.Request) {
	groups, err := s.catalog.ListMenuGroups()
	if err != nil {
		writeDomainError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, toMenuGroupResponses(groups))
}

func (s *Server) handleCreateMenu(w http.ResponseWriter, r *http.Request) {
	var req createMenuRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	inputs := make([]menu.ProductInput, 0, len(req.MenuProducts))
	for _, item := range req.MenuProducts {
		inputs = append(inputs, menu.ProductInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	created, err := s.menus.Create(req.Name, req.Price, req.MenuGroupID, inputs)
	if err != nil {
		writeDomainError(w, s.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, toMenuResponse(created))
}

func (s *Server) handleListMenus(w http.ResponseWriter, _ *http.Request) {
	menus, err := s.menus.List()
	if err != nil {
		writeDomainError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, toMenuResponses(menus))
}

func (s *Server) handleCreateTable(w http.ResponseWriter, r *http.Request) {
	var req createTableRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	created, err := s.tables.Create(req.NumberOfGuests, req.Empty)
	if err != nil {
		writeDomainError(w, s.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, toTableResponse(created))
}

func (s *Server) handleListTables(w http.ResponseWriter, _ *http.Request) {
	tables, err := s.tables.List()
	if err != nil {
		writeDomainError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, toTableResponses(tables))
}

func (s *Server) handleChangeTableEmpty(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req changeTableEmptyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	updated, err := s.tables.ChangeEmpty(id, req.Empty)
	if err != nil {
		writeDomainError(w, s.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, toTableResponse(updated))
}

func (s *Server) handleChangeTableGuests(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req changeTableGuestsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	updated, err := s.tables.ChangeGuests(id, req.NumberOfGuests)
	if err != nil {
		writeDomainError(w, s.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, toTableResponse(updated))
}

func (s *Server) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	inputs := make([]order.LineItemInput, 0, len(req.OrderLineItems))
	for _, item := range req.OrderLineItems {
		inputs = append(inputs, order.LineItemInput{
			MenuID:   item.MenuID,
			Quantity: item.Quantity,
		})
	}

	created, err := s.orders.Create(req.TableID, inputs)
	if err != nil {
		writeDomainError(w, s.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, toOrderResponse(created))
}

func (s *Server) handleListOrders(w http.ResponseWriter, _ *http.Request) {
	orders, err := s.orders.List()
	if err != nil {
		writeDomainError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponses(orders))
}

func (s *Server) handleChangeOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req changeOrderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	// Статус не разбирается здесь: сервис сперва проверяет терминальность
	// заказа, поэтому завершённый заказ отвечает конфликтом даже на
	// нераспознанный целевой статус.
	updated, err := s.orders.ChangeStatus(id, domain.OrderStatus(req.Status))
	if err != nil {
		writeDomainError(w, s.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, toOrderResponse(updated))
}

func (s *Server) handleOrderTimeline(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	events, err := s.orders.Timeline(id)
	if err != nil {
		writeDomainError(w, s.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, toTimelineResponses(events))
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		writeBadRequest(w, "invalid id in path")
		return 0, false
	}
	return id, true
}
