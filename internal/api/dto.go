package api

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/dinepos/internal/domain"
)

type createProductRequest struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

type productResponse struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	CreatedAt time.Time       `json:"createdAt"`
}

type createMenuGroupRequest struct {
	Name string `json:"name"`
}

type menuGroupResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

type menuProductRequest struct {
	ProductID int64 `json:"productId"`
	Quantity  int64 `json:"quantity"`
}

type createMenuRequest struct {
	Name         string               `json:"name"`
	Price        decimal.Decimal      `json:"price"`
	MenuGroupID  int64                `json:"menuGroupId"`
	MenuProducts []menuProductRequest `json:"menuProducts"`
}

type menuProductResponse struct {
	Seq       int64 `json:"seq"`
	MenuID    int64 `json:"menuId"`
	ProductID int64 `json:"productId"`
	Quantity  int64 `json:"quantity"`
}

type menuResponse struct {
	ID           int64                 `json:"id"`
	Name         string                `json:"name"`
	Price        decimal.Decimal       `json:"price"`
	MenuGroupID  int64                 `json:"menuGroupId"`
	MenuProducts []menuProductResponse `json:"menuProducts"`
}

type createTableRequest struct {
	NumberOfGuests int  `json:"numberOfGuests"`
	Empty          bool `json:"empty"`
}

type changeTableEmptyRequest struct {
	Empty bool `json:"empty"`
}

type changeTableGuestsRequest struct {
	NumberOfGuests int `json:"numberOfGuests"`
}

type tableResponse struct {
	ID             int64 `json:"id"`
	NumberOfGuests int   `json:"numberOfGuests"`
	Empty          bool  `json:"empty"`
}

type orderLineItemRequest struct {
	MenuID   int64 `json:"menuId"`
	Quantity int64 `json:"quantity"`
}

type createOrderRequest struct {
	TableID        int64                  `json:"tableId"`
	OrderLineItems []orderLineItemRequest `json:"orderLineItems"`
}

type changeOrderStatusRequest struct {
	Status string `json:"status"`
}

type orderLineItemResponse struct {
	Seq      int64 `json:"seq"`
	OrderID  int64 `json:"orderId"`
	MenuID   int64 `json:"menuId"`
	Quantity int64 `json:"quantity"`
}

type orderResponse struct {
	ID             int64                   `json:"id"`
	TableID        int64                   `json:"tableId"`
	Status         string                  `json:"status"`
	OrderedTime    time.Time               `json:"orderedTime"`
	OrderLineItems []orderLineItemResponse `json:"orderLineItems"`
}

type timelineEventResponse struct {
	OrderID  int64     `json:"orderId"`
	Type     string    `json:"type"`
	Detail   string    `json:"detail,omitempty"`
	Occurred time.Time `json:"occurred"`
}

func toProductResponse(p domain.Product) productResponse {
	return productResponse{
		ID:        p.ID,
		Name:      p.Name,
		Price:     p.Price,
		CreatedAt: p.CreatedAt,
	}
}

func toProductResponses(products []domain.Product) []productResponse {
	result := make([]productResponse, 0, len(products))
	for _, p := range products {
		result = append(result, toProductResponse(p))
	}
	return result
}

func toMenuGroupResponse(g domain.MenuGroup) menuGroupResponse {
	return menuGroupResponse{
		ID:        g.ID,
		Name:      g.Name,
		CreatedAt: g.CreatedAt,
	}
}

func toMenuGroupResponses(groups []domain.MenuGroup) []menuGroupResponse {
	result := make([]menuGroupResponse, 0, len(groups))
	for _, g := range groups {
		result = append(result, toMenuGroupResponse(g))
	}
	return result
}

func toMenuResponse(m domain.Menu) menuResponse {
	items := make([]menuProductResponse, 0, len(m.MenuProducts))
	for _, item := range m.MenuProducts {
		items = append(items, menuProductResponse{
			Seq:       item.ID,
			MenuID:    item.MenuID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}
	return menuResponse{
		ID:           m.ID,
		Name:         m.Name,
		Price:        m.Price,
		MenuGroupID:  m.MenuGroupID,
		MenuProducts: items,
	}
}

func toMenuResponses(menus []domain.Menu) []menuResponse {
	result := make([]menuResponse, 0, len(menus))
	for _, m := range menus {
		result = append(result, toMenuResponse(m))
	}
	return result
}

func toTableResponse(t domain.Table) tableResponse {
	return tableResponse{
		ID:             t.ID,
		NumberOfGuests: t.NumberOfGuests,
		Empty:          t.Empty,
	}
}

func toTableResponses(tables []domain.Table) []tableResponse {
	result := make([]tableResponse, 0, len(tables))
	for _, t := range tables {
		result = append(result, toTableResponse(t))
	}
	return result
}

func toOrderResponse(o domain.Order) orderResponse {
	items := make([]orderLineItemResponse, 0, len(o.LineItems))
	for _, item := range o.LineItems {
		items = append(items, orderLineItemResponse{
			Seq:      item.ID,
			OrderID:  item.OrderID,
			MenuID:   item.MenuID,
			Quantity: item.Quantity,
		})
	}
	return orderResponse{
		ID:             o.ID,
		TableID:        o.TableID,
		Status:         string(o.Status),
		OrderedTime:    o.OrderedTime,
		OrderLineItems: items,
	}
}

func toOrderResponses(orders []domain.Order) []orderResponse {
	result := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		result = append(result, toOrderResponse(o))
	}
	return result
}

func toTimelineResponses(events []domain.TimelineEvent) []timelineEventResponse {
	result := make([]timelineEventResponse, 0, len(events))
	for _, e := range events {
		result = append(result, timelineEventResponse{
			OrderID:  e.OrderID,
			Type:     e.Type,
			Detail:   e.Detail,
			Occurred: e.Occurred,
		})
	}
	return result
}
