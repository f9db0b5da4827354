package model

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
)

type OrderStatus string   // order lifecycle state
type PaymentStatus string // payment state, display only

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusConfirmed  OrderStatus = "CONFIRMED"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusReady      OrderStatus = "READY"
	OrderStatusInDelivery OrderStatus = "IN_DELIVERY"
	OrderStatusCompleted  OrderStatus = "COMPLETED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"

	PaymentStatusPending    PaymentStatus = "PENDING"
	PaymentStatusProcessing PaymentStatus = "PROCESSING"
	PaymentStatusPaid       PaymentStatus = "PAID"
	PaymentStatusFailed     PaymentStatus = "FAILED"
	PaymentStatusRefunded   PaymentStatus = "REFUNDED"
)

// forward-only, single step
var nextOrderStatus = map[OrderStatus]OrderStatus{
	OrderStatusPending:    OrderStatusConfirmed,
	OrderStatusConfirmed:  OrderStatusProcessing,
	OrderStatusProcessing: OrderStatusReady,
	OrderStatusReady:      OrderStatusInDelivery,
	OrderStatusInDelivery: OrderStatusCompleted,
}

var orderStatusLabels = map[OrderStatus]string{
	OrderStatusPending:    "Ожидает",
	OrderStatusConfirmed:  "Подтверждён",
	OrderStatusProcessing: "Обрабатывается",
	OrderStatusReady:      "Готов",
	OrderStatusInDelivery: "В доставке",
	OrderStatusCompleted:  "Завершён",
	OrderStatusCancelled:  "Отменён",
}

var paymentStatusLabels = map[PaymentStatus]string{
	PaymentStatusPending:    "Ожидает",
	PaymentStatusProcessing: "Обработка",
	PaymentStatusPaid:       "Оплачено",
	PaymentStatusFailed:     "Ошибка",
	PaymentStatusRefunded:   "Возврат",
}

// OrderStatuses lists every status in lifecycle order, CANCELLED last
func OrderStatuses() []OrderStatus {
	return []OrderStatus{
		OrderStatusPending,
		OrderStatusConfirmed,
		OrderStatusProcessing,
		OrderStatusReady,
		OrderStatusInDelivery,
		OrderStatusCompleted,
		OrderStatusCancelled,
	}
}

func (s OrderStatus) Valid() bool {
	_, ok := orderStatusLabels[s]
	return ok
}

// IsTerminal is true for COMPLETED and CANCELLED
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

// Next returns the single forward state, false for terminal or unknown statuses
func (s OrderStatus) Next() (OrderStatus, bool) {
	next, ok := nextOrderStatus[s]
	return next, ok
}

// CanCancel is true for every known non-terminal status
func (s OrderStatus) CanCancel() bool {
	return s.Valid() && !s.IsTerminal()
}

// CanTransitionTo accepts exactly the next forward state or CANCELLED
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	if target == OrderStatusCancelled {
		return s.CanCancel()
	}
	next, ok := s.Next()
	return ok && next == target
}

// Label is the operator facing name; unknown statuses read as pending
func (s OrderStatus) Label() string {
	if label, ok := orderStatusLabels[s]; ok {
		return label
	}
	return orderStatusLabels[OrderStatusPending]
}

func (s PaymentStatus) Label() string {
	if label, ok := paymentStatusLabels[s]; ok {
		return label
	}
	return paymentStatusLabels[PaymentStatusPending]
}

// OrderNumber accepts both numeric and string order numbers from the API
type OrderNumber string

func (n *OrderNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*n = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = OrderNumber(s)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return err
	}
	*n = OrderNumber(num.String())
	return nil
}

type OrderItem struct {
	ID        string   `json:"id,omitempty"`
	ProductID string   `json:"productId"`
	Product   *Product `json:"product,omitempty"`
	Name      string   `json:"name"`
	Variant   string   `json:"variant,omitempty"`
	Quantity  int      `json:"quantity"`
	Price     Money    `json:"price"` // unit price
}

// DisplayName prefers the linked product name
func (i OrderItem) DisplayName() string {
	if i.Product != nil && i.Product.Name != "" {
		return i.Product.Name
	}
	return i.Name
}

// LineTotal is quantity × unit price
func (i OrderItem) LineTotal() Money {
	return i.Price.Mul(NewMoneyFromInt(int64(i.Quantity)))
}

type PromoCodeRef struct {
	ID   string `json:"id"`
	Code string `json:"code"`
}

// Order mirrors /admin/orders. Totals are computed by the server.
type Order struct {
	ID              string        `json:"id"`
	OrderNumber     OrderNumber   `json:"orderNumber"`
	CustomerName    string        `json:"customerName"`
	CustomerPhone   string        `json:"customerPhone"`
	DeliveryAddress string        `json:"deliveryAddress"`
	DeliveryType    string        `json:"deliveryType"`
	Items           []OrderItem   `json:"items"`
	Subtotal        Money         `json:"subtotal"`
	Discount        Money         `json:"discount"`
	DeliveryFee     Money         `json:"deliveryFee"`
	Total           Money         `json:"total"`
	PromoCode       *PromoCodeRef `json:"promoCode"`
	Status          OrderStatus   `json:"status"`
	PaymentStatus   PaymentStatus `json:"paymentStatus"`
	CreatedAt       time.Time     `json:"createdAt"`
}

// TotalConsistent reports total == subtotal − discount + deliveryFee
func (o Order) TotalConsistent() bool {
	return o.Subtotal.Sub(o.Discount).Add(o.DeliveryFee).Equal(o.Total)
}

// DeliveryTypeOrDefault falls back to pickup when the order has none
func (o Order) DeliveryTypeOrDefault() string {
	if strings.TrimSpace(o.DeliveryType) == "" {
		return "Самовывоз"
	}
	return o.DeliveryType
}

// OrderQuery holds the optional list parameters of GET /admin/orders
type OrderQuery struct {
	Status OrderStatus
	Page   int
	Limit  int
}
