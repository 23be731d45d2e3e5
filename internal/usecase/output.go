package usecase

import (
	"time"

	"marketplace/internal/domain/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type LineItemOutput struct {
	ID        uuid.UUID       `json:"id"`
	Product   *model.Product  `json:"product"`
	Quantity  int             `json:"quantity"`
	Total     decimal.Decimal `json:"total"`
	CreatedAt time.Time       `json:"created_at"`
}

type OrderOutput struct {
	ID             uuid.UUID            `json:"id"`
	TxRef          string               `json:"tx_ref"`
	DeliveryStatus model.DeliveryStatus `json:"delivery_status"`
	PaymentStatus  model.PaymentStatus  `json:"payment_status"`
	DateDelivered  *time.Time           `json:"date_delivered"`

	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	City     string `json:"city"`
	Country  string `json:"country"`
	Zipcode  string `json:"zipcode"`

	//税・送料は扱わないので total = subtotal
	Subtotal decimal.Decimal `json:"subtotal"`
	Total    decimal.Decimal `json:"total"`

	CreatedAt time.Time        `json:"created_at"`
	Items     []LineItemOutput `json:"order_items"`
}

func toLineItemOutput(it model.LineItem) LineItemOutput {
	return LineItemOutput{
		ID:        it.ID,
		Product:   it.Product,
		Quantity:  it.Quantity,
		Total:     it.Total(),
		CreatedAt: it.CreatedAt,
	}
}

func toLineItemOutputs(items []model.LineItem) []LineItemOutput {
	out := make([]LineItemOutput, 0, len(items))
	for _, it := range items {
		out = append(out, toLineItemOutput(it))
	}
	return out
}

func toOrderOutput(o model.Order) OrderOutput {
	sub := o.Subtotal()
	return OrderOutput{
		ID:             o.ID,
		TxRef:          o.TxRef,
		DeliveryStatus: o.DeliveryStatus,
		PaymentStatus:  o.PaymentStatus,
		DateDelivered:  o.DateDelivered,
		FullName:       o.FullName,
		Email:          o.Email,
		Phone:          o.Phone,
		Address:        o.Address,
		City:           o.City,
		Country:        o.Country,
		Zipcode:        o.Zipcode,
		Subtotal:       sub,
		Total:          sub,
		CreatedAt:      o.CreatedAt,
		Items:          toLineItemOutputs(o.Items),
	}
}

func toOrderOutputs(orders []model.Order) []OrderOutput {
	out := make([]OrderOutput, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderOutput(o))
	}
	return out
}
