package order

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/noah-isme/backend-food/internal/common"
	dbgen "github.com/noah-isme/backend-food/internal/db/gen"
)

// View is the JSON representation of an order.
type View struct {
	ID                 string           `json:"id"`
	GroupID            string           `json:"group_id"`
	GroupPosition      int32            `json:"group_position"`
	UserID             string           `json:"user_id"`
	StoreID            string           `json:"store_id"`
	OrderStatus        string           `json:"order_status"`
	DeliveryStatus     string           `json:"delivery_status"`
	PaymentMethod      string           `json:"payment_method"`
	Subtotal           decimal.Decimal  `json:"subtotal"`
	ShippingFee        decimal.Decimal  `json:"shipping_fee"`
	TotalDiscount      decimal.Decimal  `json:"total_discount"`
	TotalAfterDiscount decimal.Decimal  `json:"total_after_discount"`
	ReceiverName       string           `json:"receiver_name"`
	ReceiverPhone      string           `json:"receiver_phone"`
	ShipAddress        string           `json:"ship_address"`
	ShipLatitude       *float64         `json:"ship_latitude"`
	ShipLongitude      *float64         `json:"ship_longitude"`
	RouteDistanceKm    *decimal.Decimal `json:"route_distance_km"`
	RoutePolyline      *string          `json:"route_polyline,omitempty"`
	Note               string           `json:"note"`
	ShipperID          *string          `json:"shipper_id"`
	Cancellation       *CancelView      `json:"cancellation,omitempty"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
	Items              []ItemView       `json:"items,omitempty"`
	Promotions         []PromotionView  `json:"promotions,omitempty"`
}

// CancelView carries cancellation and refund metadata.
type CancelView struct {
	Reason          string    `json:"reason"`
	CancelledAt     time.Time `json:"cancelled_at"`
	CancelledByRole string    `json:"cancelled_by_role"`
	RefundRequested bool      `json:"refund_requested"`
	RefundStatus    string    `json:"refund_status"`
	RefundBankName  *string   `json:"refund_bank_name,omitempty"`
}

// ItemView is an order line with its price snapshot.
type ItemView struct {
	ID           string          `json:"id"`
	FoodID       string          `json:"food_id"`
	SizeOptionID *string         `json:"size_option_id"`
	Quantity     int32           `json:"quantity"`
	FoodPrice    decimal.Decimal `json:"food_price"`
	OptionPrice  decimal.Decimal `json:"option_price"`
	LineTotal    decimal.Decimal `json:"line_total"`
	Note         string          `json:"note"`
}

// PromotionView is a promotion attributed to the order.
type PromotionView struct {
	PromotionID   string          `json:"promotion_id"`
	AppliedAmount decimal.Decimal `json:"applied_amount"`
	Note          string          `json:"note"`
}

// ToView renders an order without its children.
func ToView(o dbgen.Order) View {
	v := View{
		ID:                 common.UUIDString(o.ID),
		GroupID:            common.UUIDString(o.GroupID),
		GroupPosition:      o.GroupPosition,
		UserID:             common.UUIDString(o.UserID),
		StoreID:            common.UUIDString(o.StoreID),
		OrderStatus:        string(o.OrderStatus),
		DeliveryStatus:     string(o.DeliveryStatus),
		PaymentMethod:      string(o.PaymentMethod),
		Subtotal:           o.Subtotal,
		ShippingFee:        o.ShippingFee,
		TotalDiscount:      o.TotalDiscount,
		TotalAfterDiscount: o.TotalAfterDiscount,
		ReceiverName:       o.ReceiverName,
		ReceiverPhone:      o.ReceiverPhone,
		ShipAddress:        o.ShipAddress,
		Note:               o.Note,
		ShipperID:          common.NullableUUID(o.ShipperID),
		CreatedAt:          o.CreatedAt.Time.UTC(),
		UpdatedAt:          o.UpdatedAt.Time.UTC(),
	}
	if o.ShipLatitude.Valid && o.ShipLongitude.Valid {
		lat, lon := o.ShipLatitude.Float64, o.ShipLongitude.Float64
		v.ShipLatitude, v.ShipLongitude = &lat, &lon
	}
	if o.RouteDistanceKm.Valid {
		d := o.RouteDistanceKm.Decimal
		v.RouteDistanceKm = &d
	}
	if o.RoutePolyline.Valid {
		p := o.RoutePolyline.String
		v.RoutePolyline = &p
	}
	if o.OrderStatus == dbgen.OrderStatusCancelled {
		c := &CancelView{
			Reason:          o.CancelReason.String,
			CancelledAt:     o.CancelledAt.Time.UTC(),
			CancelledByRole: string(o.CancelledByRole.ActorRole),
			RefundRequested: o.RefundRequested,
			RefundStatus:    string(o.RefundStatus),
		}
		if o.RefundBankName.Valid {
			bank := o.RefundBankName.String
			c.RefundBankName = &bank
		}
		v.Cancellation = c
	}
	return v
}

// ToDetailView renders an order together with its lines and attributions.
func ToDetailView(o dbgen.Order, items []dbgen.OrderItem, promos []dbgen.OrderPromotion) View {
	v := ToView(o)
	v.Items = make([]ItemView, 0, len(items))
	for _, it := range items {
		v.Items = append(v.Items, ItemView{
			ID:           common.UUIDString(it.ID),
			FoodID:       common.UUIDString(it.FoodID),
			SizeOptionID: common.NullableUUID(it.SizeOptionID),
			Quantity:     it.Quantity,
			FoodPrice:    it.FoodPrice,
			OptionPrice:  it.OptionPrice,
			LineTotal:    it.FoodPrice.Add(it.OptionPrice).Mul(decimal.NewFromInt32(it.Quantity)),
			Note:         it.Note,
		})
	}
	v.Promotions = make([]PromotionView, 0, len(promos))
	for _, op := range promos {
		v.Promotions = append(v.Promotions, PromotionView{
			PromotionID:   common.UUIDString(op.PromotionID),
			AppliedAmount: op.AppliedAmount,
			Note:          op.Note,
		})
	}
	return v
}
