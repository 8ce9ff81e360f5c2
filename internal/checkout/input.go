package checkout

import (
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/noah-isme/backend-food/internal/common"
	dbgen "github.com/noah-isme/backend-food/internal/db/gen"
	"github.com/noah-isme/backend-food/internal/shipping"
)

// Coordinates is the requested drop-off point.
type Coordinates struct {
	Lat *float64 `json:"lat" validate:"required,latitude"`
	Lon *float64 `json:"lon" validate:"required,longitude"`
}

// PromoDetail lets the client state how much of a promotion it expects and
// which stores a global promotion should be spread over.
type PromoDetail struct {
	PromotionID string           `json:"promotion_id" validate:"required,uuid"`
	Amount      *decimal.Decimal `json:"amount"`
	StoreIDs    []string         `json:"store_ids" validate:"omitempty,dive,uuid"`
}

// Input is the checkout request body. Receiver fields left blank fall back to
// the customer's saved profile.
type Input struct {
	ReceiverName   string           `json:"receiver_name" validate:"max=120"`
	Phone          string           `json:"phone" validate:"max=32"`
	Address        string           `json:"address" validate:"max=500"`
	Coordinates    *Coordinates     `json:"coordinates"`
	PaymentMethod  string           `json:"payment_method" validate:"omitempty,oneof=cash online"`
	Note           string           `json:"note" validate:"max=500"`
	PromoIDs       []string         `json:"promo_ids" validate:"max=20,dive,uuid"`
	DiscountAmount *decimal.Decimal `json:"discount_amount"`
	PromoDetails   []PromoDetail    `json:"promo_details" validate:"max=20,dive"`
}

func init() {
	common.Validator().RegisterStructValidation(validateInput, Input{})
}

func validateInput(sl validator.StructLevel) {
	in := sl.Current().Interface().(Input)
	if in.DiscountAmount != nil && in.DiscountAmount.IsNegative() {
		sl.ReportError(in.DiscountAmount, "discount_amount", "DiscountAmount", "gte", "0")
	}
	seen := make(map[string]struct{}, len(in.PromoDetails))
	for _, d := range in.PromoDetails {
		if d.Amount != nil && d.Amount.IsNegative() {
			sl.ReportError(d.Amount, "promo_details", "PromoDetails", "gte", "0")
		}
		if _, dup := seen[d.PromotionID]; dup {
			sl.ReportError(in.PromoDetails, "promo_details", "PromoDetails", "unique_promotion", "")
		}
		seen[d.PromotionID] = struct{}{}
	}
}

type detail struct {
	amount   *decimal.Decimal
	storeIDs []uuid.UUID
}

type request struct {
	receiverName string
	phone        string
	address      string
	dropoff      *shipping.Point
	payment      dbgen.PaymentMethod
	note         string
	promoIDs     []uuid.UUID
	discount     *decimal.Decimal
	details      map[uuid.UUID]detail
}

// parse converts the validated body into typed values. Promotions named only
// in promo_details are requested as well.
func (in Input) parse() (request, error) {
	req := request{
		receiverName: in.ReceiverName,
		phone:        in.Phone,
		address:      in.Address,
		payment:      dbgen.PaymentMethodCash,
		note:         in.Note,
		discount:     in.DiscountAmount,
		details:      make(map[uuid.UUID]detail, len(in.PromoDetails)),
	}
	if in.PaymentMethod != "" {
		req.payment = dbgen.PaymentMethod(in.PaymentMethod)
	}
	if c := in.Coordinates; c != nil && c.Lat != nil && c.Lon != nil {
		p := shipping.Point{Lat: *c.Lat, Lon: *c.Lon}
		if !p.Valid() {
			return request{}, ErrInvalidInput
		}
		req.dropoff = &p
	}
	seen := make(map[uuid.UUID]bool)
	add := func(raw string) (uuid.UUID, error) {
		id, err := uuid.Parse(raw)
		if err != nil {
			return uuid.Nil, ErrInvalidInput
		}
		if !seen[id] {
			seen[id] = true
			req.promoIDs = append(req.promoIDs, id)
		}
		return id, nil
	}
	for _, raw := range in.PromoIDs {
		if _, err := add(raw); err != nil {
			return request{}, err
		}
	}
	for _, d := range in.PromoDetails {
		id, err := add(d.PromotionID)
		if err != nil {
			return request{}, err
		}
		var stores []uuid.UUID
		for _, raw := range d.StoreIDs {
			sid, err := uuid.Parse(raw)
			if err != nil {
				return request{}, ErrInvalidInput
			}
			stores = append(stores, sid)
		}
		req.details[id] = detail{amount: d.Amount, storeIDs: stores}
	}
	return req, nil
}
