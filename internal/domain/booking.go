package domain

import "time"

type LRType string

const (
	LRPaid      LRType = "paid"
	LRToPay     LRType = "to_pay"
	LROnAccount LRType = "on_account"
)

func (t LRType) Valid() bool {
	return t.Code() != ""
}

// Code is the two-letter short code embedded in LR numbers.
func (t LRType) Code() string {
	switch t {
	case LRPaid:
		return "PD"
	case LRToPay:
		return "TP"
	case LROnAccount:
		return "OA"
	default:
		return ""
	}
}

type BookingStatus string

const (
	BookingBooked    BookingStatus = "booked"
	BookingInTransit BookingStatus = "in_transit"
	BookingUnloaded  BookingStatus = "unloaded"
	BookingDelivered BookingStatus = "delivered"
	BookingCancelled BookingStatus = "cancelled"
	BookingRejected  BookingStatus = "rejected"
)

var forwardTransitions = map[BookingStatus]BookingStatus{
	BookingBooked:    BookingInTransit,
	BookingInTransit: BookingUnloaded,
	BookingUnloaded:  BookingDelivered,
}

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingBooked, BookingInTransit, BookingUnloaded, BookingDelivered, BookingCancelled, BookingRejected:
		return true
	}
	return false
}

func (s BookingStatus) Terminal() bool {
	return s == BookingDelivered || s == BookingCancelled || s == BookingRejected
}

// CanTransitionTo follows booked -> in_transit -> unloaded -> delivered;
// cancelled and rejected are reachable from any non-terminal status.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	if s.Terminal() {
		return false
	}
	if next == BookingCancelled || next == BookingRejected {
		return true
	}
	return forwardTransitions[s] == next
}

type LocationSnapshot struct {
	LocationID string `json:"location_id,omitempty" bson:"location_id,omitempty"`
	Name       string `json:"name" bson:"name"`
	Code       string `json:"code" bson:"code"`
}

type PartySnapshot struct {
	CustomerID string `json:"customer_id,omitempty" bson:"customer_id,omitempty"`
	Name       string `json:"name" bson:"name"`
	Phone      string `json:"phone" bson:"phone"`
	GSTNumber  string `json:"gst_number,omitempty" bson:"gst_number,omitempty"`
	Address    string `json:"address" bson:"address"`
}

type BookingItem struct {
	Description   string  `json:"description" bson:"description"`
	Quantity      int     `json:"quantity" bson:"quantity"`
	Weight        float64 `json:"weight" bson:"weight"`
	FreightCharge float64 `json:"freight_charge" bson:"freight_charge"`
}

type Charges struct {
	ItemFreightSubtotal float64 `json:"item_freight_subtotal" bson:"item_freight_subtotal"`
	HandlingCharges     float64 `json:"handling_charges" bson:"handling_charges"`
	BookDeliveryCharges float64 `json:"book_delivery_charges" bson:"book_delivery_charges"`
	DoorDeliveryCharges float64 `json:"door_delivery_charges" bson:"door_delivery_charges"`
	PickupCharges       float64 `json:"pickup_charges" bson:"pickup_charges"`
	LRCharges           float64 `json:"lr_charges" bson:"lr_charges"`
	OtherCharges        float64 `json:"other_charges" bson:"other_charges"`
	TotalAmount         float64 `json:"total_amount" bson:"total_amount"`
}

type Booking struct {
	ID            string           `json:"id" bson:"_id"`
	LRNumber      string           `json:"lr_number" bson:"lr_number"`
	LRType        LRType           `json:"lr_type" bson:"lr_type"`
	FromLocation  LocationSnapshot `json:"from_location" bson:"from_location"`
	ToLocation    LocationSnapshot `json:"to_location" bson:"to_location"`
	Sender        PartySnapshot    `json:"sender" bson:"sender"`
	Receiver      PartySnapshot    `json:"receiver" bson:"receiver"`
	Items         []BookingItem    `json:"items" bson:"items"`
	Charges       Charges          `json:"charges" bson:"charges"`
	Status        BookingStatus    `json:"status" bson:"status"`
	AgentID       string           `json:"agent_id" bson:"agent_id"`
	AgentLocation string           `json:"agent_location" bson:"agent_location"`
	CreatedAt     time.Time        `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at" bson:"updated_at"`
}

// BookingFilter narrows booking listings. Zero values mean "no constraint";
// Limit 0 returns every match.
type BookingFilter struct {
	AgentID  string
	Status   BookingStatus
	LRType   LRType
	FromCode string
	ToCode   string
	DateFrom *time.Time
	DateTo   *time.Time
	Query    string
	Limit    int
	Offset   int
}

type BookingEventType string

const (
	EventBookingCreated       BookingEventType = "booking.created"
	EventBookingStatusChanged BookingEventType = "booking.status_changed"
)

// BookingEvent is pushed to live feed subscribers.
type BookingEvent struct {
	Type           BookingEventType `json:"type"`
	Booking        *Booking         `json:"booking"`
	PreviousStatus BookingStatus    `json:"previous_status,omitempty"`
}
