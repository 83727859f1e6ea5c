package booking

// LocationRef names the destination either by location id or by a
// location or city code.
type LocationRef struct {
	LocationID string `json:"location_id"`
	Code       string `json:"code"`
}

func (r LocationRef) empty() bool {
	return r.LocationID == "" && r.Code == ""
}

type PartyRequest struct {
	CustomerID string `json:"customer_id"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	GSTNumber  string `json:"gst_number"`
	Address    string `json:"address"`
}

type ItemRequest struct {
	Description   string  `json:"description"`
	Quantity      int     `json:"quantity"`
	Weight        float64 `json:"weight"`
	FreightCharge float64 `json:"freight_charge"`
}

// ChargesRequest carries the additive charges. Subtotal and total are
// accepted for compatibility and always recomputed.
type ChargesRequest struct {
	HandlingCharges     float64  `json:"handling_charges"`
	BookDeliveryCharges float64  `json:"book_delivery_charges"`
	DoorDeliveryCharges float64  `json:"door_delivery_charges"`
	PickupCharges       float64  `json:"pickup_charges"`
	LRCharges           float64  `json:"lr_charges"`
	OtherCharges        float64  `json:"other_charges"`
	ItemFreightSubtotal *float64 `json:"item_freight_subtotal,omitempty"`
	TotalAmount         *float64 `json:"total_amount,omitempty"`
}

type CreateBookingRequest struct {
	LRType     string         `json:"lr_type"`
	ToLocation LocationRef    `json:"to_location"`
	Sender     PartyRequest   `json:"sender"`
	Receiver   PartyRequest   `json:"receiver"`
	Items      []ItemRequest  `json:"items"`
	Charges    ChargesRequest `json:"charges"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
