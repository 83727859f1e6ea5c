package booking

import (
	"lrbook/internal/domain"

	"github.com/shopspring/decimal"
)

func money(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}

// ComputeCharges derives the subtotal and total from the items and the
// additive charges. Client totals are ignored. Freight is already a line
// total, so quantity does not multiply into it.
func ComputeCharges(items []domain.BookingItem, in ChargesRequest) domain.Charges {
	subtotal := decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(money(it.FreightCharge))
	}

	additive := []decimal.Decimal{
		money(in.HandlingCharges),
		money(in.BookDeliveryCharges),
		money(in.DoorDeliveryCharges),
		money(in.PickupCharges),
		money(in.LRCharges),
		money(in.OtherCharges),
	}
	total := subtotal
	for _, d := range additive {
		total = total.Add(d)
	}

	return domain.Charges{
		ItemFreightSubtotal: subtotal.Round(2).InexactFloat64(),
		HandlingCharges:     additive[0].InexactFloat64(),
		BookDeliveryCharges: additive[1].InexactFloat64(),
		DoorDeliveryCharges: additive[2].InexactFloat64(),
		PickupCharges:       additive[3].InexactFloat64(),
		LRCharges:           additive[4].InexactFloat64(),
		OtherCharges:        additive[5].InexactFloat64(),
		TotalAmount:         total.Round(2).InexactFloat64(),
	}
}
