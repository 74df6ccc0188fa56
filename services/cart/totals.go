package cart

import "resto-mongo-api/models"

// LineTotal is the line's price × quantity with its own discount taken off
// first, floored at zero. Prices are integer minor units throughout, so the
// only fractional step is a percentage discount, which is floored.
func LineTotal(line models.CartLine) int64 {
	gross := line.Price * int64(line.Quantity)
	if line.Discount == nil {
		return gross
	}
	var off int64
	switch line.Discount.Type {
	case models.DiscountTypePercentage:
		off = gross * line.Discount.Amount / 100
	case models.DiscountTypeFixed:
		off = line.Discount.Amount
	}
	if off > gross {
		off = gross
	}
	return gross - off
}

// ComputeTotals derives the monetary summary for a set of cart lines and an
// optional order-level discount. A fixed discount is clamped to the
// subtotal; the total never goes negative. Displayed values are floored, not
// rounded.
func ComputeTotals(lines map[string]models.CartLine, orderDiscount *models.Discount) models.CartTotals {
	var subtotal int64
	for _, line := range lines {
		subtotal += LineTotal(line)
	}

	var discountAmount int64
	if orderDiscount != nil {
		switch orderDiscount.Type {
		case models.DiscountTypePercentage:
			discountAmount = subtotal * orderDiscount.Amount / 100
		case models.DiscountTypeFixed:
			discountAmount = orderDiscount.Amount
			if discountAmount > subtotal {
				discountAmount = subtotal
			}
		}
	}

	return models.CartTotals{
		Subtotal:       subtotal,
		DiscountAmount: discountAmount,
		Total:          subtotal - discountAmount,
	}
}
