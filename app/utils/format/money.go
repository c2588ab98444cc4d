package format

import (
	"github.com/leekchan/accounting"
	"github.com/shopspring/decimal"
)

var quetzal = accounting.Accounting{Symbol: "Q ", Precision: 2, Thousand: ",", Decimal: "."}

// Price renders a product price for the views, e.g. "Q 1,200.00".
func Price(amount decimal.Decimal) string {
	return quetzal.FormatMoneyDecimal(amount)
}
