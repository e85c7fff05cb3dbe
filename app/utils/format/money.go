package format

import (
	"github.com/leekchan/accounting"
	"github.com/shopspring/decimal"
)

var usd = &accounting.Accounting{Symbol: "$", Precision: 2, Thousand: ",", Decimal: "."}

// Money renders an amount the way the storefront shows prices, e.g. "$1,250.00".
func Money(amount decimal.Decimal) string {
	return usd.FormatMoneyDecimal(amount)
}
