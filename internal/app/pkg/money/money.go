package money

import "github.com/shopspring/decimal"

// MinChargeAmount 支付网关最小收款金额
var MinChargeAmount = decimal.NewFromFloat(0.50)

// ToCents 金额转为最小货币单位，四舍五入
func ToCents(amount float64) int64 {
	return decimal.NewFromFloat(amount).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// FromCents 最小货币单位转回金额
func FromCents(cents int64) float64 {
	f, _ := decimal.New(cents, -2).Float64()
	return f
}

// BelowMinimum 金额是否低于最小收款金额
func BelowMinimum(amount float64) bool {
	return decimal.NewFromFloat(amount).LessThan(MinChargeAmount)
}

// Round2 保留两位小数
func Round2(amount float64) float64 {
	f, _ := decimal.NewFromFloat(amount).Round(2).Float64()
	return f
}
