package gpudto

import "github.com/shopspring/decimal"

type RegisterGpuInput struct {
	OwnerID      string
	Name         string
	VramGb       int32
	PricePerHour decimal.Decimal
	Purpose      string
}
