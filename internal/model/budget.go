package model

import "fmt"

// Quarter identifies a fiscal quarter ("Q1".."Q4").
type Quarter string

const (
	Q1 Quarter = "Q1"
	Q2 Quarter = "Q2"
	Q3 Quarter = "Q3"
	Q4 Quarter = "Q4"
)

var Quarters = [4]Quarter{Q1, Q2, Q3, Q4}

func (q Quarter) Valid() bool {
	switch q {
	case Q1, Q2, Q3, Q4:
		return true
	default:
		return false
	}
}

// SegmentKey addresses one cell of a sales table.
type SegmentKey struct {
	Product string  `json:"product"`
	Market  string  `json:"market"`
	Quarter Quarter `json:"quarter"`
}

func (k SegmentKey) String() string {
	return fmt.Sprintf("(%s, %s, %s)", k.Product, k.Market, k.Quarter)
}

// SalesFigure is one budgeted or realized amount for a segment.
type SalesFigure struct {
	Product string  `json:"product" yaml:"product" validate:"required"`
	Market  string  `json:"market" yaml:"market" validate:"required"`
	Quarter Quarter `json:"quarter" yaml:"quarter" validate:"required,oneof=Q1 Q2 Q3 Q4"`
	Amount  float64 `json:"amount" yaml:"amount"`
}

func (f SalesFigure) Key() SegmentKey {
	return SegmentKey{Product: f.Product, Market: f.Market, Quarter: f.Quarter}
}

// Quarterly flattens one product/market row of four quarterly amounts.
func Quarterly(product, market string, amounts [4]float64) []SalesFigure {
	out := make([]SalesFigure, 0, len(amounts))
	for i, a := range amounts {
		out = append(out, SalesFigure{
			Product: product,
			Market:  market,
			Quarter: Quarters[i],
			Amount:  a,
		})
	}
	return out
}
