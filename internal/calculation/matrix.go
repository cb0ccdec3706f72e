package calculation

import (
	"github.com/planwise/planwise/internal/domain"
	"github.com/shopspring/decimal"
)

// matrixCell is one retirement/brokerage split of the remaining savings
// budget. The two fractions always sum to 1.0.
type matrixCell struct {
	retirement decimal.Decimal
	brokerage  decimal.Decimal
}

func cell(retirementPct, brokeragePct float64) matrixCell {
	return matrixCell{
		retirement: decimal.NewFromFloat(retirementPct),
		brokerage:  decimal.NewFromFloat(brokeragePct),
	}
}

// allocationMatrix is the fixed liquidity x retirement-focus table. Keys are
// the domain enums, so an out-of-range preference cannot be expressed.
var allocationMatrix = [3][3]matrixCell{
	domain.LiquidityLow: {
		domain.RetirementFocusLow:    cell(0.50, 0.50),
		domain.RetirementFocusMedium: cell(0.70, 0.30),
		domain.RetirementFocusHigh:   cell(0.90, 0.10),
	},
	domain.LiquidityMedium: {
		domain.RetirementFocusLow:    cell(0.30, 0.70),
		domain.RetirementFocusMedium: cell(0.50, 0.50),
		domain.RetirementFocusHigh:   cell(0.70, 0.30),
	},
	domain.LiquidityHigh: {
		domain.RetirementFocusLow:    cell(0.10, 0.90),
		domain.RetirementFocusMedium: cell(0.20, 0.80),
		domain.RetirementFocusHigh:   cell(0.30, 0.70),
	},
}

// SplitFractions returns the retirement and brokerage fractions for a
// liquidity / retirement-focus preference pair.
func SplitFractions(liquidity domain.Liquidity, focus domain.RetirementFocus) (retirementPct, brokeragePct decimal.Decimal) {
	c := allocationMatrix[liquidity][focus]
	return c.retirement, c.brokerage
}
