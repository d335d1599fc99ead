package matching

// Symbol contains basic info about a trading symbol.
type Symbol struct {
	name          string
	priceLimits   Limits
	lotSizeLimits Limits
}

// NewSymbol creates new symbol with specified name and no price or lot size restrictions.
func NewSymbol(name string) Symbol {
	return Symbol{
		name: name,
	}
}

// NewSymbolWithLimits creates new symbol with specified name and price/lot size limits.
// Zero Limits value leaves the corresponding dimension unrestricted.
func NewSymbolWithLimits(name string, priceLimits Limits, lotSizeLimits Limits) Symbol {
	return Symbol{
		name:          name,
		priceLimits:   priceLimits,
		lotSizeLimits: lotSizeLimits,
	}
}

// Name returns the symbol name.
func (s Symbol) Name() string {
	return s.name
}

// PriceLimits returns the symbol price limits.
func (s Symbol) PriceLimits() Limits {
	return s.priceLimits
}

// LotSizeLimits returns the symbol lot size limits.
func (s Symbol) LotSizeLimits() Limits {
	return s.lotSizeLimits
}

// Valid returns true if the symbol has a name and every configured limit is valid.
func (s Symbol) Valid() bool {
	if s.name == "" {
		return false
	}
	if !s.priceLimits.IsZero() && !s.priceLimits.Valid() {
		return false
	}
	if !s.lotSizeLimits.IsZero() && !s.lotSizeLimits.Valid() {
		return false
	}
	return true
}
