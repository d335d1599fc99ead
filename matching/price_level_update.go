package matching

import "fmt"

// PriceLevelUpdateKind is an enumeration of possible price level update kinds (add, update, delete).
type PriceLevelUpdateKind uint8

const (
	// PriceLevelUpdateKindAdd represents add price level update kind.
	PriceLevelUpdateKindAdd PriceLevelUpdateKind = iota + 1
	// PriceLevelUpdateKindUpdate represents update price level update kind.
	PriceLevelUpdateKindUpdate
	// PriceLevelUpdateKindDelete represents delete price level update kind.
	PriceLevelUpdateKindDelete
)

func (uk PriceLevelUpdateKind) String() string {
	switch uk {
	case PriceLevelUpdateKindAdd:
		return "add"
	case PriceLevelUpdateKindUpdate:
		return "update"
	case PriceLevelUpdateKindDelete:
		return "delete"
	default:
		return "unknown"
	}
}

func (uk PriceLevelUpdateKind) MarshalText() ([]byte, error) {
	return []byte(uk.String()), nil
}

func (uk *PriceLevelUpdateKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "add":
		*uk = PriceLevelUpdateKindAdd
	case "update":
		*uk = PriceLevelUpdateKindUpdate
	case "delete":
		*uk = PriceLevelUpdateKindDelete
	default:
		return fmt.Errorf("unknown price level update kind %q", text)
	}
	return nil
}

////////////////////////////////////////////////////////////////

// PriceLevelUpdate contains complete info about a price level update.
type PriceLevelUpdate struct {
	ID       uint64               `json:"id"`
	Kind     PriceLevelUpdateKind `json:"kind"`
	Side     OrderSide            `json:"side"`
	Price    Uint                 `json:"price"`    // price of the price level
	Quantity Uint                 `json:"quantity"` // total quantity of the price level after the update
	Top      bool                 `json:"top"`      // top of the order book flag
}
