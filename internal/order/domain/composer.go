package domain

import (
	"errors"

	catalogdomain "github.com/vocaai/console/internal/catalog/domain"
)

var (
	ErrEmptyCatalog   = errors.New("empty_catalog")
	ErrTierOutOfRange = errors.New("tier_out_of_range")
)

// Composer tracks a buyer's in-progress selection against a catalog's
// pricing tiers. Every mutation recomputes the total from the selected
// tier's price, never from a client-supplied amount.
type Composer struct {
	Tiers        []catalogdomain.PricingTier
	SelectedTier int
	Quantity     int
	TotalAmount  int64
}

// NewComposer starts a selection on the first tier with quantity 1.
func NewComposer(tiers []catalogdomain.PricingTier) (Composer, error) {
	if len(tiers) == 0 {
		return Composer{}, ErrEmptyCatalog
	}
	c := Composer{
		Tiers:        tiers,
		SelectedTier: 0,
		Quantity:     1,
	}
	c.recompute()
	return c, nil
}

// SelectTier switches the active tier, keeping the chosen quantity.
func (c Composer) SelectTier(index int) (Composer, error) {
	if index < 0 || index >= len(c.Tiers) {
		return c, ErrTierOutOfRange
	}
	c.SelectedTier = index
	c.recompute()
	return c, nil
}

// SetQuantity sets the quantity, clamping anything below 1 up to 1.
func (c Composer) SetQuantity(quantity int) Composer {
	if quantity < 1 {
		quantity = 1
	}
	c.Quantity = quantity
	c.recompute()
	return c
}

func (c *Composer) recompute() {
	c.TotalAmount = c.Tiers[c.SelectedTier].Price * int64(c.Quantity)
}
