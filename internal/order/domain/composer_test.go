package domain

import (
	"testing"

	catalogdomain "github.com/vocaai/console/internal/catalog/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoTiers() []catalogdomain.PricingTier {
	return []catalogdomain.PricingTier{
		{Packs: 1, Price: 17000},
		{Packs: 3, Price: 45000},
	}
}

func TestNewComposer_Defaults(t *testing.T) {
	c, err := NewComposer(twoTiers())
	require.NoError(t, err)

	assert.Equal(t, 0, c.SelectedTier)
	assert.Equal(t, 1, c.Quantity)
	assert.Equal(t, int64(17000), c.TotalAmount)
}

func TestNewComposer_EmptyCatalog(t *testing.T) {
	_, err := NewComposer(nil)
	assert.ErrorIs(t, err, ErrEmptyCatalog)
}

func TestComposer_SelectTierKeepsQuantity(t *testing.T) {
	c, err := NewComposer(twoTiers())
	require.NoError(t, err)

	c = c.SetQuantity(2)
	c, err = c.SelectTier(1)
	require.NoError(t, err)

	assert.Equal(t, 2, c.Quantity)
	assert.Equal(t, int64(90000), c.TotalAmount)
}

func TestComposer_SelectTierOutOfRange(t *testing.T) {
	c, err := NewComposer(twoTiers())
	require.NoError(t, err)

	_, err = c.SelectTier(2)
	assert.ErrorIs(t, err, ErrTierOutOfRange)
	_, err = c.SelectTier(-1)
	assert.ErrorIs(t, err, ErrTierOutOfRange)
}

func TestComposer_SetQuantityClamps(t *testing.T) {
	c, err := NewComposer(twoTiers())
	require.NoError(t, err)

	c = c.SetQuantity(0)
	assert.Equal(t, 1, c.Quantity)
	assert.Equal(t, int64(17000), c.TotalAmount)

	c = c.SetQuantity(-7)
	assert.Equal(t, 1, c.Quantity)

	c = c.SetQuantity(4)
	assert.Equal(t, 4, c.Quantity)
	assert.Equal(t, int64(68000), c.TotalAmount)
}

// The invariant: after any sequence of mutations the total always equals
// the selected tier price times the quantity.
func TestComposer_TotalInvariant(t *testing.T) {
	tiers := twoTiers()
	c, err := NewComposer(tiers)
	require.NoError(t, err)

	steps := []func(Composer) Composer{
		func(c Composer) Composer { return c.SetQuantity(3) },
		func(c Composer) Composer { out, _ := c.SelectTier(1); return out },
		func(c Composer) Composer { return c.SetQuantity(-2) },
		func(c Composer) Composer { out, _ := c.SelectTier(0); return out },
		func(c Composer) Composer { return c.SetQuantity(10) },
	}
	for _, step := range steps {
		c = step(c)
		assert.Equal(t, tiers[c.SelectedTier].Price*int64(c.Quantity), c.TotalAmount)
	}
}
