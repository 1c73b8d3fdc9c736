package domain

import (
	"errors"
	"strconv"
	"strings"
)

// Tier count bounds. The cap is a hard product rule: adding a fourth tier
// is a silent no-op, and the last tier can never be removed.
const (
	MinTierCount = 1
	MaxTierCount = 3
)

// TierField names a single editable field on a pricing tier.
type TierField string

const (
	TierFieldPacks        TierField = "packs"
	TierFieldPrice        TierField = "price"
	TierFieldDescription  TierField = "description"
	TierFieldImage        TierField = "image"
	TierFieldFreeDelivery TierField = "free_delivery"
	TierFieldDiscount     TierField = "discount"
)

var (
	ErrTierIndexOutOfRange = errors.New("tier_index_out_of_range")
	ErrUnknownTierField    = errors.New("unknown_tier_field")
	ErrInvalidTierValue    = errors.New("invalid_tier_value")
	ErrTierCountOutOfRange = errors.New("tier_count_out_of_range")
	ErrInvalidTierPacks    = errors.New("invalid_tier_packs")
	ErrInvalidTierPrice    = errors.New("invalid_tier_price")
)

// DefaultTier is the tier appended by AddTier before the merchant edits it.
func DefaultTier() PricingTier {
	return PricingTier{Packs: 1, Price: 0}
}

// AddTier returns a copy of tiers with a default tier appended. At the cap
// it returns the input unchanged.
func AddTier(tiers []PricingTier) []PricingTier {
	if len(tiers) >= MaxTierCount {
		return tiers
	}
	out := make([]PricingTier, len(tiers), len(tiers)+1)
	copy(out, tiers)
	return append(out, DefaultTier())
}

// RemoveTier returns a copy of tiers without the tier at index, preserving
// order. Removing the last remaining tier, or an out-of-range index, is a
// no-op.
func RemoveTier(tiers []PricingTier, index int) []PricingTier {
	if len(tiers) <= MinTierCount {
		return tiers
	}
	if index < 0 || index >= len(tiers) {
		return tiers
	}
	out := make([]PricingTier, 0, len(tiers)-1)
	out = append(out, tiers[:index]...)
	return append(out, tiers[index+1:]...)
}

// UpdateTierField returns a copy of tiers with exactly one field replaced
// on the tier at index. Numeric fields accept digits only; empty input
// coerces to zero rather than leaving the field unset.
func UpdateTierField(tiers []PricingTier, index int, field TierField, value string) ([]PricingTier, error) {
	if index < 0 || index >= len(tiers) {
		return tiers, ErrTierIndexOutOfRange
	}

	out := make([]PricingTier, len(tiers))
	copy(out, tiers)
	tier := out[index]

	switch field {
	case TierFieldPacks:
		parsed, err := parseDigits(value)
		if err != nil {
			return tiers, ErrInvalidTierValue
		}
		tier.Packs = int(parsed)
	case TierFieldPrice:
		parsed, err := parseDigits(value)
		if err != nil {
			return tiers, ErrInvalidTierValue
		}
		tier.Price = parsed
	case TierFieldDescription:
		tier.Description = value
	case TierFieldImage:
		tier.Image = value
	case TierFieldFreeDelivery:
		enabled, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return tiers, ErrInvalidTierValue
		}
		tier.FreeDelivery = enabled
	case TierFieldDiscount:
		tier.Discount = value
	default:
		return tiers, ErrUnknownTierField
	}

	out[index] = tier
	return out, nil
}

// ValidateTiers enforces the persistence invariants: 1..3 tiers, every
// tier with packs >= 1 and a non-negative price.
func ValidateTiers(tiers []PricingTier) error {
	if len(tiers) < MinTierCount || len(tiers) > MaxTierCount {
		return ErrTierCountOutOfRange
	}
	for _, tier := range tiers {
		if tier.Packs < 1 {
			return ErrInvalidTierPacks
		}
		if tier.Price < 0 {
			return ErrInvalidTierPrice
		}
	}
	return nil
}

func parseDigits(value string) (int64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return 0, ErrInvalidTierValue
		}
	}
	return strconv.ParseInt(value, 10, 64)
}
