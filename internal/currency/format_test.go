package currency

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatNGN(t *testing.T) {
	assert.Equal(t, "₦0", FormatNGN(0))
	assert.Equal(t, "₦950", FormatNGN(950))
	assert.Equal(t, "₦17,000", FormatNGN(17000))
	assert.Equal(t, "₦90,000", FormatNGN(90000))
	assert.Equal(t, "₦1,234,567", FormatNGN(1234567))
	assert.Equal(t, "-₦45,000", FormatNGN(-45000))
}

func TestFormat_OtherCodes(t *testing.T) {
	assert.Equal(t, "$1,000", Format("usd", 1000))
	assert.Equal(t, "KES 2,500", Format("KES", 2500))
}
