package airlines

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestName(t *testing.T) {
	assert.Equal(t, "American Airlines", Name("AA"))
	assert.Equal(t, "Israir", Name("6H"))
	// Unknown carriers fall back to the raw code.
	assert.Equal(t, "ZZ", Name("ZZ"))
	assert.Equal(t, "", Name(""))
}
