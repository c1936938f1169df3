package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestFrom(t *testing.T) {
	assert := assert.New(t)

	Use(language.AmericanEnglish)

	assert.Equal("(16-bit) register", From("(%d-bit) register", 16))
	assert.Equal("plain", From("plain"))
	assert.Equal("1,024 entries", From("%d entries", 1024))
}
