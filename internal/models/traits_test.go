package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTraitValidation(t *testing.T) {
	for _, r := range Races {
		assert.True(t, IsValidRace(r), r)
	}
	for _, c := range Classes {
		assert.True(t, IsValidClass(c), c)
	}
	for _, g := range Genders {
		assert.True(t, IsValidGender(g), g)
	}

	assert.False(t, IsValidRace("Orc"))
	assert.False(t, IsValidRace("dwarf"), "race names are case-sensitive")
	assert.False(t, IsValidClass(""))
	assert.False(t, IsValidGender("Other"))
}
