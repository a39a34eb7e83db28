package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelForXP(t *testing.T) {
	assert.Equal(t, 1, LevelForXP(0))
	assert.Equal(t, 1, LevelForXP(199))
	assert.Equal(t, 2, LevelForXP(200))
	assert.Equal(t, 2, LevelForXP(399))
	assert.Equal(t, 3, LevelForXP(400))
	assert.Equal(t, 6, LevelForXP(1050))
}

func TestLevelUpCrossesExactlyOneBoundary(t *testing.T) {
	// awarding 50 XP from 180 crosses the 200 boundary once
	before := LevelForXP(180)
	after := LevelForXP(230)
	assert.Equal(t, 1, after-before)
}
