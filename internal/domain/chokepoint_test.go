package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testPoint() *ChokePoint {
	return &ChokePoint{
		ID:   "cp-1",
		Zone: "South Dallas",
		Name: "DART Ledbetter Station",
		TimeSlots: []*TimeSlot{
			{Label: "5-6 PM", MaxOrders: 10, CurrentOrders: 10},
			{Label: "6-7 PM", MaxOrders: 10, CurrentOrders: 1},
		},
	}
}

func TestSlotByLabel(t *testing.T) {
	cp := testPoint()

	assert.Equal(t, "6-7 PM", cp.SlotByLabel("6-7 PM").Label)
	assert.Nil(t, cp.SlotByLabel("7-8 PM"))
	assert.Nil(t, cp.SlotByLabel(""), "empty label must never match")
}

func TestFirstAvailableSlot(t *testing.T) {
	cp := testPoint()
	assert.Equal(t, "6-7 PM", cp.FirstAvailableSlot().Label, "skips the full slot")

	cp.TimeSlots[1].CurrentOrders = 10
	assert.Nil(t, cp.FirstAvailableSlot())
}

func TestSlotAvailable(t *testing.T) {
	s := &TimeSlot{Label: "5-6 PM", MaxOrders: 2, CurrentOrders: 1}
	assert.True(t, s.Available())

	s.CurrentOrders = 2
	assert.False(t, s.Available())
}
