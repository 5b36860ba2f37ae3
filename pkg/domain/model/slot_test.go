package model_test

import (
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/slotswapper/slotswapper/pkg/domain/model"
	"github.com/slotswapper/slotswapper/pkg/domain/types"
)

func validSlot() *model.Slot {
	now := time.Now()
	return &model.Slot{
		ID:        types.NewSlotID(),
		Title:     "Morning shift",
		StartTime: now,
		EndTime:   now.Add(time.Hour),
		Status:    types.SlotStatusBusy,
		OwnerID:   "user-1",
	}
}

func TestSlot_Validate(t *testing.T) {
	t.Run("valid slot", func(t *testing.T) {
		gt.NoError(t, validSlot().Validate())
	})

	t.Run("empty title", func(t *testing.T) {
		s := validSlot()
		s.Title = ""
		gt.Error(t, s.Validate())
	})

	t.Run("end before start", func(t *testing.T) {
		s := validSlot()
		s.EndTime = s.StartTime.Add(-time.Minute)
		gt.Error(t, s.Validate())
	})

	t.Run("end equals start", func(t *testing.T) {
		s := validSlot()
		s.EndTime = s.StartTime
		gt.Error(t, s.Validate())
	})

	t.Run("missing owner", func(t *testing.T) {
		s := validSlot()
		s.OwnerID = ""
		gt.Error(t, s.Validate())
	})

	t.Run("unknown status", func(t *testing.T) {
		s := validSlot()
		s.Status = types.SlotStatus("FREE")
		gt.Error(t, s.Validate())
	})
}
