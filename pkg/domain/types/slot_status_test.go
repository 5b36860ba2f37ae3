package types_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/slotswapper/slotswapper/pkg/domain/types"
)

func TestSlotStatus_IsValid(t *testing.T) {
	tests := []struct {
		name   string
		status types.SlotStatus
		want   bool
	}{
		{
			name:   "valid busy",
			status: types.SlotStatusBusy,
			want:   true,
		},
		{
			name:   "valid swappable",
			status: types.SlotStatusSwappable,
			want:   true,
		},
		{
			name:   "valid swap pending",
			status: types.SlotStatusSwapPending,
			want:   true,
		},
		{
			name:   "invalid status",
			status: types.SlotStatus("invalid"),
			want:   false,
		},
		{
			name:   "empty status",
			status: types.SlotStatus(""),
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.want {
				gt.B(t, tt.status.IsValid()).True()
			} else {
				gt.B(t, tt.status.IsValid()).False()
			}
		})
	}
}

func TestSlotStatus_OwnerSettable(t *testing.T) {
	gt.B(t, types.SlotStatusBusy.OwnerSettable()).True()
	gt.B(t, types.SlotStatusSwappable.OwnerSettable()).True()
	gt.B(t, types.SlotStatusSwapPending.OwnerSettable()).False()
	gt.B(t, types.SlotStatus("invalid").OwnerSettable()).False()
}

func TestSlotStatus_Normalize(t *testing.T) {
	gt.V(t, types.SlotStatus("").Normalize()).Equal(types.SlotStatusBusy)
	gt.V(t, types.SlotStatusSwappable.Normalize()).Equal(types.SlotStatusSwappable)
}

func TestParseSlotStatus(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    types.SlotStatus
		wantErr bool
	}{
		{
			name:  "valid busy",
			input: "BUSY",
			want:  types.SlotStatusBusy,
		},
		{
			name:  "valid swap pending",
			input: "SWAP_PENDING",
			want:  types.SlotStatusSwapPending,
		},
		{
			name:    "lowercase is invalid",
			input:   "busy",
			wantErr: true,
		},
		{
			name:    "empty is invalid",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := types.ParseSlotStatus(tt.input)
			if tt.wantErr {
				gt.Error(t, err)
			} else {
				gt.NoError(t, err)
				gt.V(t, got).Equal(tt.want)
			}
		})
	}
}
