package types_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/slotswapper/slotswapper/pkg/domain/types"
)

func TestSwapStatus_IsValid(t *testing.T) {
	for _, s := range types.AllSwapStatuses() {
		gt.B(t, s.IsValid()).True()
	}
	gt.B(t, types.SwapStatus("DONE").IsValid()).False()
	gt.B(t, types.SwapStatus("").IsValid()).False()
}

func TestSwapStatus_IsTerminal(t *testing.T) {
	gt.B(t, types.SwapStatusPending.IsTerminal()).False()
	gt.B(t, types.SwapStatusAccepted.IsTerminal()).True()
	gt.B(t, types.SwapStatusRejected.IsTerminal()).True()
}

func TestParseSwapStatus(t *testing.T) {
	got, err := types.ParseSwapStatus("PENDING")
	gt.NoError(t, err)
	gt.V(t, got).Equal(types.SwapStatusPending)

	_, err = types.ParseSwapStatus("pending")
	gt.Error(t, err)
}
