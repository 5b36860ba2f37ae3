package usecase

import (
	"github.com/slotswapper/slotswapper/pkg/domain/interfaces"
)

type UseCases struct {
	repo interfaces.Repository
	Slot *SlotUseCase
	Swap *SwapUseCase
	User *UserUseCase
}

func New(repo interfaces.Repository) *UseCases {
	return &UseCases{
		repo: repo,
		Slot: NewSlotUseCase(repo),
		Swap: NewSwapUseCase(repo),
		User: NewUserUseCase(repo),
	}
}
