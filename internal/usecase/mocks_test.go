package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/rocketscienceinc/tictactoe-dashboard/internal/chain"
	"github.com/rocketscienceinc/tictactoe-dashboard/internal/entity"
)

type mockChain struct {
	mock.Mock
}

func (m *mockChain) View(ctx context.Context, module, function string, typeArgs, args []string) (json.RawMessage, error) {
	ret := m.Called(ctx, module, function, typeArgs, args)

	data, _ := ret.Get(0).(json.RawMessage)

	return data, ret.Error(1)
}

type mockGameRepo struct {
	mock.Mock
}

func (m *mockGameRepo) CreateOrUpdate(ctx context.Context, owner string, game *entity.GameView) error {
	return m.Called(ctx, owner, game).Error(0)
}

func (m *mockGameRepo) GetByOwner(ctx context.Context, owner string) (*entity.GameView, error) {
	ret := m.Called(ctx, owner)

	game, _ := ret.Get(0).(*entity.GameView)

	return game, ret.Error(1)
}

type mockWallet struct {
	mock.Mock
}

func (m *mockWallet) Address() string {
	return m.Called().String(0)
}

func (m *mockWallet) IsConnected() bool {
	return m.Called().Bool(0)
}

func (m *mockWallet) OpenConnect(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockWallet) RequestTxBlock(ctx context.Context, messages []chain.EncodeObject) (string, error) {
	ret := m.Called(ctx, messages)

	return ret.String(0), ret.Error(1)
}

func (m *mockWallet) WaitForTxConfirmation(ctx context.Context, txHash string, timeout time.Duration) error {
	return m.Called(ctx, txHash, timeout).Error(0)
}
