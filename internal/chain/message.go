package chain

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-dashboard/internal/address"
	"github.com/rocketscienceinc/tictactoe-dashboard/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-dashboard/internal/bcs"
	"github.com/rocketscienceinc/tictactoe-dashboard/internal/entity"
)

const (
	MsgExecuteTypeURL = "/initia.move.v1.MsgExecute"

	FunctionCreateGame = "create_game"
	FunctionMakeMove   = "make_move"
	FunctionViewGame   = "view_game"
	FunctionGameExists = "game_exists"
)

// MsgExecute calls an entry function of a published Move module.
type MsgExecute struct {
	Sender        string   `json:"sender"`
	ModuleAddress string   `json:"module_address"`
	ModuleName    string   `json:"module_name"`
	FunctionName  string   `json:"function_name"`
	TypeArgs      []string `json:"type_args"`
	Args          []string `json:"args"`
}

// EncodeObject is the unsigned message handed to the wallet for signing.
type EncodeObject struct {
	TypeURL string     `json:"typeUrl"`
	Value   MsgExecute `json:"value"`
}

// Messages builds tictactoe entry function calls.
type Messages struct {
	moduleAddress string
	moduleName    string
}

func NewMessages(moduleAddress, moduleName string) *Messages {
	return &Messages{
		moduleAddress: moduleAddress,
		moduleName:    moduleName,
	}
}

// CreateGame - builds create_game(player_o). The sender plays X and owns the game.
func (that *Messages) CreateGame(sender, playerO string) (EncodeObject, error) {
	opponent, err := address.EncodeForWire(playerO)
	if err != nil {
		return EncodeObject{}, fmt.Errorf("failed to encode player O address: %w", err)
	}

	return that.execute(sender, FunctionCreateGame, opponent), nil
}

// MakeMove - builds make_move(game_owner, position).
func (that *Messages) MakeMove(sender, gameOwner string, position int) (EncodeObject, error) {
	if position < 0 || position >= entity.BoardSize {
		return EncodeObject{}, fmt.Errorf("%w: %d", apperror.ErrInvalidPosition, position)
	}

	owner, err := address.EncodeForWire(gameOwner)
	if err != nil {
		return EncodeObject{}, fmt.Errorf("failed to encode game owner address: %w", err)
	}

	return that.execute(sender, FunctionMakeMove, owner, bcs.ToBase64(bcs.U8(uint8(position)))), nil
}

func (that *Messages) execute(sender, function string, args ...string) EncodeObject {
	return EncodeObject{
		TypeURL: MsgExecuteTypeURL,
		Value: MsgExecute{
			Sender:        sender,
			ModuleAddress: that.moduleAddress,
			ModuleName:    that.moduleName,
			FunctionName:  function,
			TypeArgs:      []string{},
			Args:          args,
		},
	}
}
