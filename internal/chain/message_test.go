package chain

import (
	"encoding/base64"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-dashboard/internal/apperror"
)

const (
	sender  = "init1sender"
	playerO = "0x2"
)

func TestMessages_CreateGame(t *testing.T) {
	messages := NewMessages(testModuleAddress, "tictactoe")

	t.Run("Builds create_game with the opponent address", func(t *testing.T) {
		// When: building the message
		msg, err := messages.CreateGame(sender, playerO)
		require.NoError(t, err)

		// Then: it targets the module entry function with one address argument
		assert.Equal(t, MsgExecuteTypeURL, msg.TypeURL)
		assert.Equal(t, sender, msg.Value.Sender)
		assert.Equal(t, testModuleAddress, msg.Value.ModuleAddress)
		assert.Equal(t, "tictactoe", msg.Value.ModuleName)
		assert.Equal(t, FunctionCreateGame, msg.Value.FunctionName)
		assert.Empty(t, msg.Value.TypeArgs)
		require.Len(t, msg.Value.Args, 1)

		raw, err := base64.StdEncoding.DecodeString(msg.Value.Args[0])
		require.NoError(t, err)
		require.Len(t, raw, 32)
		assert.Equal(t, byte(2), raw[31])
	})

	t.Run("Invalid opponent fails with ErrDecode", func(t *testing.T) {
		_, err := messages.CreateGame(sender, "init1broken")

		require.ErrorIs(t, err, apperror.ErrDecode)
	})

	t.Run("Serializes type_args as an empty array", func(t *testing.T) {
		msg, err := messages.CreateGame(sender, playerO)
		require.NoError(t, err)

		encoded, err := json.Marshal(msg)
		require.NoError(t, err)
		assert.Contains(t, string(encoded), `"type_args":[]`)
		assert.Contains(t, string(encoded), `"typeUrl":"/initia.move.v1.MsgExecute"`)
	})
}

func TestMessages_MakeMove(t *testing.T) {
	messages := NewMessages(testModuleAddress, "tictactoe")

	t.Run("Builds make_move with owner and position", func(t *testing.T) {
		msg, err := messages.MakeMove(sender, "0x1", 8)
		require.NoError(t, err)

		assert.Equal(t, FunctionMakeMove, msg.Value.FunctionName)
		require.Len(t, msg.Value.Args, 2)
		assert.Equal(t, "CA==", msg.Value.Args[1])
	})

	t.Run("Position outside the board fails", func(t *testing.T) {
		for _, position := range []int{-1, 9, 300} {
			_, err := messages.MakeMove(sender, "0x1", position)

			require.ErrorIs(t, err, apperror.ErrInvalidPosition)
		}
	})

	t.Run("Invalid owner fails with ErrDecode", func(t *testing.T) {
		_, err := messages.MakeMove(sender, "not-an-address", 0)

		require.ErrorIs(t, err, apperror.ErrDecode)
	})
}
