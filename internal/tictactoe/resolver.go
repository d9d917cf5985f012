package tictactoe

import (
	"github.com/rocketscienceinc/tictactoe-dashboard/internal/address"
	"github.com/rocketscienceinc/tictactoe-dashboard/internal/entity"
)

const (
	textActive  = "Active"
	textYouWon  = "You Won! 🎉"
	textXWon    = "X Won"
	textOWon    = "O Won"
	textDraw    = "Draw"
	textUnknown = "Unknown"
)

// Dashboard is what the status panel shows for one viewer.
type Dashboard struct {
	Game         entity.GameView `json:"game"`
	StatusText   string          `json:"status_text"`
	ViewerSymbol entity.Symbol   `json:"viewer_symbol,omitempty"`
	YourTurn     bool            `json:"your_turn"`
	ViewerIsX    bool            `json:"viewer_is_x"`
	ViewerIsO    bool            `json:"viewer_is_o"`
	PlayerXShort string          `json:"player_x_short"`
	PlayerOShort string          `json:"player_o_short"`
	WinningLine  []int           `json:"winning_line,omitempty"`
	Stale        bool            `json:"stale,omitempty"`
}

// StatusText - returns the status label. Wins are worded from X's side: a viewer that is not X
// reads an O win as their own.
func StatusText(status entity.Status, playerX, viewer string) string {
	viewerIsX := address.Equal(viewer, playerX)

	switch status {
	case entity.StatusActive:
		return textActive
	case entity.StatusXWon:
		if viewerIsX {
			return textYouWon
		}
		return textXWon
	case entity.StatusOWon:
		if viewerIsX {
			return textOWon
		}
		return textYouWon
	case entity.StatusDraw:
		return textDraw
	default:
		return textUnknown
	}
}

// PlayerSymbol - returns the symbol addr plays with, false when addr is not a participant.
func PlayerSymbol(game *entity.GameView, addr string) (entity.Symbol, bool) {
	switch {
	case address.Equal(addr, game.PlayerX):
		return entity.SymbolX, true
	case address.Equal(addr, game.PlayerO):
		return entity.SymbolO, true
	default:
		return "", false
	}
}

// IsPlayerTurn - reports whether addr is a participant whose symbol moves next.
func IsPlayerTurn(game *entity.GameView, addr string) bool {
	symbol, ok := PlayerSymbol(game, addr)
	if !ok {
		return false
	}

	return game.CurrentTurn == symbol.Cell()
}

// Describe - resolves everything the status panel needs for viewer. viewer may be empty.
func Describe(game *entity.GameView, viewer string) Dashboard {
	dashboard := Dashboard{
		Game:         *game,
		StatusText:   StatusText(game.Status, game.PlayerX, viewer),
		YourTurn:     IsPlayerTurn(game, viewer),
		ViewerIsX:    address.Equal(viewer, game.PlayerX),
		ViewerIsO:    address.Equal(viewer, game.PlayerO),
		PlayerXShort: address.Truncate(game.PlayerX),
		PlayerOShort: address.Truncate(game.PlayerO),
		WinningLine:  game.Board.WinningLine(),
	}

	if symbol, ok := PlayerSymbol(game, viewer); ok {
		dashboard.ViewerSymbol = symbol
	}

	return dashboard
}
