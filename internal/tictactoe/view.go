package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-dashboard/internal/address"
	"github.com/rocketscienceinc/tictactoe-dashboard/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-dashboard/internal/entity"
)

// AssembleView - turns a raw view_game payload into a GameView. It never fails and does no range checks.
func AssembleView(raw *entity.RawGame) entity.GameView {
	moveCount := uint64(0)
	if raw.MoveCount > 0 {
		moveCount = uint64(raw.MoveCount)
	}

	return entity.GameView{
		Board:       entity.ParseBoard(raw.Board),
		PlayerX:     address.Canonicalize(raw.PlayerX),
		PlayerO:     address.Canonicalize(raw.PlayerO),
		CurrentTurn: entity.Cell(raw.CurrentTurn),
		Status:      entity.Status(raw.Status),
		MoveCount:   moveCount,
	}
}

// AssembleValidView - assembles the view and rejects statuses, turns and cells outside their enums.
func AssembleValidView(raw *entity.RawGame) (entity.GameView, error) {
	view := AssembleView(raw)

	if raw.MoveCount < 0 {
		return entity.GameView{}, fmt.Errorf("%w: move_count %d", apperror.ErrMalformedGameState, raw.MoveCount)
	}

	if !view.Status.IsValid() {
		return entity.GameView{}, fmt.Errorf("%w: status %d", apperror.ErrMalformedGameState, view.Status)
	}

	if !view.CurrentTurn.IsValid() {
		return entity.GameView{}, fmt.Errorf("%w: current_turn %d", apperror.ErrMalformedGameState, view.CurrentTurn)
	}

	if invalid := view.Board.InvalidCells(); len(invalid) > 0 {
		return entity.GameView{}, fmt.Errorf("%w: board cells %v", apperror.ErrMalformedGameState, invalid)
	}

	return view, nil
}
