package entity

import (
	"encoding/json"
	"strconv"
	"strings"
)

const BoardSize = 9

const (
	CellEmpty Cell = 0
	CellX     Cell = 1
	CellO     Cell = 2
)

var WinCombos = [][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Cell is one board square: empty, X or O.
type Cell int

// Board holds the cells in row-major order.
type Board [BoardSize]Cell

func (that Cell) IsValid() bool {
	return that >= CellEmpty && that <= CellO
}

// Symbol - returns the mark written in the cell, empty for an empty or unknown cell.
func (that Cell) Symbol() Symbol {
	switch that {
	case CellX:
		return SymbolX
	case CellO:
		return SymbolO
	default:
		return ""
	}
}

// DecodeHexBoard - decodes a packed hex board, one byte per cell.
// A pair that is not entirely hex becomes an empty cell, the result is padded or truncated to BoardSize.
func DecodeHexBoard(raw string) Board {
	raw = strings.TrimPrefix(raw, "0x")

	values := make([]int, 0, BoardSize)
	for i := 0; i < len(raw) && len(values) < BoardSize; i += 2 {
		end := min(i+2, len(raw))

		value, err := strconv.ParseUint(raw[i:end], 16, 8)
		if err != nil {
			values = append(values, int(CellEmpty))
			continue
		}

		values = append(values, int(value))
	}

	return BoardFromValues(values)
}

// BoardFromValues - copies already decoded cell values, padding or truncating to BoardSize.
func BoardFromValues(values []int) Board {
	var board Board

	for i := 0; i < len(values) && i < BoardSize; i++ {
		board[i] = Cell(values[i])
	}

	return board
}

// ParseBoard - decodes the board field of a view_game payload, which is either a hex string or an array.
// Anything else yields an empty board.
func ParseBoard(raw json.RawMessage) Board {
	var packed string
	if err := json.Unmarshal(raw, &packed); err == nil {
		return DecodeHexBoard(packed)
	}

	var values []int
	if err := json.Unmarshal(raw, &values); err == nil {
		return BoardFromValues(values)
	}

	return Board{}
}

// IsCellEmpty - reports whether a move can still be written to the position.
func (that *Board) IsCellEmpty(position int) bool {
	if position < 0 || position >= BoardSize {
		return false
	}

	return that[position] == CellEmpty
}

// WinningLine - returns the positions of a completed line, nil when no line is complete.
func (that *Board) WinningLine() []int {
	for _, combo := range WinCombos {
		a, b, c := that[combo[0]], that[combo[1]], that[combo[2]]
		if a != CellEmpty && a == b && b == c {
			return []int{combo[0], combo[1], combo[2]}
		}
	}

	return nil
}

// InvalidCells - returns the positions holding values outside empty, X and O.
func (that *Board) InvalidCells() []int {
	var invalid []int

	for i, cell := range that {
		if !cell.IsValid() {
			invalid = append(invalid, i)
		}
	}

	return invalid
}
