package entity

const (
	StatusActive Status = 0
	StatusXWon   Status = 1
	StatusOWon   Status = 2
	StatusDraw   Status = 3
)

const (
	SymbolX Symbol = "X"
	SymbolO Symbol = "O"
)

// Status is the game status as stored by the tictactoe module.
type Status int

// Symbol is the mark a participant plays with.
type Symbol string

// GameView is a snapshot of on-chain game state. It is built fresh for every query and never mutated.
type GameView struct {
	Board       Board  `json:"board"`
	PlayerX     string `json:"player_x"`
	PlayerO     string `json:"player_o"`
	CurrentTurn Cell   `json:"current_turn"`
	Status      Status `json:"status"`
	MoveCount   uint64 `json:"move_count"`
}

func (that Status) IsValid() bool {
	return that >= StatusActive && that <= StatusDraw
}

func (that Status) IsTerminal() bool {
	return that == StatusXWon || that == StatusOWon || that == StatusDraw
}

func (that Status) String() string {
	switch that {
	case StatusActive:
		return "active"
	case StatusXWon:
		return "x_won"
	case StatusOWon:
		return "o_won"
	case StatusDraw:
		return "draw"
	default:
		return "unknown"
	}
}

// Cell - returns the cell value a symbol is written with.
func (that Symbol) Cell() Cell {
	switch that {
	case SymbolX:
		return CellX
	case SymbolO:
		return CellO
	default:
		return CellEmpty
	}
}

func (that *GameView) IsActive() bool {
	return that.Status == StatusActive
}

func (that *GameView) IsFinished() bool {
	return that.Status.IsTerminal()
}
