package apperror

import "errors"

var (
	ErrDecode             = errors.New("failed to decode address")
	ErrMalformedGameState = errors.New("malformed game state")
	ErrGameNotFound       = errors.New("game not found")
	ErrWalletNotConnected = errors.New("wallet not connected")
	ErrNoGameLoaded       = errors.New("no game loaded")
	ErrInvalidPosition    = errors.New("invalid board position")
	ErrInvalidAddress     = errors.New("address must start with init1 or 0x")
)
