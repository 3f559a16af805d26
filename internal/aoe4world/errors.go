package aoe4world

import "fmt"

// TransportError indicates that a request to the AOE4 World API failed at
// the network or HTTP layer. StatusCode is zero when the request never got
// a response.
type TransportError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("aoe4world: request %s returned status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("aoe4world: request %s failed: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// DecodeError indicates that an API response did not match the expected
// shape.
type DecodeError struct {
	URL string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("aoe4world: decoding response from %s: %v", e.URL, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// PlayerNotFoundError is returned when a referenced player id is absent
// from the game being queried. Raised by Game.DidPlayerWin, where the
// caller has asserted the player takes part in the game.
type PlayerNotFoundError struct {
	PlayerID int64
	GameID   int64
}

func (e *PlayerNotFoundError) Error() string {
	return fmt.Sprintf("aoe4world: player %d is not in game %d", e.PlayerID, e.GameID)
}
