package leaders

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is wrapped by every lookup miss
	ErrNotFound = errors.New("not found")

	// ErrPlayerNotFound means no directory entry matched the requested name
	ErrPlayerNotFound = fmt.Errorf("player %w", ErrNotFound)

	// ErrNoSeasonStats means the player exists but has no row for the season
	ErrNoSeasonStats = fmt.Errorf("season stats %w", ErrNotFound)

	// ErrUnknownCategory means the route slug names no registered category
	ErrUnknownCategory = errors.New("unknown category")

	// ErrInvalidTeamID means the team id is not a positive integer
	ErrInvalidTeamID = errors.New("invalid team id")
)
