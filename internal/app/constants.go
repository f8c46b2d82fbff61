package app

// MaxUndosPerPlayer is each player's undo budget for one game. It is never
// replenished mid-game.
const MaxUndosPerPlayer = 3
