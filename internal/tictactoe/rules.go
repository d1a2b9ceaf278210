package tictactoe

import "github.com/rocketscienceinc/arcade-backend/internal/entity"

// WinCombos - the 8 winning triples: rows first, then columns, then diagonals.
// Winner scans them in this order.
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

// Winner - returns the mark holding a completed triple, or an empty string.
func Winner(board [9]string) string {
	for _, combo := range WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if a != entity.EmptyCell && a == b && b == c {
			return a
		}
	}

	return ""
}

// IsFull - reports whether no cell is empty.
func IsFull(board [9]string) bool {
	for _, cell := range board {
		if cell == entity.EmptyCell {
			return false
		}
	}

	return true
}

// IsLegalMove - reports whether the cell index is on the board and unoccupied.
func IsLegalMove(board [9]string, cell int) bool {
	if cell < 0 || cell >= len(board) {
		return false
	}

	return board[cell] == entity.EmptyCell
}

// ToggleMark - returns the opposing mark.
func ToggleMark(currentMark string) string {
	if currentMark == entity.PlayerX {
		return entity.PlayerO
	}

	return entity.PlayerX
}
