package tictactoe

import (
	"testing"

	"github.com/rocketscienceinc/arcade-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWinner(t *testing.T) {
	t.Run("Empty board has no winner", func(t *testing.T) {
		// Given: an empty board
		board := [9]string{}

		// Then: no winner is reported
		assert.Equal(t, "", Winner(board))
	})

	t.Run("Every winning triple is detected for both marks", func(t *testing.T) {
		for _, mark := range []string{entity.PlayerX, entity.PlayerO} {
			for _, combo := range WinCombos {
				// Given: a board where one triple is filled with the same mark
				board := [9]string{}
				board[combo[0]] = mark
				board[combo[1]] = mark
				board[combo[2]] = mark

				// Then: that mark is the winner
				require.Equal(t, mark, Winner(board), "combo %v mark %s", combo, mark)
			}
		}
	})

	t.Run("Full board without a triple has no winner", func(t *testing.T) {
		// Given: a drawn board
		// X O X
		// X O O
		// O X X
		board := [9]string{"X", "O", "X", "X", "O", "O", "O", "X", "X"}

		// Then: no winner, but the board is full
		assert.Equal(t, "", Winner(board))
		assert.True(t, IsFull(board))
	})
}

func TestIsFull(t *testing.T) {
	t.Run("Board with one empty cell is not full", func(t *testing.T) {
		board := [9]string{"X", "O", "X", "X", "O", "O", "O", "X", ""}

		assert.False(t, IsFull(board))
	})

	t.Run("Empty board is not full", func(t *testing.T) {
		assert.False(t, IsFull([9]string{}))
	})
}

func TestIsLegalMove(t *testing.T) {
	board := [9]string{"X"}

	t.Run("Empty cell inside the board is legal", func(t *testing.T) {
		assert.True(t, IsLegalMove(board, 1))
		assert.True(t, IsLegalMove(board, 8))
	})

	t.Run("Occupied cell is illegal", func(t *testing.T) {
		assert.False(t, IsLegalMove(board, 0))
	})

	t.Run("Out-of-range index is illegal", func(t *testing.T) {
		assert.False(t, IsLegalMove(board, -1))
		assert.False(t, IsLegalMove(board, 9))
	})
}

func TestToggleMark(t *testing.T) {
	assert.Equal(t, entity.PlayerO, ToggleMark(entity.PlayerX))
	assert.Equal(t, entity.PlayerX, ToggleMark(entity.PlayerO))
}
