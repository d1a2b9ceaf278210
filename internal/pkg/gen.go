package pkg

import (
	"crypto/rand"
	"math/big"

	"github.com/google/uuid"
)

// roomCodeAlphabet - 32 characters with 0/O/1/I-like confusables removed, so
// codes survive being read out loud or retyped from a screenshot.
const roomCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// RoomCodeLength - number of characters in a room code.
const RoomCodeLength = 6

// GenerateRoomCode - generates a candidate room code; uniqueness is the caller's job.
func GenerateRoomCode() string {
	code := make([]byte, RoomCodeLength)

	for i := range code {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(roomCodeAlphabet))))
		if err != nil {
			// crypto/rand failing means the process has bigger problems
			panic(err)
		}

		code[i] = roomCodeAlphabet[n.Int64()]
	}

	return string(code)
}

// GenerateNewPlayerID - mints an opaque player identity token.
func GenerateNewPlayerID() string {
	return uuid.NewString()
}
