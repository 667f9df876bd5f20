package speech

import (
	"bytes"

	"bookmarkcast-api/core/errors"
)

// Assembler implements interfaces.AudioAssembler by plain byte concatenation.
// Clips must share one encoding; MP3 frames play back correctly when appended.
type Assembler struct{}

// NewAssembler creates an assembler
func NewAssembler() *Assembler {
	return &Assembler{}
}

// Assemble joins clips in order. It returns errors.ErrNoAudio when there is
// nothing to join.
func (a *Assembler) Assemble(clips [][]byte) ([]byte, error) {
	size := 0
	for _, c := range clips {
		size += len(c)
	}
	if size == 0 {
		return nil, errors.ErrNoAudio
	}

	var buf bytes.Buffer
	buf.Grow(size)
	for _, c := range clips {
		buf.Write(c)
	}
	return buf.Bytes(), nil
}
