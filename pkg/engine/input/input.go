package input

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"golang.org/x/term"
)

// ErrInterrupted is returned when Ctrl+C is read in raw mode.
var ErrInterrupted = errors.New("interrupted")

// KeyReader decodes single key presses, including arrow escape sequences,
// from a terminal in raw mode.
type KeyReader struct {
	r *bufio.Reader
}

// NewKeyReader wraps r for key-at-a-time reading.
func NewKeyReader(r io.Reader) *KeyReader {
	return &KeyReader{r: bufio.NewReader(r)}
}

// ReadCode reads the next key and returns its binding code: the key itself
// for printable characters, "arrow_*" for arrow keys, "escape" for a lone
// escape. Enter and unknown escape sequences are skipped.
func (k *KeyReader) ReadCode() (string, error) {
	for {
		b, err := k.r.ReadByte()
		if err != nil {
			return "", err
		}

		switch {
		case b == 3:
			return "", ErrInterrupted
		case b == 0x1b:
			code, err := k.readEscape()
			if err != nil {
				return "", err
			}
			if code != "" {
				return code, nil
			}
		case b == '\n' || b == '\r':
			continue
		case b >= 32 && b < 127:
			return string(b), nil
		}
	}
}

// readEscape decodes the rest of an escape sequence. Returns "" for
// sequences that are not arrows.
func (k *KeyReader) readEscape() (string, error) {
	// A lone escape has nothing buffered behind it
	if k.r.Buffered() == 0 {
		return "escape", nil
	}

	b2, err := k.r.ReadByte()
	if err != nil {
		return "", err
	}

	// Handle both CSI sequences (ESC [) and SS3 sequences (ESC O)
	if b2 != '[' && b2 != 'O' {
		return "", k.r.UnreadByte()
	}

	b3, err := k.r.ReadByte()
	if err != nil {
		return "", err
	}
	switch b3 {
	case 'A':
		return "arrow_up", nil
	case 'B':
		return "arrow_down", nil
	case 'C':
		return "arrow_right", nil
	case 'D':
		return "arrow_left", nil
	}
	return "", nil
}

// WithRawMode runs fn with the terminal fd in raw mode, restoring it afterwards.
func WithRawMode(fd int, fn func() error) error {
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("cannot set terminal to raw mode: %w", err)
	}
	defer term.Restore(fd, oldState)
	return fn()
}
