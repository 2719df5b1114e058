package utils

import (
	"fmt"
	"io"
	"os"

	kerrors "github.com/PolarWolf314/rolodex/internal/errors"
)

// ReadInput reads all content from in, normally a command's stdin.
// Returns an error if in is a terminal (no piped data), is empty, or cannot be read.
func ReadInput(in io.Reader) ([]byte, error) {
	if f, ok := in.(*os.File); ok {
		stat, err := f.Stat()
		if err != nil {
			return nil, fmt.Errorf("failed to stat stdin: %w", err)
		}

		// If ModeCharDevice is set, stdin is connected to a terminal.
		if (stat.Mode() & os.ModeCharDevice) != 0 {
			return nil, fmt.Errorf("%w: no data provided on stdin (hint: pipe an export file to this command)", kerrors.ErrValidation)
		}
	}

	data, err := io.ReadAll(in)
	if err != nil {
		return nil, fmt.Errorf("failed to read from stdin: %w", err)
	}

	if len(data) == 0 {
		return nil, fmt.Errorf("%w: stdin is empty", kerrors.ErrValidation)
	}

	return data, nil
}
