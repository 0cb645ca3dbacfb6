package inspect

import (
	"os"
	"strings"

	"github.com/metabake/metabake/pkg/errors"
)

// ReadRequirements finds the first requirements-named file under root and
// returns its lines in file order. Lines are raw requirement specifiers and
// are not parsed; blank lines are preserved as empty strings so the output
// mirrors the file exactly.
func ReadRequirements(root string) ([]string, error) {
	path, err := findFirst(root, "requirements")
	if err != nil {
		if errors.Is(err, errors.ErrCodeNotFound) {
			return nil, errors.New(errors.ErrCodeNotFound, "could not find requirements file")
		}
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read %s", path)
	}
	return splitLines(string(data)), nil
}

// splitLines splits on newlines without producing a phantom final element
// for a trailing newline. An empty file yields no lines.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	s = strings.TrimSuffix(s, "\n")
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
