package inspect

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/metabake/metabake/pkg/errors"
)

// SetupCfg extracts metadata from the [metadata] section of a declarative
// setup.cfg. The format is INI-shaped; only the flat key/value lines this
// tool needs are read, so a dedicated INI dependency would be idle weight.
type SetupCfg struct{}

func (*SetupCfg) Name() string { return "setup.cfg" }

func (*SetupCfg) Supports(filename string) bool {
	return strings.EqualFold(filename, "setup.cfg")
}

func (*SetupCfg) Parse(path string) (Metadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return Metadata{}, errors.Wrap(errors.ErrCodeInternal, err, "read %s", path)
	}
	defer f.Close()

	var meta Metadata
	section := ""

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";"):
			continue
		case strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]"):
			section = strings.TrimSpace(line[1 : len(line)-1])
			continue
		case section != "metadata":
			continue
		}

		key, value, ok := splitCfgLine(line)
		if !ok {
			continue
		}
		switch key {
		case "name":
			meta.Name = value
		case "version":
			meta.Version = value
		case "url", "home_page", "home-page":
			meta.Homepage = value
		case "description":
			meta.Summary = value
		}
	}
	if err := scanner.Err(); err != nil {
		return Metadata{}, errors.Wrap(errors.ErrCodeParse, err, "scan %s", path)
	}

	if meta.Name == "" || meta.Version == "" {
		return Metadata{}, errors.New(errors.ErrCodeParse,
			"%s [metadata] does not declare name and version", filepath.Base(path))
	}
	return meta, nil
}

// splitCfgLine splits "key = value" or "key: value" into its parts.
func splitCfgLine(line string) (key, value string, ok bool) {
	sep := strings.IndexAny(line, "=:")
	if sep < 0 {
		return "", "", false
	}
	key = strings.ToLower(strings.TrimSpace(line[:sep]))
	value = strings.TrimSpace(line[sep+1:])
	return key, value, key != ""
}
