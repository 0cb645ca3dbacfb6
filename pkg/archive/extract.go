package archive

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/metabake/metabake/pkg/errors"
)

// Tree is an extracted source tree rooted in a temporary directory that is
// exclusively owned by one pipeline run. Close removes it; callers should
// defer Close as soon as Extract succeeds so the tree is deleted on every
// exit path.
type Tree struct {
	root string
}

// Root returns the directory the archive was unpacked into.
func (t *Tree) Root() string { return t.root }

// Close deletes the extracted tree. Safe to call more than once.
func (t *Tree) Close() error {
	if t.root == "" {
		return nil
	}
	err := os.RemoveAll(t.root)
	t.root = ""
	return err
}

// Extract decompresses a gzip-compressed tar stream into a freshly created
// temporary directory and returns a handle to it. Entries that would land
// outside the directory (absolute paths, ".." traversal, symlinks pointing
// out of the tree) are rejected: release tarballs come from the network and
// cannot be trusted to be well-formed.
func (a *Archive) Extract() (*Tree, error) {
	root, err := os.MkdirTemp("", "metabake-*")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "create extraction directory")
	}

	tree := &Tree{root: root}
	if err := untar(root, a.Bytes); err != nil {
		_ = tree.Close()
		return nil, err
	}
	return tree, nil
}

func untar(root string, data []byte) error {
	gzr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return errors.Wrap(errors.ErrCodeParse, err, "decompress archive")
	}
	defer gzr.Close()

	tr := tar.NewReader(gzr)
	for {
		header, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errors.Wrap(errors.ErrCodeParse, err, "read archive entry")
		}

		target, err := securePath(root, header.Name)
		if err != nil {
			return err
		}

		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0o750); err != nil {
				return errors.Wrap(errors.ErrCodeInternal, err, "create directory %s", header.Name)
			}
		case tar.TypeReg:
			if err := writeFile(target, tr, header.FileInfo().Mode()); err != nil {
				return errors.Wrap(errors.ErrCodeInternal, err, "extract %s", header.Name)
			}
		case tar.TypeSymlink, tar.TypeLink:
			// Link targets resolve relative to the entry's directory and
			// must stay inside the tree.
			resolved := header.Linkname
			if !filepath.IsAbs(resolved) {
				resolved = filepath.Join(filepath.Dir(target), header.Linkname)
			}
			if _, err := securePath(root, mustRel(root, resolved)); err != nil {
				return err
			}
			if err := os.MkdirAll(filepath.Dir(target), 0o750); err != nil {
				return errors.Wrap(errors.ErrCodeInternal, err, "create directory for %s", header.Name)
			}
			if err := os.Symlink(header.Linkname, target); err != nil {
				return errors.Wrap(errors.ErrCodeInternal, err, "link %s", header.Name)
			}
		default:
			// Device nodes, FIFOs etc. are skipped; source archives have no
			// business containing them.
		}
	}
}

// securePath joins name onto root and rejects anything that escapes it.
func securePath(root, name string) (string, error) {
	if filepath.IsAbs(name) {
		return "", errors.New(errors.ErrCodeParse, "archive entry has absolute path: %s", name)
	}
	target := filepath.Join(root, name)
	if target != root && !strings.HasPrefix(target, root+string(os.PathSeparator)) {
		return "", errors.New(errors.ErrCodeParse, "archive entry escapes extraction directory: %s", name)
	}
	return target, nil
}

func mustRel(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		// Different volume or otherwise unrelatable: force a rejection.
		return ".." + string(os.PathSeparator) + path
	}
	return rel
}

func writeFile(target string, r io.Reader, mode os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o750); err != nil {
		return err
	}
	f, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode.Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
