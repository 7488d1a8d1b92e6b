package storage

import (
	"errors"
	"path"
	"strings"

	"github.com/google/uuid"
)

// Prefix is the directory, relative to the public base, holding uploads.
const Prefix = "uploads"

var (
	ErrEmptyFilename = errors.New("empty filename")
	ErrFileType      = errors.New("file type not allowed")
)

var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

// sanitize keeps ASCII letters, digits, dots, dashes and underscores of the
// base name; whitespace becomes an underscore.
func sanitize(filename string) string {
	name := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ' || r == '\t':
			b.WriteByte('_')
		}
	}
	return strings.TrimLeft(b.String(), "._")
}

// objectPath validates an upload name and returns uploads/<uuid-hex>_<name>.
func objectPath(filename string) (string, error) {
	if strings.TrimSpace(filename) == "" {
		return "", ErrEmptyFilename
	}
	name := sanitize(filename)
	if !allowedExtensions[strings.ToLower(path.Ext(name))] {
		return "", ErrFileType
	}
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return Prefix + "/" + id + "_" + name, nil
}

// ownedName returns the file name of a stored path, rejecting anything outside uploads/.
func ownedName(p string) (string, bool) {
	clean := path.Clean(strings.TrimPrefix(p, "/"))
	dir, name := path.Split(clean)
	if dir != Prefix+"/" || name == "" || name == "." || name == ".." {
		return "", false
	}
	return name, true
}
