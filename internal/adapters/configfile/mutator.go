// Package configfile rewrites single keys of a flat "key: value" config file.
//
// A key's line is the line that starts with the key, optionally behind a
// "# " comment marker, followed by either a bare ":" or ": " and a value.
// Because both the active and the commented form match, SetValue and
// CommentOut are idempotent and can be applied in any order.
package configfile

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/vanshika-srivastava/coretest/internal/domain"
	"github.com/vanshika-srivastava/coretest/internal/logging"
	"github.com/vanshika-srivastava/coretest/internal/ports"
)

// LineState describes how a key currently appears in the file
type LineState int

const (
	Absent LineState = iota
	Active
	Commented
)

func (s LineState) String() string {
	switch s {
	case Active:
		return "active"
	case Commented:
		return "commented"
	default:
		return "absent"
	}
}

// Mutator rewrites keys of the config file at a fixed path
type Mutator struct {
	path string
}

// Compile-time interface verification
var _ ports.ConfigEditor = (*Mutator)(nil)

// NewMutator creates a Mutator for the file at path
func NewMutator(path string) *Mutator {
	return &Mutator{path: path}
}

// Path returns the file this mutator rewrites
func (m *Mutator) Path() string {
	return m.path
}

// SetValue makes the key's line read exactly "key: value".
// A key with no line at all is appended as the last line.
func (m *Mutator) SetValue(key, value string) error {
	re, err := keyPattern(key)
	if err != nil {
		return err
	}
	if strings.ContainsAny(value, "\r\n") {
		return fmt.Errorf("%w: %q", domain.ErrInvalidValue, value)
	}

	line := key + ": " + value
	logging.Logger.Debug("Setting config value", "path", m.path, "key", key, "value", value)

	return m.rewrite(func(content string) string {
		if re.MatchString(content) {
			return re.ReplaceAllString(content, literal(line)+"${1}")
		}
		logging.Logger.Debug("Config key absent, appending", "path", m.path, "key", key)
		return appendLine(content, line)
	})
}

// CommentOut makes the key's line read "# key:". An absent key is left absent.
func (m *Mutator) CommentOut(key string) error {
	re, err := keyPattern(key)
	if err != nil {
		return err
	}

	logging.Logger.Debug("Commenting out config key", "path", m.path, "key", key)

	return m.rewrite(func(content string) string {
		return re.ReplaceAllString(content, literal("# "+key+":")+"${1}")
	})
}

// Lookup reports the key's current value and whether its line is active or commented.
// Only the first matching line is considered.
func (m *Mutator) Lookup(key string) (string, LineState, error) {
	if err := validateKey(key); err != nil {
		return "", Absent, err
	}

	data, err := os.ReadFile(m.path)
	if err != nil {
		return "", Absent, fmt.Errorf("failed to read config %s: %w", m.path, err)
	}

	re := regexp.MustCompile(`(?m)^(#[ \t])?` + regexp.QuoteMeta(key) + `(?::|:[ \t]([^\r\n]*))\r?$`)
	match := re.FindStringSubmatch(string(data))
	if match == nil {
		return "", Absent, nil
	}
	if match[1] != "" {
		return match[2], Commented, nil
	}
	return match[2], Active, nil
}

// CopyFrom overwrites the file with the content of templatePath
func (m *Mutator) CopyFrom(templatePath string) error {
	data, err := os.ReadFile(templatePath)
	if err != nil {
		return fmt.Errorf("failed to read template %s: %w", templatePath, err)
	}

	mode := fs.FileMode(0644)
	if info, err := os.Stat(templatePath); err == nil {
		mode = info.Mode().Perm()
	}

	logging.Logger.Info("Copying template config", "template", templatePath, "path", m.path)
	return writeAtomic(m.path, data, mode)
}

// rewrite applies fn to the whole file content and writes the result back
func (m *Mutator) rewrite(fn func(content string) string) error {
	data, err := os.ReadFile(m.path)
	if err != nil {
		return fmt.Errorf("failed to read config %s: %w", m.path, err)
	}

	original := string(data)
	updated := fn(original)
	if updated == original {
		return nil
	}

	return writeAtomic(m.path, []byte(updated), 0644)
}

// keyPattern matches the key's line in either form. Group 1 keeps a trailing
// carriage return so CRLF files stay CRLF.
func keyPattern(key string) (*regexp.Regexp, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}
	return regexp.MustCompile(`(?m)^(?:#[ \t])?` + regexp.QuoteMeta(key) + `(?::|:[ \t][^\r\n]*)(\r?)$`), nil
}

func validateKey(key string) error {
	if key == "" || strings.ContainsAny(key, "\r\n") {
		return fmt.Errorf("%w: %q", domain.ErrInvalidKey, key)
	}
	return nil
}

// literal escapes s for use as a regexp replacement template
func literal(s string) string {
	return strings.ReplaceAll(s, "$", "$$")
}

func appendLine(content, line string) string {
	if content != "" && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	return content + line + "\n"
}

// writeAtomic writes data to a temp file next to path and renames it over path.
// An existing file keeps its permissions; a new one gets mode.
func writeAtomic(path string, data []byte, mode fs.FileMode) error {
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to write temporary file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to sync temporary file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to close temporary file: %w", err)
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to set permissions on temporary file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	return nil
}
