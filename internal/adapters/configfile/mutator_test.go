package configfile

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanshika-srivastava/coretest/internal/domain"
)

const sampleConfig = `# core config
core_config_version: 0

# port: 3567
host: "localhost"
disable_telemetry: false
# access_token_validity: 3600
refresh_token_validity: 144000
`

func writeConfig(t *testing.T, content string) (*Mutator, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return NewMutator(path), path
}

func readConfig(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestSetValue(t *testing.T) {
	tests := []struct {
		name    string
		content string
		key     string
		value   string
		want    string
	}{
		{
			name:    "commented line becomes active in place",
			content: "a: 1\n# foo: baz\nb: 2\n",
			key:     "foo",
			value:   "bar",
			want:    "a: 1\nfoo: bar\nb: 2\n",
		},
		{
			name:    "active line is replaced",
			content: "foo: old\n",
			key:     "foo",
			value:   "new",
			want:    "foo: new\n",
		},
		{
			name:    "bare commented key",
			content: "# foo:\nnext: 1\n",
			key:     "foo",
			value:   "bar",
			want:    "foo: bar\nnext: 1\n",
		},
		{
			name:    "absent key is appended",
			content: "a: 1\n",
			key:     "foo",
			value:   "bar",
			want:    "a: 1\nfoo: bar\n",
		},
		{
			name:    "absent key appended after unterminated last line",
			content: "a: 1",
			key:     "foo",
			value:   "bar",
			want:    "a: 1\nfoo: bar\n",
		},
		{
			name:    "last line without terminator",
			content: "a: 1\nfoo: old",
			key:     "foo",
			value:   "new",
			want:    "a: 1\nfoo: new",
		},
		{
			name:    "crlf line endings are preserved",
			content: "a: 1\r\n# foo: baz\r\nb: 2\r\n",
			key:     "foo",
			value:   "bar",
			want:    "a: 1\r\nfoo: bar\r\nb: 2\r\n",
		},
		{
			name:    "longer key sharing a prefix is untouched",
			content: "foobar: 1\nfoo: 2\n",
			key:     "foo",
			value:   "3",
			want:    "foobar: 1\nfoo: 3\n",
		},
		{
			name:    "key embedded mid-line is untouched",
			content: "barfoo: 1\nfoo: 2\n",
			key:     "foo",
			value:   "3",
			want:    "barfoo: 1\nfoo: 3\n",
		},
		{
			name:    "regex metacharacters in key are literal",
			content: "axb: 1\na.b: 2\n",
			key:     "a.b",
			value:   "3",
			want:    "axb: 1\na.b: 3\n",
		},
		{
			name:    "dollar signs in value are literal",
			content: "foo: 1\n",
			key:     "foo",
			value:   "$1${0}",
			want:    "foo: $1${0}\n",
		},
		{
			name:    "colon without space is not the key's line",
			content: "foo:bar\n",
			key:     "foo",
			value:   "baz",
			want:    "foo:bar\nfoo: baz\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, path := writeConfig(t, tt.content)

			require.NoError(t, m.SetValue(tt.key, tt.value))

			assert.Equal(t, tt.want, readConfig(t, path))
		})
	}
}

func TestCommentOut(t *testing.T) {
	tests := []struct {
		name    string
		content string
		key     string
		want    string
	}{
		{
			name:    "active line",
			content: "a: 1\ndisable_telemetry: false\nb: 2\n",
			key:     "disable_telemetry",
			want:    "a: 1\n# disable_telemetry:\nb: 2\n",
		},
		{
			name:    "already commented with value",
			content: "# foo: bar\n",
			key:     "foo",
			want:    "# foo:\n",
		},
		{
			name:    "absent key is a no-op",
			content: "a: 1\n",
			key:     "foo",
			want:    "a: 1\n",
		},
		{
			name:    "next line is not joined",
			content: "foo: 1\nbar: 2",
			key:     "foo",
			want:    "# foo:\nbar: 2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, path := writeConfig(t, tt.content)

			require.NoError(t, m.CommentOut(tt.key))

			assert.Equal(t, tt.want, readConfig(t, path))
		})
	}
}

func TestSetValue_Idempotent(t *testing.T) {
	for _, content := range []string{
		"foo: 1\nbar: 2\n",
		"# foo: 1\nbar: 2\n",
		"bar: 2\n",
	} {
		m, path := writeConfig(t, content)

		require.NoError(t, m.SetValue("foo", "x"))
		once := readConfig(t, path)
		require.NoError(t, m.SetValue("foo", "x"))

		assert.Equal(t, once, readConfig(t, path), "content %q", content)
	}
}

func TestCommentOut_Idempotent(t *testing.T) {
	m, path := writeConfig(t, sampleConfig)

	require.NoError(t, m.CommentOut("host"))
	once := readConfig(t, path)
	require.NoError(t, m.CommentOut("host"))

	assert.Equal(t, once, readConfig(t, path))
}

func TestCommentOutThenSetValue_RoundTrip(t *testing.T) {
	for _, key := range []string{"port", "host", "missing_key"} {
		m, path := writeConfig(t, sampleConfig)

		require.NoError(t, m.CommentOut(key))
		require.NoError(t, m.SetValue(key, "v"))

		value, state, err := m.Lookup(key)
		require.NoError(t, err)
		assert.Equal(t, Active, state, key)
		assert.Equal(t, "v", value, key)
		assert.Contains(t, readConfig(t, path), key+": v\n")
	}
}

func TestSetValue_DoesNotTouchOtherLines(t *testing.T) {
	m, path := writeConfig(t, sampleConfig)
	before := strings.Split(sampleConfig, "\n")

	require.NoError(t, m.SetValue("port", "9000"))

	after := strings.Split(readConfig(t, path), "\n")
	require.Len(t, after, len(before))
	for i := range before {
		if before[i] == "# port: 3567" {
			assert.Equal(t, "port: 9000", after[i])
			continue
		}
		assert.Equal(t, before[i], after[i], "line %d", i)
	}
}

func TestLookup(t *testing.T) {
	m, _ := writeConfig(t, sampleConfig)

	value, state, err := m.Lookup("host")
	require.NoError(t, err)
	assert.Equal(t, Active, state)
	assert.Equal(t, `"localhost"`, value)

	value, state, err = m.Lookup("port")
	require.NoError(t, err)
	assert.Equal(t, Commented, state)
	assert.Equal(t, "3567", value)

	_, state, err = m.Lookup("nope")
	require.NoError(t, err)
	assert.Equal(t, Absent, state)
	assert.Equal(t, "absent", state.String())
}

func TestInvalidKeyAndValue(t *testing.T) {
	m, path := writeConfig(t, sampleConfig)

	assert.ErrorIs(t, m.SetValue("", "x"), domain.ErrInvalidKey)
	assert.ErrorIs(t, m.CommentOut("a\nb"), domain.ErrInvalidKey)
	assert.ErrorIs(t, m.SetValue("host", "two\nlines"), domain.ErrInvalidValue)
	assert.Equal(t, sampleConfig, readConfig(t, path))
}

func TestMissingFilePropagatesIOError(t *testing.T) {
	m := NewMutator(filepath.Join(t.TempDir(), "absent.yaml"))

	err := m.SetValue("foo", "bar")
	assert.ErrorIs(t, err, fs.ErrNotExist)

	err = m.CommentOut("foo")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestWriteLeavesNoTempFilesAndKeepsMode(t *testing.T) {
	m, path := writeConfig(t, sampleConfig)
	require.NoError(t, os.Chmod(path, 0600))

	require.NoError(t, m.SetValue("port", "1"))
	require.NoError(t, m.CommentOut("host"))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "config.yaml", entries[0].Name())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, fs.FileMode(0600), info.Mode().Perm())
}

func TestCopyFrom(t *testing.T) {
	dir := t.TempDir()
	template := filepath.Join(dir, "template.yaml")
	require.NoError(t, os.WriteFile(template, []byte(sampleConfig), 0644))
	live := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(live, []byte("stale: true\n"), 0644))

	m := NewMutator(live)
	require.NoError(t, m.CopyFrom(template))

	assert.Equal(t, sampleConfig, readConfig(t, live))
	assert.Equal(t, live, m.Path())
}

func TestCopyFrom_MissingTemplate(t *testing.T) {
	m := NewMutator(filepath.Join(t.TempDir(), "config.yaml"))

	err := m.CopyFrom(filepath.Join(t.TempDir(), "missing.yaml"))

	assert.ErrorIs(t, err, fs.ErrNotExist)
}
