package env

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEnvFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func readEnvFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestPatchContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
		key     string
		value   string
		want    string
		action  Action
	}{
		{
			name:    "update existing",
			content: "FOO=1\nBAR=2\n",
			key:     "FOO",
			value:   "99",
			want:    "FOO=99\nBAR=2\n",
			action:  Updated,
		},
		{
			name:    "append missing",
			content: "FOO=1\nBAR=2\n",
			key:     "BAZ",
			value:   "x",
			want:    "FOO=1\nBAR=2\nBAZ=x\n",
			action:  Added,
		},
		{
			name:    "vertical tab before equals is not an assignment",
			content: "FOO\v=1\n",
			key:     "FOO",
			value:   "2",
			want:    "FOO\v=1\nFOO=2\n",
			action:  Added,
		},
		{
			name:    "preserve leading whitespace and spacing before equals",
			content: "A=1\n  FOO = old\nB=2\n",
			key:     "FOO",
			value:   "new_value",
			want:    "A=1\n  FOO =new_value\nB=2\n",
			action:  Updated,
		},
		{
			name:    "tab indentation",
			content: "\tFOO=old\n",
			key:     "FOO",
			value:   "new",
			want:    "\tFOO=new\n",
			action:  Updated,
		},
		{
			name:    "last line without newline",
			content: "BAR=2\nFOO=1",
			key:     "FOO",
			value:   "3",
			want:    "BAR=2\nFOO=3",
			action:  Updated,
		},
		{
			name:    "crlf line endings kept",
			content: "FOO=1\r\nBAR=2\r\n",
			key:     "FOO",
			value:   "99",
			want:    "FOO=99\r\nBAR=2\r\n",
			action:  Updated,
		},
		{
			name:    "only first duplicate updated",
			content: "FOO=1\nFOO=2\n",
			key:     "FOO",
			value:   "9",
			want:    "FOO=9\nFOO=2\n",
			action:  Updated,
		},
		{
			name:    "prefix of a longer key is not a match",
			content: "FOOBAR=1\nFOO_X=2\n",
			key:     "FOO",
			value:   "3",
			want:    "FOOBAR=1\nFOO_X=2\nFOO=3\n",
			action:  Added,
		},
		{
			name:    "commented out assignment is not a match",
			content: "# FOO=1\n",
			key:     "FOO",
			value:   "2",
			want:    "# FOO=1\nFOO=2\n",
			action:  Added,
		},
		{
			name:    "append trims trailing blank lines",
			content: "FOO=1\n\n\n  \n",
			key:     "BAR",
			value:   "2",
			want:    "FOO=1\nBAR=2\n",
			action:  Added,
		},
		{
			name:    "append to file without trailing newline",
			content: "FOO=1",
			key:     "BAR",
			value:   "2",
			want:    "FOO=1\nBAR=2\n",
			action:  Added,
		},
		{
			name:    "append to empty file",
			content: "",
			key:     "FOO",
			value:   "1",
			want:    "\nFOO=1\n",
			action:  Added,
		},
		{
			name:    "empty value",
			content: "FOO=1\n",
			key:     "FOO",
			value:   "",
			want:    "FOO=\n",
			action:  Updated,
		},
		{
			name:    "dollar sequences are literal",
			content: "FOO=1\n",
			key:     "FOO",
			value:   "$1${2}$$",
			want:    "FOO=$1${2}$$\n",
			action:  Updated,
		},
		{
			name:    "value with spaces and quotes",
			content: "REPO_ROOT=/old\n",
			key:     "REPO_ROOT",
			value:   `"/path/with space" # note`,
			want:    "REPO_ROOT=\"/path/with space\" # note\n",
			action:  Updated,
		},
		{
			name:    "comments and blank lines untouched",
			content: "# header\n\nFOO=1\n# trailer\n",
			key:     "FOO",
			value:   "2",
			want:    "# header\n\nFOO=2\n# trailer\n",
			action:  Updated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, action := PatchContent(tt.content, tt.key, tt.value)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.action, action)
		})
	}
}

func TestPatchContentLeavesOtherLines(t *testing.T) {
	content := "# settings\nA=1\n  B = 2\nC='three'\n\nD=\"four\" # c\n"
	original := strings.Split(content, "\n")

	for _, key := range []string{"A", "B", "C", "D"} {
		got, action := PatchContent(content, key, "new")
		require.Equal(t, Updated, action, key)

		lines := strings.Split(got, "\n")
		require.Len(t, lines, len(original), key)
		for i := range lines {
			if strings.Contains(original[i], key+" =") || strings.HasPrefix(strings.TrimSpace(original[i]), key+"=") {
				assert.True(t, strings.HasSuffix(lines[i], "=new"), "%s: %q", key, lines[i])
				continue
			}
			assert.Equal(t, original[i], lines[i], "%s: line %d", key, i)
		}
	}
}

func TestPatchContentIdempotent(t *testing.T) {
	contents := []string{
		"FOO=1\nBAR=2\n",
		"BAR=2\n",
		"BAR=2",
		"",
		"  FOO = x\r\n",
		"# only a comment\n\n\n",
	}

	for _, content := range contents {
		once, _ := PatchContent(content, "FOO", "value")
		twice, action := PatchContent(once, "FOO", "value")
		assert.Equal(t, once, twice, "content %q", content)
		assert.Equal(t, Updated, action, "content %q", content)
	}
}

// fuzzKey maps arbitrary bytes onto a valid key.
func fuzzKey(seed []byte) string {
	const first = "ABCDEFGHIJKLMNOPQRSTUVWXYZ_"
	const rest = first + "0123456789"
	if len(seed) == 0 {
		return "_"
	}
	b := []byte{first[int(seed[0])%len(first)]}
	for _, c := range seed[1:] {
		b = append(b, rest[int(c)%len(rest)])
	}
	return string(b)
}

func FuzzPatchContent(f *testing.F) {
	f.Add("FOO=1\nBAR=2\n", []byte("FOO"), "x")
	f.Add("  BAR = 2\r\nFOO=1\r\n", []byte("BAR"), "new value")
	f.Add("# comment\n\n", []byte("A1"), "")
	f.Add("", []byte("K"), "$1 $$")
	f.Add("FOO\v=1\n \t\n", []byte("FOO"), "2")

	f.Fuzz(func(t *testing.T, content string, seed []byte, value string) {
		if strings.ContainsAny(value, "\r\n") {
			t.Skip()
		}
		key := fuzzKey(seed)
		require.True(t, KeyIsValid(key), key)

		once, action := PatchContent(content, key, value)

		switch action {
		case Updated:
			loc := linePattern(key).FindStringIndex(content)
			require.NotNil(t, loc)
			patched := strings.Count(content[:loc[0]], "\n")

			before := strings.Split(content, "\n")
			after := strings.Split(once, "\n")
			require.Len(t, after, len(before))
			for i := range before {
				if i != patched {
					assert.Equal(t, before[i], after[i], "line %d", i)
				}
			}
		case Added:
			trimmed := strings.TrimRightFunc(content, unicode.IsSpace)
			assert.Equal(t, trimmed+"\n"+key+"="+value+"\n", once)
		default:
			t.Fatalf("unexpected action %v", action)
		}

		twice, again := PatchContent(once, key, value)
		assert.Equal(t, once, twice)
		assert.Equal(t, Updated, again)
	})
}

func TestPatch(t *testing.T) {
	ctx := context.Background()

	t.Run("update", func(t *testing.T) {
		path := writeEnvFile(t, "FOO=1\nBAR=2\n")

		res, err := Patch(ctx, path, "FOO", "99", Options{})
		require.NoError(t, err)
		assert.Equal(t, Updated, res.Action)
		assert.True(t, res.Written)
		assert.True(t, res.Changed())
		assert.True(t, filepath.IsAbs(res.Path))
		assert.Equal(t, "FOO=99\nBAR=2\n", readEnvFile(t, path))
	})

	t.Run("add", func(t *testing.T) {
		path := writeEnvFile(t, "FOO=1\nBAR=2\n")

		res, err := Patch(ctx, path, "BAZ", "x", Options{})
		require.NoError(t, err)
		assert.Equal(t, Added, res.Action)
		assert.Equal(t, "FOO=1\nBAR=2\nBAZ=x\n", readEnvFile(t, path))
	})

	t.Run("twice", func(t *testing.T) {
		path := writeEnvFile(t, "FOO=1\n")

		_, err := Patch(ctx, path, "BAZ", "x", Options{})
		require.NoError(t, err)
		first := readEnvFile(t, path)

		res, err := Patch(ctx, path, "BAZ", "x", Options{})
		require.NoError(t, err)
		assert.False(t, res.Changed())
		assert.Equal(t, first, readEnvFile(t, path))
	})

	t.Run("relative path", func(t *testing.T) {
		path := writeEnvFile(t, "FOO=1\n")
		t.Chdir(filepath.Dir(path))

		res, err := Patch(ctx, ".env", "FOO", "2", Options{})
		require.NoError(t, err)
		assert.Equal(t, path, res.Path)
		assert.Equal(t, "FOO=2\n", readEnvFile(t, path))
	})

	t.Run("dry run", func(t *testing.T) {
		path := writeEnvFile(t, "FOO=1\n")

		res, err := Patch(ctx, path, "FOO", "2", Options{DryRun: true})
		require.NoError(t, err)
		assert.False(t, res.Written)
		assert.Equal(t, "FOO=2\n", res.After)
		assert.Equal(t, "FOO=1\n", readEnvFile(t, path))
	})

	t.Run("backup", func(t *testing.T) {
		path := writeEnvFile(t, "FOO=1\n")

		res, err := Patch(ctx, path, "FOO", "2", Options{Backup: true})
		require.NoError(t, err)
		assert.Equal(t, path+".bak", res.BackupPath)
		assert.Equal(t, "FOO=1\n", readEnvFile(t, path+".bak"))
		assert.Equal(t, "FOO=2\n", readEnvFile(t, path))
	})

	t.Run("keeps permissions", func(t *testing.T) {
		path := writeEnvFile(t, "FOO=1\n")
		require.NoError(t, os.Chmod(path, 0600))

		_, err := Patch(ctx, path, "FOO", "2", Options{})
		require.NoError(t, err)

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
	})
}

func TestPatchMissingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")

	_, err := Patch(context.Background(), path, "FOO", "1", Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrFileNotFound))
	assert.Contains(t, err.Error(), "does not exist")

	var pe *PatchError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, path, pe.Path)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "no file should be created")
}

func TestPatchInvalidKeyTouchesNothing(t *testing.T) {
	for _, key := range []string{"1BAD", "bad-key", "", "FOO BAR", "FOO.BAR"} {
		t.Run(key, func(t *testing.T) {
			path := writeEnvFile(t, "FOO=1\n")
			info, err := os.Stat(path)
			require.NoError(t, err)

			_, err = Patch(context.Background(), path, key, "x", Options{Backup: true})
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidKey))

			after, err := os.Stat(path)
			require.NoError(t, err)
			assert.Equal(t, info.ModTime(), after.ModTime())
			assert.Equal(t, "FOO=1\n", readEnvFile(t, path))
			assert.NoFileExists(t, path+".bak")
		})
	}

	t.Run("missing file is not reached", func(t *testing.T) {
		_, err := Patch(context.Background(), filepath.Join(t.TempDir(), "nope"), "bad", "x", Options{})
		assert.True(t, errors.Is(err, ErrInvalidKey))
		assert.False(t, errors.Is(err, ErrFileNotFound))
	})
}

func TestPatchDirectoryIsIOFailure(t *testing.T) {
	dir := t.TempDir()

	_, err := Patch(context.Background(), dir, "FOO", "1", Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrIOFailure))
	assert.Contains(t, err.Error(), "Error processing")
}
