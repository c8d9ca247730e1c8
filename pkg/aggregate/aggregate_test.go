package aggregate

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"codeagg/pkg/clipboard"
	"codeagg/pkg/manifest"
	"codeagg/pkg/selection"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeFile(t *testing.T, root, rel, content string) string {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestReadText_LossyDecode(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "bad.rs", "ok\xff\xfeend")

	text, err := ReadText(path)
	require.NoError(t, err)
	assert.Equal(t, "ok\uFFFD\uFFFDend", text)
}

func TestReadText_ValidUTF8Unchanged(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "ok.md", "héllo\r\nworld")

	text, err := ReadText(path)
	require.NoError(t, err)
	assert.Equal(t, "héllo\r\nworld", text)
}

func TestReadText_Missing(t *testing.T) {
	_, err := ReadText(filepath.Join(t.TempDir(), "nope"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestProcessSingleFile_Header(t *testing.T) {
	root := t.TempDir()
	path := writeFile(t, root, "src/main.rs", "fn main() {}")

	fc, err := ProcessSingleFile(path, root, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "src/main.rs", fc.Path)
	assert.Equal(t, "// src/main.rs\nfn main() {}\n\n", fc.Content)
}

func TestRender_ConcatenatesInOrderAndSkipsUnreadable(t *testing.T) {
	root := t.TempDir()
	b := writeFile(t, root, "b.rs", "B")
	a := writeFile(t, root, "a.rs", "A")

	out, err := Render(root, []string{b, filepath.Join(root, "gone.rs"), a}, nil)
	require.NoError(t, err)
	assert.Equal(t, "// b.rs\nB\n\n// a.rs\nA\n\n", out)
}

func TestRun_ManifestToStdoutAndClipboard(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/main.rs", "fn main() {}")
	writeFile(t, root, "src/ecs/light.rs", "struct Light;")
	writeFile(t, root, "target/debug/gen.rs", "generated")
	writeFile(t, root, manifest.DefaultName, "// ordering matters\nsrc:{ecs/light.rs, main.rs}\ntarget  // excluded\n")

	var stdout, status bytes.Buffer
	clip := &clipboard.Memory{}
	args := &Arguments{
		Directory:    root,
		ManifestName: manifest.DefaultName,
		Filter:       selection.DefaultFilter(),
		Stdout:       true,
		Clipboard:    true,
		Verbose:      true,
	}

	err := Run(args, Env{Stdout: &stdout, Status: &status, Clipboard: clip}, zap.NewNop())
	require.NoError(t, err)

	want := "// src/ecs/light.rs\nstruct Light;\n\n// src/main.rs\nfn main() {}\n\n"
	assert.Equal(t, want, stdout.String())
	assert.Equal(t, want, clip.Text)
	assert.Contains(t, status.String(), "Aggregated code copied to clipboard!")
}

func TestRun_OutputFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "README.md", "# hi")
	out := filepath.Join(t.TempDir(), "nested", "dir", "out.txt")

	args := &Arguments{
		Directory:    root,
		ManifestName: manifest.DefaultName,
		Filter:       selection.DefaultFilter(),
		Output:       out,
	}
	var status bytes.Buffer
	require.NoError(t, Run(args, Env{Status: &status}, nil))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "// README.md\n# hi\n\n", string(data))
	assert.Contains(t, status.String(), out)
}

func TestRun_ClipboardUnavailableIsNotFatal(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.py", "print(1)")

	var status bytes.Buffer
	args := &Arguments{
		Directory:    root,
		ManifestName: manifest.DefaultName,
		Filter:       selection.DefaultFilter(),
		Clipboard:    true,
	}
	clip := &clipboard.Memory{Err: clipboard.ErrUnavailable}

	require.NoError(t, Run(args, Env{Status: &status, Clipboard: clip}, zap.NewNop()))
	assert.Contains(t, status.String(), "Clipboard unavailable")
}

func TestRun_ClipboardFailurePropagates(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.py", "print(1)")

	args := &Arguments{
		Directory:    root,
		ManifestName: manifest.DefaultName,
		Filter:       selection.DefaultFilter(),
		Clipboard:    true,
	}
	boom := errors.New("boom")
	err := Run(args, Env{Clipboard: &clipboard.Memory{Err: boom}}, zap.NewNop())
	assert.ErrorIs(t, err, boom)
}

func TestRun_MissingRootFails(t *testing.T) {
	args := &Arguments{
		Directory:    filepath.Join(t.TempDir(), "missing"),
		ManifestName: manifest.DefaultName,
		Filter:       selection.DefaultFilter(),
	}
	err := Run(args, Env{}, zap.NewNop())
	assert.ErrorIs(t, err, selection.ErrRootNotFound)
}
