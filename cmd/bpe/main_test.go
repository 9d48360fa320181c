package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/axiomhq/bpe"
)

func execute(t *testing.T, stdout, stderr io.Writer, args ...string) error {
	t.Helper()
	cmd := newCommand(stdout, stderr)
	cmd.SetArgs(args)
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	return cmd.Execute()
}

func writeTemp(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

var sample = []byte(strings.Repeat("GET /api/v1/users HTTP/1.1 200\n", 20))

func TestCompressDecompressFiles(t *testing.T) {
	require := require.New(t)
	dir := t.TempDir()

	var paths []string
	for _, name := range []string{"a.log", "b.log", "c.log"} {
		path := filepath.Join(dir, name)
		require.NoError(os.WriteFile(path, append([]byte(name), sample...), 0o644))
		paths = append(paths, path)
	}

	require.NoError(execute(t, io.Discard, io.Discard, append([]string{"compress", "-c", "2"}, paths...)...))
	for _, path := range paths {
		comp, err := os.ReadFile(path + ".bpe")
		require.NoError(err)
		orig, err := os.ReadFile(path)
		require.NoError(err)
		require.Less(len(comp), len(orig))
		require.NoError(os.Remove(path))
	}

	compressed := make([]string, len(paths))
	for i, path := range paths {
		compressed[i] = path + ".bpe"
	}
	require.NoError(execute(t, io.Discard, io.Discard, append([]string{"decompress"}, compressed...)...))
	for _, path := range paths {
		got, err := os.ReadFile(path)
		require.NoError(err)
		require.Equal(append([]byte(filepath.Base(path)), sample...), got)
	}
}

func TestCompressStdout(t *testing.T) {
	path := writeTemp(t, "in.txt", []byte("abababab"))

	var stdout bytes.Buffer
	require.NoError(t, execute(t, &stdout, io.Discard, "compress", "--stdout", path))
	require.Equal(t, []byte{bpe.Sentinel, 0, 'a', 'b', 0, 0, 0}, stdout.Bytes())
	require.NoFileExists(t, path+".bpe")
}

func TestCompressRefusesOverwrite(t *testing.T) {
	path := writeTemp(t, "in.txt", sample)
	require.NoError(t, os.WriteFile(path+".bpe", []byte("keep"), 0o644))

	err := execute(t, io.Discard, io.Discard, "compress", path)
	require.ErrorIs(t, err, os.ErrExist)

	require.NoError(t, execute(t, io.Discard, io.Discard, "compress", "--force", path))
	got, err := os.ReadFile(path + ".bpe")
	require.NoError(t, err)
	require.NotEqual(t, []byte("keep"), got)
}

func TestCompressRejectsSentinel(t *testing.T) {
	path := writeTemp(t, "bin.dat", []byte{1, 2, 255, 3})
	err := execute(t, io.Discard, io.Discard, "compress", path)
	require.ErrorIs(t, err, bpe.ErrInvalidInput)
	require.NoFileExists(t, path+".bpe")
}

func TestDecompressUnknownSuffix(t *testing.T) {
	path := writeTemp(t, "in.txt", sample)
	err := execute(t, io.Discard, io.Discard, "decompress", path)
	require.ErrorIs(t, err, errUnknownSuffix)
}

func TestDecompressTruncated(t *testing.T) {
	path := writeTemp(t, "in.txt.bpe", []byte{'x', bpe.Sentinel, 0})
	err := execute(t, io.Discard, io.Discard, "decompress", path)
	require.ErrorIs(t, err, bpe.ErrTruncatedInput)
}

func TestSuffixFromEnv(t *testing.T) {
	t.Setenv("BPE_SUFFIX", ".pairs")
	path := writeTemp(t, "in.txt", sample)
	require.NoError(t, execute(t, io.Discard, io.Discard, "compress", path))
	require.FileExists(t, path+".pairs")
}

func TestConfigFile(t *testing.T) {
	config := writeTemp(t, "config.yaml", []byte("suffix: .zz\nlog-level: warn\n"))
	path := writeTemp(t, "in.txt", sample)
	require.NoError(t, execute(t, io.Discard, io.Discard, "compress", "--config-file", config, path))
	require.FileExists(t, path+".zz")
}

func TestInvalidConfig(t *testing.T) {
	path := writeTemp(t, "in.txt", sample)
	err := execute(t, io.Discard, io.Discard, "compress", "-c", "0", path)
	require.ErrorIs(t, err, errInvalidConcurrency)

	err = execute(t, io.Discard, io.Discard, "compress", "--log-level", "loud", path)
	require.Error(t, err)
}

func TestMaxSize(t *testing.T) {
	path := writeTemp(t, "in.txt", sample)
	err := execute(t, io.Discard, io.Discard, "compress", "--max-size", "10", path)
	require.ErrorIs(t, err, errFileTooLarge)
}

func TestInspect(t *testing.T) {
	path := writeTemp(t, "in.txt", []byte("ababababcdcdcdcd"))
	var stdout bytes.Buffer
	require.NoError(t, execute(t, &stdout, io.Discard, "inspect", path))
	out := stdout.String()
	require.True(t, strings.HasPrefix(out, path+": input=16 encoded=14"), out)
	require.Contains(t, out, `slot   1 <- "cd"`)
}

func TestBench(t *testing.T) {
	text := writeTemp(t, "in.txt", sample)
	binary := writeTemp(t, "bin.dat", []byte{0, 255, 0, 255})

	var stdout bytes.Buffer
	require.NoError(t, execute(t, &stdout, io.Discard, "bench", text, binary))
	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	require.Len(t, lines, 2)
	require.Contains(t, lines[0], "bpe+zstd=")
	require.Contains(t, lines[1], "bpe=n/a")
}

func TestMetricsSummary(t *testing.T) {
	path := writeTemp(t, "in.txt", sample)
	var stderr bytes.Buffer
	require.NoError(t, execute(t, io.Discard, &stderr, "compress", "--metrics", path))
	require.Contains(t, stderr.String(), "bpe_compress_in_bytes")
	require.Contains(t, stderr.String(), "compressed")
}
