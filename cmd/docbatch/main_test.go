package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testReviews = "u1\t\tp1\t\t8\t\tgreat movie <sssss> loved it\n" +
	"u2\t\tp1\t\t2\t\tboring <sssss> too long and slow\n" +
	"u3\t\tp2\t\t10\t\tbest film of the year\n" +
	"u4\t\tp2\t\t5\t\tok <sssss> fine <sssss> nothing more\n" +
	"u5\t\tp3\t\t1\t\t<sssss>\n"

func writeReviews(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "reviews.txt.ss")
	require.NoError(t, os.WriteFile(path, []byte(testReviews), 0644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return executeWithConfig(t, filepath.Join(t.TempDir(), "none.yaml"), args...)
}

func executeWithConfig(t *testing.T, configFile string, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append(args, "--config", configFile))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestInspect(t *testing.T) {
	data := writeReviews(t)

	out, err := execute(t, "inspect",
		"--data-path", data,
		"--batch-size", "2",
		"--num-epochs", "2",
		"--validation-split", "0.2",
		"--embedding-dim", "4")
	require.NoError(t, err)

	// Five documents: one validation index, four training indices of which
	// one is empty and skipped.
	assert.Contains(t, out, "epochs=2 batches=6 examples=8 errors=0")
}

func TestSplitAndReuse(t *testing.T) {
	data := writeReviews(t)
	splitPath := filepath.Join(t.TempDir(), "split.yaml")

	out, err := execute(t, "split",
		"--data-path", data,
		"--validation-split", "0.4",
		"--shuffle",
		"--random-seed", "3",
		"--out", splitPath)
	require.NoError(t, err)
	assert.Contains(t, out, "train=3 valid=2")

	s, err := readSplit(splitPath)
	require.NoError(t, err)
	assert.Len(t, s.Train, 3)
	assert.Len(t, s.Valid, 2)
	assert.True(t, s.Shuffle)
	assert.ElementsMatch(t, []int{0, 1, 2, 3, 4}, append(append([]int(nil), s.Train...), s.Valid...))

	raw, err := os.ReadFile(splitPath)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(raw), "train: ["), "indices are written in flow style")

	out, err = execute(t, "inspect",
		"--data-path", data,
		"--batch-size", "10",
		"--num-epochs", "1",
		"--embedding-dim", "0",
		"--split-file", splitPath)
	require.NoError(t, err)
	assert.Contains(t, out, "epochs=1 batches=2")
}

func TestInspect_InvalidConfig(t *testing.T) {
	_, err := execute(t, "inspect", "--data-path", writeReviews(t), "--batch-size", "-1", "--split-file", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "batch size must be positive")
}

func TestInspect_MissingData(t *testing.T) {
	_, err := execute(t, "inspect",
		"--data-path", filepath.Join(t.TempDir(), "absent.ss"),
		"--batch-size", "2",
		"--split-file", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load dataset")
}

func TestInspect_SpotCheck(t *testing.T) {
	t.Cleanup(func() {
		require.NoError(t, inspectCmd.Flags().Set("spot-check", "false"))
	})

	out, err := execute(t, "inspect",
		"--data-path", writeReviews(t),
		"--batch-size", "2",
		"--num-epochs", "1",
		"--validation-split", "0.2",
		"--shuffle=false",
		"--embedding-dim", "4",
		"--split-file", "",
		"--spot-check")
	require.NoError(t, err)

	// Two training batches, each followed by two draws of the single
	// validation index, then the validation batch itself.
	assert.Contains(t, out, "epochs=1 batches=5 examples=8 errors=0")
	assert.Contains(t, out, "spot_checks=2")
}

func TestInspect_BatchWithoutWordsIsNotEmbedded(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reviews.txt.ss")
	reviews := "u5\t\tp3\t\t1\t\t<sssss>\n" +
		"u1\t\tp1\t\t8\t\tgreat movie <sssss> loved it\n" +
		"u2\t\tp1\t\t2\t\tboring <sssss> too long and slow\n" +
		"u3\t\tp2\t\t10\t\tbest film of the year\n" +
		"u4\t\tp2\t\t5\t\tok <sssss> fine <sssss> nothing more\n"
	require.NoError(t, os.WriteFile(path, []byte(reviews), 0644))

	configFile := filepath.Join(t.TempDir(), "docbatch.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("loader:\n  skip_empty: false\n"), 0644))

	out, err := executeWithConfig(t, configFile, "inspect",
		"--data-path", path,
		"--batch-size", "2",
		"--num-epochs", "1",
		"--validation-split", "0.2",
		"--shuffle=false",
		"--embedding-dim", "4",
		"--split-file", "",
		"--spot-check=false")
	require.NoError(t, err)

	// The empty review is the only validation index, so its batch is [1, 0, 0].
	assert.Contains(t, out, "epochs=1 batches=3 examples=5 errors=0")
}

func TestReducedDatasetFlag(t *testing.T) {
	t.Cleanup(func() {
		require.NoError(t, rootCmd.PersistentFlags().Set("reduced-dataset", "1"))
	})

	flag := rootCmd.PersistentFlags().Lookup("reduced-dataset")
	require.NotNil(t, flag)
	assert.Equal(t, "m", flag.Shorthand)
	assert.NotContains(t, flag.Usage, "class")

	out, err := execute(t, "split",
		"--data-path", writeReviews(t),
		"--validation-split", "0.5",
		"--shuffle=false",
		"--reduced-dataset", "0.8",
		"--out", filepath.Join(t.TempDir(), "split.yaml"))
	require.NoError(t, err)
	assert.Contains(t, out, "train=2 valid=2")
}
