package fileservice

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type record struct {
	Label string
	Value int
}

func recordWriter(dir string, entity interface{}) error {
	r := entity.(record)
	return os.WriteFile(filepath.Join(dir, "data"), []byte(r.Label), 0o644)
}

func recordReader(dir string, version int) (interface{}, error) {
	b, err := os.ReadFile(filepath.Join(dir, "data"))
	if err != nil {
		return nil, err
	}
	return record{Label: string(b), Value: version}, nil
}

func TestCreateRejectsOverlongFields(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	_, err := Create(base, strings.Repeat("n", maxNetworkLen), "eth")
	require.Error(t, err)
	var fsErr *Error
	require.True(t, errors.As(err, &fsErr))
	require.Equal(t, ErrNetworkTooLong, fsErr.Kind)

	_, err = Create(base, "mainnet", strings.Repeat("c", maxCurrencyLen))
	require.True(t, errors.As(err, &fsErr))
	require.Equal(t, ErrCurrencyTooLong, fsErr.Kind)

	_, err = Create(strings.Repeat("b", maxBaseLen), "mainnet", "eth")
	require.True(t, errors.As(err, &fsErr))
	require.Equal(t, ErrBaseTooLong, fsErr.Kind)
}

func TestCreateMakesCurrencyDirectory(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	_, err := Create(base, "mainnet", "eth")
	require.NoError(t, err)

	info, err := os.Stat(filepath.Join(base, "mainnet", "eth"))
	require.NoError(t, err)
	require.True(t, info.IsDir())
}

func TestDefineTypeRejectsOverlongNameAndCapsTable(t *testing.T) {
	t.Parallel()

	s, err := Create(t.TempDir(), "mainnet", "eth")
	require.NoError(t, err)

	err = s.DefineType(strings.Repeat("t", maxTypeNameLen+1), 1, recordReader, recordWriter)
	var fsErr *Error
	require.True(t, errors.As(err, &fsErr))
	require.Equal(t, ErrNameTooLong, fsErr.Kind)

	for i := 0; i < maxTypes; i++ {
		name := "type" + string(rune('a'+i))
		require.NoError(t, s.DefineType(name, 1, recordReader, recordWriter))
	}
	err = s.DefineType("onetoomany", 1, recordReader, recordWriter)
	require.True(t, errors.As(err, &fsErr))
	require.Equal(t, ErrTypeTableFull, fsErr.Kind)
}

func TestDefineCurrentVersionMatchesNameAndVersionTogether(t *testing.T) {
	t.Parallel()

	s, err := Create(t.TempDir(), "mainnet", "eth")
	require.NoError(t, err)
	require.NoError(t, s.DefineType("blocks", 1, recordReader, recordWriter))
	require.NoError(t, s.DefineType("peers", 1, recordReader, recordWriter))

	// Selecting "peers" at version 1 must not make "blocks" current,
	// even though they share a version number.
	require.NoError(t, s.DefineCurrentVersion("peers", 1))

	_, err = s.Load("blocks")
	var fsErr *Error
	require.True(t, errors.As(err, &fsErr))
	require.Equal(t, ErrNoCurrentVersion, fsErr.Kind)

	require.NoError(t, s.Save(record{Label: "p1"}, "peers"))
	got, err := s.Load("peers")
	require.NoError(t, err)
	require.Equal(t, record{Label: "p1", Value: 1}, got)
}

func TestDefineCurrentVersionRejectsUnknownPair(t *testing.T) {
	t.Parallel()

	s, err := Create(t.TempDir(), "mainnet", "eth")
	require.NoError(t, err)
	require.NoError(t, s.DefineType("blocks", 1, recordReader, recordWriter))

	err = s.DefineCurrentVersion("blocks", 2)
	var fsErr *Error
	require.True(t, errors.As(err, &fsErr))
	require.Equal(t, ErrTypeNotFound, fsErr.Kind)
}

func TestSaveLoadRoundTripsThroughRegisteredCodec(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	s, err := Create(base, "mainnet", "eth")
	require.NoError(t, err)
	require.NoError(t, s.DefineType("blocks", 3, recordReader, recordWriter))
	require.NoError(t, s.DefineCurrentVersion("blocks", 3))

	require.NoError(t, s.Save(record{Label: "block-data"}, "blocks"))

	written, err := os.ReadFile(filepath.Join(base, "mainnet", "eth", "blocks", "data"))
	require.NoError(t, err)
	require.Equal(t, "block-data", string(written))

	got, err := s.Load("blocks")
	require.NoError(t, err)
	require.Equal(t, record{Label: "block-data", Value: 3}, got)
}

func TestClearRemovesTypeDirectory(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	s, err := Create(base, "mainnet", "eth")
	require.NoError(t, err)
	require.NoError(t, s.DefineType("blocks", 1, recordReader, recordWriter))
	require.NoError(t, s.DefineCurrentVersion("blocks", 1))
	require.NoError(t, s.Save(record{Label: "x"}, "blocks"))

	require.NoError(t, s.Clear("blocks"))

	_, err = os.Stat(filepath.Join(base, "mainnet", "eth", "blocks"))
	require.True(t, os.IsNotExist(err))
}

func TestClearAllRemovesEmptyAncestorDirectories(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	s, err := Create(base, "mainnet", "eth")
	require.NoError(t, err)
	require.NoError(t, s.DefineType("blocks", 1, recordReader, recordWriter))
	require.NoError(t, s.DefineCurrentVersion("blocks", 1))
	require.NoError(t, s.Save(record{Label: "x"}, "blocks"))

	require.NoError(t, s.ClearAll())

	_, err = os.Stat(filepath.Join(base, "mainnet"))
	require.True(t, os.IsNotExist(err))
}

func TestSaveClearRoundTripsTypeDirectory(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	s, err := Create(base, "mainnet", "eth")
	require.NoError(t, err)
	require.NoError(t, s.DefineType("blocks", 1, recordReader, recordWriter))
	require.NoError(t, s.DefineCurrentVersion("blocks", 1))

	require.NoError(t, s.Save(record{Label: "block-0"}, "blocks"))
	_, err = os.Stat(filepath.Join(base, "mainnet", "eth", "blocks", "data"))
	require.NoError(t, err)

	require.NoError(t, s.Clear("blocks"))
	_, err = os.Stat(filepath.Join(base, "mainnet", "eth", "blocks"))
	require.True(t, os.IsNotExist(err))
}

// Two Service handles pointed at the same (network, currency, type)
// directory serialize Save calls through the shared per-type flock
// rather than racing each other.
func TestFileLockIsolationAcrossServiceInstances(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	s1, err := Create(base, "mainnet", "eth")
	require.NoError(t, err)
	require.NoError(t, s1.DefineType("blocks", 1, recordReader, recordWriter))
	require.NoError(t, s1.DefineCurrentVersion("blocks", 1))

	s2, err := Create(base, "mainnet", "eth")
	require.NoError(t, err)
	require.NoError(t, s2.DefineType("blocks", 1, recordReader, recordWriter))
	require.NoError(t, s2.DefineCurrentVersion("blocks", 1))

	done := make(chan error, 2)
	go func() { done <- s1.Save(record{Label: "from-s1"}, "blocks") }()
	go func() { done <- s2.Save(record{Label: "from-s2"}, "blocks") }()
	require.NoError(t, <-done)
	require.NoError(t, <-done)

	got, err := s1.Load("blocks")
	require.NoError(t, err)
	label := got.(record).Label
	require.True(t, label == "from-s1" || label == "from-s2")
}

func TestGetFreeStorageReportsNonZero(t *testing.T) {
	t.Parallel()

	s, err := Create(t.TempDir(), "mainnet", "eth")
	require.NoError(t, err)

	free, err := s.GetFreeStorage()
	require.NoError(t, err)
	require.Greater(t, free, uint64(0))
}
