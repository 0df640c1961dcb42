package poller

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLister struct {
	zones []string
	err   error
	calls int
}

func (f *fakeLister) ListZones(context.Context) ([]string, error) {
	f.calls++
	return f.zones, f.err
}

func writeZonesFile(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "zones.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestResolveZones(t *testing.T) {
	ctx := context.Background()

	t.Run("StaticWins", func(t *testing.T) {
		lister := &fakeLister{zones: []string{"ROME"}}
		file := writeZonesFile(t, "zones: [OSLO]\n")

		zones, err := ResolveZones(ctx, lister, []string{"BERLIN", "BERLIN", "PARIS"}, file)
		require.NoError(t, err)
		assert.Equal(t, []string{"BERLIN", "PARIS"}, zones)
		assert.Zero(t, lister.calls)
	})

	t.Run("File", func(t *testing.T) {
		lister := &fakeLister{zones: []string{"ROME"}}
		file := writeZonesFile(t, "zones:\n  - OSLO\n  - \" VIENNA \"\n")

		zones, err := ResolveZones(ctx, lister, nil, file)
		require.NoError(t, err)
		assert.Equal(t, []string{"OSLO", "VIENNA"}, zones)
		assert.Zero(t, lister.calls)
	})

	t.Run("Discovery", func(t *testing.T) {
		lister := &fakeLister{zones: []string{"ROME", "MILAN"}}

		zones, err := ResolveZones(ctx, lister, nil, "")
		require.NoError(t, err)
		assert.Equal(t, []string{"ROME", "MILAN"}, zones)
		assert.Equal(t, 1, lister.calls)
	})

	t.Run("DiscoveryFails", func(t *testing.T) {
		_, err := ResolveZones(ctx, &fakeLister{err: errors.New("401")}, nil, "")
		assert.ErrorContains(t, err, "zone discovery failed")
	})

	t.Run("NothingFound", func(t *testing.T) {
		_, err := ResolveZones(ctx, &fakeLister{}, nil, "")
		assert.ErrorContains(t, err, "no zones to poll")
	})

	t.Run("NoSource", func(t *testing.T) {
		_, err := ResolveZones(ctx, nil, nil, "")
		assert.Error(t, err)
	})
}

func TestLoadZonesFile_Errors(t *testing.T) {
	_, err := LoadZonesFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read zones file")

	_, err = LoadZonesFile(writeZonesFile(t, "zones: [unclosed\n"))
	assert.ErrorContains(t, err, "failed to parse zones file")
}
