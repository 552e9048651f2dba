package bundleaccess

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"github.com/plugworks/repofs/pkg/repo"
)

func newTestBundle() fstest.MapFS {
	return fstest.MapFS{
		"resources/dashboard.html": {Data: []byte("<html/>")},
		"resources/style.css":      {Data: []byte("body {}")},
		"plugin.xml":               {Data: []byte("<plugin/>")},
	}
}

func TestBundleAccess_Read(t *testing.T) {
	access := NewBundleAccess(newTestBundle(), "")

	data, err := access.ReadFile("plugin.xml")
	require.NoError(t, err)
	require.Equal(t, "<plugin/>", string(data))

	data, err = access.ReadFile("/resources/dashboard.html")
	require.NoError(t, err)
	require.Equal(t, "<html/>", string(data))

	_, err = access.ReadFile("missing.xml")
	require.ErrorIs(t, err, repo.ErrNotFound)
}

func TestBundleAccess_Exists(t *testing.T) {
	access := NewBundleAccess(newTestBundle(), "")

	require.True(t, access.FileExists("resources/style.css"))
	require.True(t, access.FileExists("resources"))
	require.False(t, access.FileExists("resources/missing.css"))
}

func TestBundleAccess_List(t *testing.T) {
	access := NewBundleAccess(newTestBundle(), "")

	names, err := access.ListFiles("resources")
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"dashboard.html", "style.css"}, names)

	_, err = access.ListFiles("no-such-dir")
	require.ErrorIs(t, err, repo.ErrNotFound)
}

func TestBundleAccess_BasePath(t *testing.T) {
	access := NewBundleAccess(newTestBundle(), "resources")

	data, err := access.ReadFile("style.css")
	require.NoError(t, err)
	require.Equal(t, "body {}", string(data))

	require.False(t, access.FileExists("plugin.xml"))
}

func TestBundleAccess_RejectsEscapingPaths(t *testing.T) {
	access := NewBundleAccess(newTestBundle(), "")

	_, err := access.ReadFile("../outside.txt")
	require.ErrorIs(t, err, repo.ErrAccessDenied)

	_, err = access.ListFiles("../..")
	require.ErrorIs(t, err, repo.ErrAccessDenied)

	require.False(t, access.FileExists("../outside.txt"))
}
