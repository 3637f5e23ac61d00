package ur_arm

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testArchive(t *testing.T) *Archive {
	t.Helper()

	archive, err := OpenArchive(filepath.Join(t.TempDir(), "programs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { archive.Close() })
	return archive
}

func TestArchiveRoundTrip(t *testing.T) {
	archive := testArchive(t)

	program := "def execute_circle_pattern():\n  movej([0.2400, -1.5700, 1.5700, 0.0000, 1.5700, 0.0000], a=1.2, v=0.6, r=0)\nend\n\nexecute_circle_pattern()\n"
	id, err := archive.SaveProgram("circle", `{"scale":0.3}`, program)
	require.NoError(t, err)
	assert.Greater(t, id, int64(0))

	got, err := archive.Program(id)
	require.NoError(t, err)
	assert.Equal(t, "circle", got.Pattern)
	assert.Equal(t, `{"scale":0.3}`, got.Params)
	assert.Equal(t, program, got.Program)
	assert.NotEmpty(t, got.CreatedAt)
}

func TestArchiveMissingProgram(t *testing.T) {
	archive := testArchive(t)

	_, err := archive.Program(9999)
	require.Error(t, err)
}

func TestArchiveRecentNewestFirst(t *testing.T) {
	archive := testArchive(t)

	for _, pattern := range []string{"circle", "wave", "lorenz"} {
		_, err := archive.SaveProgram(pattern, "{}", "stopj(2)\n")
		require.NoError(t, err)
	}

	recent, err := archive.Recent(2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "lorenz", recent[0].Pattern)
	assert.Equal(t, "wave", recent[1].Pattern)
}

func TestArchiveSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "programs.db")

	archive, err := OpenArchive(path)
	require.NoError(t, err)
	id, err := archive.SaveProgram("heart", "{}", "stopj(2)\n")
	require.NoError(t, err)
	require.NoError(t, archive.Close())

	reopened, err := OpenArchive(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Program(id)
	require.NoError(t, err)
	assert.Equal(t, "heart", got.Pattern)
}
