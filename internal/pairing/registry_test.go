package pairing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestRegistry(ttl time.Duration) (*registry, *time.Time) {
	current := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	r := &registry{
		codes: make(map[string]entry),
		ttl:   ttl,
		now:   func() time.Time { return current },
	}
	return r, &current
}

func TestRegistry_CreateAndResolve(t *testing.T) {
	r, _ := newTestRegistry(time.Hour)

	code, err := r.Create("proj_1712345678")
	require.NoError(t, err)
	require.Len(t, code, 6)

	projectID, ok := r.Resolve(code)
	require.True(t, ok)
	require.Equal(t, "proj_1712345678", projectID)
}

func TestRegistry_ResolveUnknownCode(t *testing.T) {
	r, _ := newTestRegistry(time.Hour)

	_, ok := r.Resolve("000000")
	require.False(t, ok)
}

func TestRegistry_CodeExpires(t *testing.T) {
	r, now := newTestRegistry(time.Hour)

	code, err := r.Create("proj_1712345678")
	require.NoError(t, err)

	*now = now.Add(time.Hour + time.Second)

	_, ok := r.Resolve(code)
	require.False(t, ok)

	// The expired entry is gone, not just hidden.
	require.NotContains(t, r.codes, code)
}

func TestRegistry_CreateEvictsExpired(t *testing.T) {
	r, now := newTestRegistry(time.Hour)

	stale, err := r.Create("proj_old")
	require.NoError(t, err)

	*now = now.Add(2 * time.Hour)

	_, err = r.Create("proj_new")
	require.NoError(t, err)

	require.NotContains(t, r.codes, stale)
}

func TestRegistry_MultipleCodesPerProject(t *testing.T) {
	r, _ := newTestRegistry(time.Hour)

	first, err := r.Create("proj_a")
	require.NoError(t, err)
	second, err := r.Create("proj_a")
	require.NoError(t, err)

	if first == second {
		// Random collision overwrites; both resolve to the same project
		// either way.
		t.Logf("collided codes, single entry remains")
	}

	projectID, ok := r.Resolve(first)
	require.True(t, ok)
	require.Equal(t, "proj_a", projectID)
}
