package uuid

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_IsVersion7(t *testing.T) {
	before := time.Now().Add(-time.Second)
	id := New()

	assert.True(t, IsValid(id))
	ts, err := Time(id)
	require.NoError(t, err)
	assert.WithinDuration(t, before.Add(time.Second), ts, 2*time.Second)
}

func TestNew_SortsByCreation(t *testing.T) {
	ids := make([]string, 50)
	for i := range ids {
		ids[i] = New()
	}
	assert.True(t, sort.StringsAreSorted(ids))
}

func TestParse(t *testing.T) {
	id, err := Parse("0190C6A0-0000-7000-8000-00000000ABCD")
	require.NoError(t, err)
	assert.Equal(t, "0190c6a0-0000-7000-8000-00000000abcd", id)

	_, err = Parse("42")
	assert.Error(t, err)
	assert.False(t, IsValid("not-a-uuid"))
}

func TestTime_RejectsOtherVersions(t *testing.T) {
	_, err := Time("6ba7b810-9dad-41d1-80b4-00c04fd430c8")
	assert.ErrorIs(t, err, ErrNotV7)
}
