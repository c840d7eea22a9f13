package filter

import (
	"testing"

	"github.com/RuiFG/cachesnap/snapshot"
	"github.com/stretchr/testify/assert"
)

func fixture() snapshot.Snapshot {
	return snapshot.Snapshot{
		"a": 1,
		"b": 2,
		snapshot.RootQuery: map[string]any{
			"a(1)": 10,
			"c":    20,
		},
	}
}

func TestApplyWithoutListsIsIdentity(t *testing.T) {
	s := fixture()
	filtered := Apply(s, nil, nil)
	assert.Equal(t, s, filtered)
}

func TestApplyWhitelist(t *testing.T) {
	filtered := Apply(fixture(), []string{"a"}, nil)
	assert.Equal(t, snapshot.Snapshot{
		"a": 1,
		snapshot.RootQuery: map[string]any{
			"a(1)": 10,
		},
	}, filtered)
}

func TestApplyBlacklist(t *testing.T) {
	filtered := Apply(fixture(), nil, []string{"c"})
	assert.Equal(t, snapshot.Snapshot{
		"a": 1,
		"b": 2,
		snapshot.RootQuery: map[string]any{
			"a(1)": 10,
		},
	}, filtered)
}

func TestApplyAlwaysRetainsRootQuery(t *testing.T) {
	filtered := Apply(fixture(), []string{"nothing"}, nil)
	assert.Contains(t, filtered, snapshot.RootQuery)
	assert.Empty(t, filtered[snapshot.RootQuery])

	filtered = Apply(fixture(), nil, []string{snapshot.RootQuery})
	assert.Contains(t, filtered, snapshot.RootQuery)
}

func TestApplyBothListsConfigured(t *testing.T) {
	//whitelist takes precedence, a whitelisted key survives its own blacklisting
	filtered := Apply(fixture(), []string{"a"}, []string{"a"})
	assert.Contains(t, filtered, "a")
	//keys missed by both lists survive through the blacklist clause
	assert.Contains(t, filtered, "b")
}

func TestApplyMissingRootQuery(t *testing.T) {
	assert.NotPanics(t, func() {
		filtered := Apply(snapshot.Snapshot{"a": 1}, []string{"a"}, nil)
		assert.Equal(t, snapshot.Snapshot{"a": 1}, filtered)
	})
}

func TestApplyMalformedRootQueryLeftUntouched(t *testing.T) {
	s := snapshot.Snapshot{snapshot.RootQuery: "not a mapping"}
	filtered := Apply(s, nil, []string{"c"})
	assert.Equal(t, "not a mapping", filtered[snapshot.RootQuery])
}

func TestApplyNeverMutatesInput(t *testing.T) {
	s := fixture()
	Apply(s, []string{"a"}, nil)
	assert.Equal(t, fixture(), s)
}
