// Copyright (c) 2026 opexport Team
// opexport - selective 1Password export tool
// This source code is licensed under the MIT license found in the LICENSE file.

package export

import (
	"reflect"
	"testing"

	"github.com/toeirei/opexport/internal/model"
	"github.com/toeirei/opexport/internal/testutil"
	"pgregory.net/rapid"
)

func visibleKeys(entries []model.Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Key().String())
	}
	return out
}

func TestProject(t *testing.T) {
	flat := model.Flatten(testutil.TwoAccountData())

	cases := []struct {
		name     string
		excluded []model.Key
		want     []string
	}{
		{
			name: "nothing excluded shows everything",
			want: []string{
				"account:A1", "vault:V1", "item:I1", "item:I2", "vault:V2", "item:I3",
				"account:A2", "vault:V3", "item:I4",
			},
		},
		{
			name:     "excluded vault hides its items only",
			excluded: []model.Key{{Kind: model.KindVault, ID: "V1"}},
			want: []string{
				"account:A1", "vault:V1", "vault:V2", "item:I3",
				"account:A2", "vault:V3", "item:I4",
			},
		},
		{
			name:     "excluded account hides its whole subtree",
			excluded: []model.Key{{Kind: model.KindAccount, ID: "A1"}},
			want:     []string{"account:A1", "account:A2", "vault:V3", "item:I4"},
		},
		{
			name:     "excluded item stays visible",
			excluded: []model.Key{{Kind: model.KindItem, ID: "I3"}},
			want: []string{
				"account:A1", "vault:V1", "item:I1", "item:I2", "vault:V2", "item:I3",
				"account:A2", "vault:V3", "item:I4",
			},
		},
		{
			name: "vault suppression does not leak into the next account",
			excluded: []model.Key{
				{Kind: model.KindVault, ID: "V2"},
			},
			want: []string{
				"account:A1", "vault:V1", "item:I1", "item:I2", "vault:V2",
				"account:A2", "vault:V3", "item:I4",
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := visibleKeys(Project(flat, NewExclusionSet(tc.excluded...)))
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("got %v\nwant %v", got, tc.want)
			}
		})
	}
}

func TestProject_ScenarioExcludeVault(t *testing.T) {
	flat := model.Flatten(testutil.SampleData())
	got := visibleKeys(Project(flat, NewExclusionSet(model.Key{Kind: model.KindVault, ID: "V"})))
	want := []string{"account:A", "vault:V"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestProject_ScenarioExcludeAccount(t *testing.T) {
	flat := model.Flatten(testutil.SampleData())
	got := visibleKeys(Project(flat, NewExclusionSet(model.Key{Kind: model.KindAccount, ID: "A"})))
	want := []string{"account:A"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestProject_DoesNotChangeExclusions(t *testing.T) {
	flat := model.Flatten(testutil.SampleData())
	s := NewExclusionSet(model.Key{Kind: model.KindAccount, ID: "A"})
	_ = Project(flat, s)
	if s.Len() != 1 {
		t.Fatalf("Project modified the exclusion set: %d", s.Len())
	}
}

// hiddenByAncestor reports whether an ancestor of e is excluded.
func hiddenByAncestor(e model.Entry, s *ExclusionSet) bool {
	switch e := e.(type) {
	case model.VaultEntry:
		return s.Contains(model.Key{Kind: model.KindAccount, ID: e.AccountID})
	case model.ItemEntry:
		return s.Contains(model.Key{Kind: model.KindAccount, ID: e.AccountID}) ||
			s.Contains(model.Key{Kind: model.KindVault, ID: e.VaultID})
	}
	return false
}

func TestProjectSoundnessProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		flat := model.Flatten(testutil.DataGen().Draw(t, "tree"))
		s := NewExclusionSet(testutil.ExclusionKeysGen(flat).Draw(t, "excluded")...)

		visible := Project(flat, s)
		shown := make(map[model.Key]bool, len(visible))
		for _, e := range visible {
			shown[e.Key()] = true
		}

		// visible must be a subsequence of flat
		j := 0
		for _, e := range flat {
			if j < len(visible) && visible[j].Key() == e.Key() {
				j++
			}
		}
		if j != len(visible) {
			t.Fatalf("visible list is not a subsequence of the flat list")
		}

		for _, e := range flat {
			hidden := hiddenByAncestor(e, s)
			if shown[e.Key()] == hidden {
				t.Fatalf("entry %v: shown=%v but hiddenByAncestor=%v", e.Key(), shown[e.Key()], hidden)
			}
			if !shown[e.Key()] && !hidden && !s.IsExcluded(e) {
				t.Fatalf("entry %v hidden without cause", e.Key())
			}
		}
	})
}
