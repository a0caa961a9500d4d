package tracker

import (
	"testing"

	"github.com/bugscope/bugscope/pkg/errors"
)

func TestBuild(t *testing.T) {
	records := []Record{
		{ID: 1, Alias: "wr-projects", Summary: "[meta] tracker"},
		{ID: 2, Rank: "3", Summary: "a bug", Blocks: []int{1}},
		{ID: 3, Summary: "another bug", Blocks: []int{2, 99}},
	}

	g, err := Build(records, DefaultRootAlias)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	if g.Root() != 1 {
		t.Errorf("Root() = %d, want 1", g.Root())
	}
	if g.Size() != 3 {
		t.Errorf("Size() = %d, want 3", g.Size())
	}
	if g.EdgeCount() != 3 {
		t.Errorf("EdgeCount() = %d, want 3", g.EdgeCount())
	}

	b, ok := g.Bug(2)
	if !ok {
		t.Fatal("Bug(2) not found")
	}
	if b.Rank != 3 {
		t.Errorf("Bug(2).Rank = %d, want 3", b.Rank)
	}

	b, _ = g.Bug(3)
	if b.Rank != Unranked {
		t.Errorf("Bug(3).Rank = %d, want %d", b.Rank, Unranked)
	}
	if len(b.Blocks) != 2 || b.Blocks[0] != 2 || b.Blocks[1] != 99 {
		t.Errorf("Bug(3).Blocks = %v, want [2 99]", b.Blocks)
	}

	// Edge to 99 points outside the fetched set - valid dead end.
	if _, ok := g.Bug(99); ok {
		t.Error("Bug(99) should not exist")
	}
}

func TestBuildInvalidRank(t *testing.T) {
	records := []Record{
		{ID: 1, Alias: "wr-projects"},
		{ID: 2, Rank: "P1"},
	}

	_, err := Build(records, DefaultRootAlias)
	if err == nil {
		t.Fatal("Build() should fail on non-integer rank")
	}
	if !errors.Is(err, errors.ErrCodeInvalidRank) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidRank)
	}
}

func TestBuildNoRoot(t *testing.T) {
	records := []Record{
		{ID: 1, Summary: "just a bug"},
	}

	_, err := Build(records, DefaultRootAlias)
	if err == nil {
		t.Fatal("Build() should fail without a root bug")
	}
	if !errors.Is(err, errors.ErrCodeNoRootBug) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeNoRootBug)
	}
}

func TestBuildDuplicateRoot(t *testing.T) {
	records := []Record{
		{ID: 1, Alias: "wr-projects"},
		{ID: 2, Alias: "wr-projects"},
	}

	_, err := Build(records, DefaultRootAlias)
	if err == nil {
		t.Fatal("Build() should fail on duplicated root alias")
	}
	if !errors.Is(err, errors.ErrCodeDuplicateRootBug) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeDuplicateRootBug)
	}
}

func TestBuildEmptyRootAlias(t *testing.T) {
	_, err := Build([]Record{{ID: 1}}, "")
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidConfig)
	}
}

func TestBuildCustomRootAlias(t *testing.T) {
	records := []Record{
		{ID: 7, Alias: "gfx-projects"},
	}

	g, err := Build(records, "gfx-projects")
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if g.Root() != 7 {
		t.Errorf("Root() = %d, want 7", g.Root())
	}
}

func TestBuildDuplicateIDLastWins(t *testing.T) {
	records := []Record{
		{ID: 1, Alias: "wr-projects"},
		{ID: 2, Summary: "first"},
		{ID: 2, Summary: "second"},
	}

	g, err := Build(records, DefaultRootAlias)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if g.Size() != 2 {
		t.Errorf("Size() = %d, want 2", g.Size())
	}
	b, _ := g.Bug(2)
	if b.Summary != "second" {
		t.Errorf("Bug(2).Summary = %q, want %q", b.Summary, "second")
	}
}

func TestIDsSorted(t *testing.T) {
	records := []Record{
		{ID: 5},
		{ID: 1, Alias: "wr-projects"},
		{ID: 3},
	}

	g, err := Build(records, DefaultRootAlias)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	ids := g.IDs()
	want := []BugID{1, 3, 5}
	if len(ids) != len(want) {
		t.Fatalf("IDs() length = %d, want %d", len(ids), len(want))
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("IDs()[%d] = %d, want %d", i, ids[i], want[i])
		}
	}
}

func TestBugURL(t *testing.T) {
	got := BugURL("https://bugzilla.mozilla.org", 1234)
	want := "https://bugzilla.mozilla.org/show_bug.cgi?id=1234"
	if got != want {
		t.Errorf("BugURL() = %q, want %q", got, want)
	}

	// Trailing slash is normalized away.
	got = BugURL("https://bugzilla.mozilla.org/", 1234)
	if got != want {
		t.Errorf("BugURL() with trailing slash = %q, want %q", got, want)
	}
}
