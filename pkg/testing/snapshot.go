package testing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-coat/coat/pkg/core"
)

// TestingT is the subset of *testing.T used by MatchesFile, allowing
// test doubles to intercept failures.
type TestingT interface {
	Helper()
	Fatalf(format string, args ...any)
	Errorf(format string, args ...any)
	Name() string
}

// Snapshot captures the attached tree and the latest display list.
type Snapshot struct {
	Tree       *Node       `json:"tree"`
	DisplayOps []DisplayOp `json:"displayOps,omitempty"`
}

// Node represents a node in the serialized tree. IDs are assigned per kind
// in traversal order, so they are stable across runs.
type Node struct {
	ID       string     `json:"id"`
	Kind     string     `json:"kind"`
	Name     string     `json:"name"`
	Size     [2]float64 `json:"size"`
	Offset   [2]float64 `json:"offset"`
	Focused  bool       `json:"focused,omitempty"`
	Children []*Node    `json:"children,omitempty"`
}

// CaptureSnapshot captures the current tree and display operations.
func (t *Tester) CaptureSnapshot() *Snapshot {
	snap := &Snapshot{}
	if info := t.Tree(); info != nil {
		snap.Tree = captureNode(info, &typeCounter{})
		snap.DisplayOps = serializeDisplayList(t.DisplayList())
	}
	return snap
}

// MatchesFile compares this snapshot against a golden file. On mismatch it
// reports a diff and instructions for updating. When COAT_UPDATE_SNAPSHOTS=1
// is set, the file is silently updated instead.
func (s *Snapshot) MatchesFile(t TestingT, path string) {
	t.Helper()

	if os.Getenv("COAT_UPDATE_SNAPSHOTS") == "1" {
		if err := s.UpdateFile(path); err != nil {
			t.Fatalf("failed to update snapshot: %v", err)
		}
		return
	}

	expected, err := loadSnapshot(path)
	if err != nil {
		if os.IsNotExist(err) {
			t.Fatalf("snapshot file missing: %s\n\nTo create: COAT_UPDATE_SNAPSHOTS=1 go test -run %s", path, t.Name())
			return
		}
		t.Fatalf("failed to load snapshot: %v", err)
		return
	}

	if diff := s.Diff(expected); diff != "" {
		t.Errorf("snapshot mismatch: %s\n%s\n\nTo update: COAT_UPDATE_SNAPSHOTS=1 go test -run %s", path, diff, t.Name())
	}
}

// UpdateFile writes this snapshot to the given path, creating directories
// as needed.
func (s *Snapshot) UpdateFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := marshalSnapshot(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Diff describes how this snapshot departs from expected, one change per
// line. Nodes are matched by name under their parent and reported by path;
// display ops are compared by position. It returns "" when they agree.
func (s *Snapshot) Diff(expected *Snapshot) string {
	var d snapshotDiff
	d.node("", expected.Tree, s.Tree)
	d.displayOps(expected.DisplayOps, s.DisplayOps)
	return strings.Join(d.lines, "\n")
}

// --- Internal ---

// typeCounter assigns stable IDs like "Linear#0", "Linear#1".
type typeCounter struct {
	counts map[string]int
}

func (c *typeCounter) next(kind string) string {
	if c.counts == nil {
		c.counts = make(map[string]int)
	}
	n := c.counts[kind]
	c.counts[kind] = n + 1
	return fmt.Sprintf("%s#%d", kind, n)
}

func captureNode(info *core.NodeInfo, counter *typeCounter) *Node {
	node := &Node{
		ID:      counter.next(info.Kind),
		Kind:    info.Kind,
		Name:    info.Name,
		Size:    [2]float64{round2(info.Size.Width), round2(info.Size.Height)},
		Offset:  [2]float64{round2(info.Position.X), round2(info.Position.Y)},
		Focused: info.Focused,
	}
	for i := range info.Children {
		node.Children = append(node.Children, captureNode(&info.Children[i], counter))
	}
	return node
}

func loadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("invalid snapshot JSON: %w", err)
	}
	return &snap, nil
}

func marshalSnapshot(s *Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type snapshotDiff struct {
	lines []string
}

func (d *snapshotDiff) addf(format string, args ...any) {
	d.lines = append(d.lines, fmt.Sprintf(format, args...))
}

func (d *snapshotDiff) node(parent string, want, got *Node) {
	switch {
	case want == nil && got == nil:
		return
	case want == nil:
		d.addf("+ %s/%s (%s)", parent, got.Name, got.Kind)
		return
	case got == nil:
		d.addf("- %s/%s (%s)", parent, want.Name, want.Kind)
		return
	}

	path := parent + "/" + got.Name
	if want.Kind != got.Kind {
		d.addf("~ %s: kind %s, was %s", path, got.Kind, want.Kind)
		return
	}
	if want.Size != got.Size {
		d.addf("~ %s: size %v, was %v", path, got.Size, want.Size)
	}
	if want.Offset != got.Offset {
		d.addf("~ %s: offset %v, was %v", path, got.Offset, want.Offset)
	}
	if want.Focused != got.Focused {
		d.addf("~ %s: focused %t, was %t", path, got.Focused, want.Focused)
	}

	wanted := make(map[string]*Node, len(want.Children))
	for _, child := range want.Children {
		wanted[child.Name] = child
	}
	for _, child := range got.Children {
		d.node(path, wanted[child.Name], child)
		delete(wanted, child.Name)
	}
	for _, child := range want.Children {
		if _, missing := wanted[child.Name]; missing {
			d.node(path, child, nil)
		}
	}
}

func (d *snapshotDiff) displayOps(want, got []DisplayOp) {
	for i := range max(len(want), len(got)) {
		switch {
		case i >= len(want):
			d.addf("+ op %d: %s", i, formatOp(got[i]))
		case i >= len(got):
			d.addf("- op %d: %s", i, formatOp(want[i]))
		default:
			if a, b := formatOp(want[i]), formatOp(got[i]); a != b {
				d.addf("~ op %d: %s, was %s", i, b, a)
			}
		}
	}
}

func formatOp(op DisplayOp) string {
	data, err := json.Marshal(op)
	if err != nil {
		return op.Op
	}
	return string(data)
}
