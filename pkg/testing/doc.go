// Package testing provides a headless harness for component tests.
//
// # Quick Start
//
// Create a tester, pump a root component, and make assertions:
//
//	func TestCounter(t *testing.T) {
//	    tester := coattest.NewTesterWithT(t)
//	    tester.Pump(core.Mount(Counter, CounterProps{}))
//
//	    // Find nodes
//	    if !tester.Find(coattest.ByName("add")).Exists() {
//	        t.Fatal("expected an add button")
//	    }
//
//	    // Simulate input; every gesture runs one frame
//	    tester.Tap(coattest.ByName("add"))
//
//	    // Assert layout and drawing
//	    if tester.Find(coattest.ByKind("Rectangle")).Count() != 2 {
//	        t.Error("expected two rectangles")
//	    }
//	}
//
// Frames are driven through the same [engine.Engine] the platform loop uses,
// against a recording display list instead of a window.
//
// # Snapshot Testing
//
// Capture and compare tree and display list snapshots:
//
//	snapshot := tester.CaptureSnapshot()
//	snapshot.MatchesFile(t, "testdata/counter.snapshot.json")
//
// Update snapshots with:
//
//	COAT_UPDATE_SNAPSHOTS=1 go test ./...
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import coattest "github.com/go-coat/coat/pkg/testing"
package testing
