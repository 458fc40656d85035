package codec

import (
	"testing"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// requireText fails with a character-level diff when encoded text does not
// match, which beats eyeballing two near-identical documents.
func requireText(t *testing.T, want, got string) {
	t.Helper()
	if want == got {
		return
	}
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(want, got, false)
	t.Errorf("encoded text mismatch (want vs got):\n%s", dmp.DiffPrettyText(diffs))
}
