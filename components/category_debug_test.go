//go:build debug

package components

import "testing"

func TestCategoryForPanicsOutOfRange(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for out-of-range category in debug build")
		}
	}()
	CategoryFor(int(TierCount))
}
