package browser_test

import (
	"testing"

	"github.com/dshills/propbrowser/internal/browser"
	"github.com/dshills/propbrowser/internal/manager"
)

type hookLog struct {
	inserted []*browser.Item
	preceded []*browser.Item
	removed  []*browser.Item
	changed  []*browser.Item
}

func (h *hookLog) ItemInserted(item, preceding *browser.Item) {
	h.inserted = append(h.inserted, item)
	h.preceded = append(h.preceded, preceding)
}

func (h *hookLog) ItemRemoved(item *browser.Item) { h.removed = append(h.removed, item) }
func (h *hookLog) ItemChanged(item *browser.Item) { h.changed = append(h.changed, item) }

func TestGroupWithIntScenario(t *testing.T) {
	g := manager.NewGroupManager()
	i := manager.NewIntManager()

	root := g.AddProperty("root")
	x := i.AddProperty("x")
	i.SetRange(x, 0, 10)
	i.SetValue(x, 5)
	root.AddSubProperty(x)

	hooks := &hookLog{}
	v := browser.New(hooks)
	v.AddProperty(root)

	if len(hooks.inserted) != 2 {
		t.Fatalf("ItemInserted calls = %d, want 2", len(hooks.inserted))
	}
	rootItem, xItem := hooks.inserted[0], hooks.inserted[1]
	if rootItem.Property() != root || hooks.preceded[0] != nil {
		t.Errorf("first insert = %v after %v, want root after nil", rootItem.Property().Name(), hooks.preceded[0])
	}
	if xItem.Property() != x || xItem.Parent() != rootItem {
		t.Errorf("second insert = %v under %v, want x under root", xItem.Property().Name(), xItem.Parent())
	}

	i.SetValue(x, 7)
	if len(hooks.changed) != 1 || hooks.changed[0] != xItem {
		t.Errorf("ItemChanged calls = %v, want [x item]", hooks.changed)
	}

	root.Destroy()
	if len(hooks.removed) != 2 || hooks.removed[0] != xItem || hooks.removed[1] != rootItem {
		t.Errorf("ItemRemoved order = %v, want [x root]", hooks.removed)
	}
	if !i.Owns(x) {
		t.Error("x is no longer owned by its manager")
	}
	if len(x.Parents()) != 0 {
		t.Errorf("x.Parents() = %v, want none", x.Parents())
	}
	if i.Value(x) != 7 {
		t.Errorf("Value(x) = %d, want 7", i.Value(x))
	}
}
