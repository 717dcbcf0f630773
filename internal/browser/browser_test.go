package browser

import (
	"fmt"
	"slices"
	"strings"
	"testing"

	"github.com/dshills/propbrowser/internal/editor"
	"github.com/dshills/propbrowser/internal/property"
)

type valueManager struct {
	*property.BaseManager
	values map[*property.Property]int
}

func newValueManager() *valueManager {
	m := &valueManager{values: make(map[*property.Property]int)}
	m.BaseManager = property.NewBaseManager(m)
	return m
}

func (m *valueManager) InitializeProperty(p *property.Property)   { m.values[p] = 0 }
func (m *valueManager) UninitializeProperty(p *property.Property) { delete(m.values, p) }

func (m *valueManager) ValueText(p *property.Property) string {
	return fmt.Sprint(m.values[p])
}

func (m *valueManager) SetValue(p *property.Property, v int) {
	if old, ok := m.values[p]; !ok || old == v {
		return
	}
	m.values[p] = v
	m.PropertyChanged(p)
}

// recordingView logs hooks using slash separated item paths.
type recordingView struct {
	events []string
}

func path(it *Item) string {
	if it == nil {
		return "-"
	}
	var parts []string
	for ; it != nil; it = it.Parent() {
		parts = append(parts, it.Property().Name())
	}
	slices.Reverse(parts)
	return strings.Join(parts, "/")
}

func (v *recordingView) ItemInserted(item, preceding *Item) {
	v.events = append(v.events, "insert "+path(item)+" after "+path(preceding))
}

func (v *recordingView) ItemRemoved(item *Item) {
	v.events = append(v.events, "remove "+path(item))
}

func (v *recordingView) ItemChanged(item *Item) {
	v.events = append(v.events, "change "+path(item))
}

func (v *recordingView) reset() {
	v.events = nil
}

func (v *recordingView) expect(t *testing.T, want ...string) {
	t.Helper()
	if !slices.Equal(v.events, want) {
		t.Errorf("events =\n  %s\nwant\n  %s", strings.Join(v.events, "\n  "), strings.Join(want, "\n  "))
	}
	v.reset()
}

// shape renders the item forest as an indented outline.
func shape(b *Browser) string {
	var sb strings.Builder
	var walk func(items []*Item, depth int)
	walk = func(items []*Item, depth int) {
		for _, it := range items {
			fmt.Fprintf(&sb, "%s%s\n", strings.Repeat("  ", depth), it.Property().Name())
			walk(it.Children(), depth+1)
		}
	}
	walk(b.TopLevelItems(), 0)
	return sb.String()
}

func TestAddProperty_BuildsItems(t *testing.T) {
	m := newValueManager()
	root := m.AddProperty("root")
	a := m.AddProperty("a")
	b := m.AddProperty("b")
	root.AddSubProperty(a)
	root.AddSubProperty(b)

	view := &recordingView{}
	br := New(view)
	item := br.AddProperty(root)

	if item == nil || item != br.TopLevelItem(root) {
		t.Fatalf("AddProperty() = %v, want the top-level item", item)
	}
	view.expect(t,
		"insert root after -",
		"insert root/a after -",
		"insert root/b after root/a",
	)
	if m.Listeners() != 1 {
		t.Errorf("Listeners() = %d, want 1", m.Listeners())
	}
	if got := item.Children()[1].Depth(); got != 1 {
		t.Errorf("Depth() = %d, want 1", got)
	}
}

func TestAddProperty_Duplicate(t *testing.T) {
	m := newValueManager()
	p := m.AddProperty("p")
	view := &recordingView{}
	br := New(view)

	br.AddProperty(p)
	view.reset()
	if got := br.AddProperty(p); got != nil {
		t.Errorf("second AddProperty() = %v, want nil", got)
	}
	view.expect(t)
	if got := len(br.Properties()); got != 1 {
		t.Errorf("Properties() len = %d, want 1", got)
	}
	if br.AddProperty(nil) != nil {
		t.Error("AddProperty(nil) != nil")
	}
}

func TestInsertProperty_Order(t *testing.T) {
	m := newValueManager()
	a, b, c, d := m.AddProperty("a"), m.AddProperty("b"), m.AddProperty("c"), m.AddProperty("d")
	stranger := m.AddProperty("stranger")

	view := &recordingView{}
	br := New(view)
	br.AddProperty(a)
	br.AddProperty(c)
	br.InsertProperty(b, a)
	br.InsertProperty(d, stranger)

	view.expect(t,
		"insert a after -",
		"insert c after a",
		"insert b after a",
		"insert d after -",
	)

	var names []string
	for _, it := range br.TopLevelItems() {
		names = append(names, it.Property().Name())
	}
	if want := []string{"d", "a", "b", "c"}; !slices.Equal(names, want) {
		t.Errorf("TopLevelItems() = %v, want %v", names, want)
	}
	var props []string
	for _, p := range br.Properties() {
		props = append(props, p.Name())
	}
	if !slices.Equal(props, names) {
		t.Errorf("Properties() = %v, want %v", props, names)
	}
}

func TestMultiParentFanOut(t *testing.T) {
	m := newValueManager()
	a := m.AddProperty("a")
	b := m.AddProperty("b")
	p := m.AddProperty("p")
	a.AddSubProperty(p)
	b.AddSubProperty(p)

	view := &recordingView{}
	br := New(view)
	br.AddProperty(a)
	br.AddProperty(b)
	view.reset()

	m.SetValue(p, 3)
	view.expect(t, "change a/p", "change b/p")

	if got := len(br.Items(p)); got != 2 {
		t.Errorf("Items(p) len = %d, want 2", got)
	}
}

func TestTopLevelAndNested(t *testing.T) {
	m := newValueManager()
	a := m.AddProperty("a")
	p := m.AddProperty("p")
	a.AddSubProperty(p)

	view := &recordingView{}
	br := New(view)
	br.AddProperty(a)
	br.AddProperty(p)
	view.reset()

	m.SetValue(p, 1)
	view.expect(t, "change a/p", "change p")

	br.RemoveProperty(p)
	view.expect(t, "remove p")
	if got := len(br.Items(p)); got != 1 {
		t.Errorf("Items(p) after RemoveProperty = %d, want 1", got)
	}
	if m.Listeners() != 1 {
		t.Errorf("Listeners() = %d, want 1", m.Listeners())
	}
}

func TestInsertSubProperty_Live(t *testing.T) {
	groups := newValueManager()
	values := newValueManager()
	root := groups.AddProperty("root")
	first := values.AddProperty("first")
	root.AddSubProperty(first)

	view := &recordingView{}
	br := New(view)
	br.AddProperty(root)
	view.reset()

	sub := values.AddProperty("sub")
	leaf := groups.AddProperty("leaf")
	sub.AddSubProperty(leaf)
	root.InsertSubProperty(sub, first)

	view.expect(t, "insert root/sub after root/first", "insert root/sub/leaf after -")

	values.SetValue(sub, 9)
	view.expect(t, "change root/sub")
	groups.SetValue(leaf, 9)
	view.expect(t, "change root/sub/leaf")

	root.RemoveSubProperty(sub)
	view.expect(t, "remove root/sub/leaf", "remove root/sub")

	values.SetValue(sub, 10)
	view.expect(t)
	if got := shape(br); got != "root\n  first\n" {
		t.Errorf("shape =\n%s", got)
	}
}

func TestSharedSubtreeAcrossParents(t *testing.T) {
	m := newValueManager()
	root := m.AddProperty("root")
	a := m.AddProperty("a")
	b := m.AddProperty("b")
	shared := m.AddProperty("shared")
	root.AddSubProperty(a)
	root.AddSubProperty(b)
	a.AddSubProperty(shared)

	view := &recordingView{}
	br := New(view)
	br.AddProperty(root)
	view.reset()

	b.AddSubProperty(shared)
	view.expect(t, "insert root/b/shared after -")

	leaf := m.AddProperty("leaf")
	shared.AddSubProperty(leaf)
	view.expect(t, "insert root/a/shared/leaf after -", "insert root/b/shared/leaf after -")

	a.RemoveSubProperty(shared)
	view.expect(t, "remove root/a/shared/leaf", "remove root/a/shared")

	m.SetValue(leaf, 1)
	view.expect(t, "change root/b/shared/leaf")
}

func TestDetachNotDestroy(t *testing.T) {
	m := newValueManager()
	a := m.AddProperty("a")
	b := m.AddProperty("b")
	p := m.AddProperty("p")
	a.AddSubProperty(p)
	b.AddSubProperty(p)

	view := &recordingView{}
	br := New(view)
	br.AddProperty(a)
	br.AddProperty(b)
	view.reset()

	a.Destroy()

	view.expect(t, "remove a/p", "remove a")
	if !m.Owns(p) {
		t.Error("p was destroyed with its parent")
	}
	if got := p.Parents(); len(got) != 1 || got[0] != b {
		t.Errorf("Parents() = %v, want [b]", got)
	}
	if got := shape(br); got != "b\n  p\n" {
		t.Errorf("shape =\n%s", got)
	}

	m.SetValue(p, 2)
	view.expect(t, "change b/p")
}

func TestDestroyNestedProperty(t *testing.T) {
	m := newValueManager()
	root := m.AddProperty("root")
	p := m.AddProperty("p")
	root.AddSubProperty(p)

	view := &recordingView{}
	br := New(view)
	br.AddProperty(root)
	view.reset()

	p.Destroy()
	view.expect(t, "remove root/p")
	if got := len(br.Items(p)); got != 0 {
		t.Errorf("Items(p) = %d, want 0", got)
	}
}

func TestRoundTrip(t *testing.T) {
	m := newValueManager()
	root := m.AddProperty("root")
	for _, name := range []string{"x", "y", "z"} {
		child := m.AddProperty(name)
		root.AddSubProperty(child)
		child.AddSubProperty(m.AddProperty(name + "1"))
	}

	br := New(nil)
	br.AddProperty(root)
	before := shape(br)

	br.RemoveProperty(root)
	if shape(br) != "" {
		t.Fatalf("shape after RemoveProperty =\n%s", shape(br))
	}
	if m.Listeners() != 0 {
		t.Errorf("Listeners() after RemoveProperty = %d, want 0", m.Listeners())
	}

	br.AddProperty(root)
	if after := shape(br); after != before {
		t.Errorf("round trip shape =\n%s\nwant\n%s", after, before)
	}
}

func TestClear(t *testing.T) {
	m := newValueManager()
	a, b := m.AddProperty("a"), m.AddProperty("b")
	view := &recordingView{}
	br := New(view)
	br.AddProperty(a)
	br.AddProperty(b)
	view.reset()

	br.Clear()
	view.expect(t, "remove b", "remove a")
	if m.Listeners() != 0 {
		t.Errorf("Listeners() = %d, want 0", m.Listeners())
	}
}

func TestReentrantView(t *testing.T) {
	m := newValueManager()
	a, b := m.AddProperty("a"), m.AddProperty("b")

	var br *Browser
	view := &funcView{changed: func(it *Item) {
		// Removing a property from inside a hook must not disturb the
		// ongoing change delivery.
		br.RemoveProperty(b)
	}}
	br = New(view)
	br.AddProperty(a)
	br.AddProperty(b)

	m.SetValue(a, 1)
	if got := len(br.Properties()); got != 1 {
		t.Errorf("Properties() len = %d, want 1", got)
	}
}

type funcView struct {
	changed func(*Item)
}

func (v *funcView) ItemInserted(*Item, *Item) {}
func (v *funcView) ItemRemoved(*Item)         {}
func (v *funcView) ItemChanged(it *Item)      { v.changed(it) }

func TestCurrentItem(t *testing.T) {
	m := newValueManager()
	root := m.AddProperty("root")
	p := m.AddProperty("p")
	root.AddSubProperty(p)

	br := New(nil)
	br.AddProperty(root)
	var seen []*Item
	br.OnCurrentItemChanged(func(it *Item) { seen = append(seen, it) })

	item := br.Items(p)[0]
	br.SetCurrentItem(item)
	br.SetCurrentItem(item)
	if br.CurrentItem() != item {
		t.Errorf("CurrentItem() = %v, want %v", br.CurrentItem(), item)
	}

	other := New(nil)
	other.SetCurrentItem(item)
	if other.CurrentItem() != nil {
		t.Error("foreign item accepted as current")
	}

	root.RemoveSubProperty(p)
	if br.CurrentItem() != nil {
		t.Errorf("CurrentItem() after removal = %v, want nil", br.CurrentItem())
	}
	if len(seen) != 2 || seen[0] != item || seen[1] != nil {
		t.Errorf("current item notifications = %v, want [item nil]", seen)
	}
}

type fakeFactory struct {
	*editor.BaseFactory
	added   []property.Manager
	removed []property.Manager
}

func newFakeFactory() *fakeFactory {
	f := &fakeFactory{}
	f.BaseFactory = editor.NewBaseFactory(f)
	return f
}

type fakeEditor struct {
	factory *fakeFactory
	prop    *property.Property
}

func (e *fakeEditor) Property() *property.Property { return e.prop }
func (e *fakeEditor) Close()                       { e.factory.Release(e) }

func (f *fakeFactory) CreateEditor(_ property.Manager, p *property.Property, _ any) editor.Editor {
	return &fakeEditor{factory: f, prop: p}
}

func (f *fakeFactory) ConnectPropertyManager(m property.Manager) {
	f.added = append(f.added, m)
}

func (f *fakeFactory) DisconnectPropertyManager(m property.Manager) {
	f.removed = append(f.removed, m)
}

func TestCreateEditor(t *testing.T) {
	m := newValueManager()
	p := m.AddProperty("p")
	br := New(nil)

	if e := br.CreateEditor(p, nil); e != nil {
		t.Errorf("CreateEditor() without factory = %v, want nil", e)
	}

	f := newFakeFactory()
	br.SetFactoryForManager(m, f)
	e := br.CreateEditor(p, nil)
	if e == nil || e.(*fakeEditor).factory != f {
		t.Fatalf("CreateEditor() = %v, want editor from f", e)
	}

	br.UnsetFactoryForManager(m)
	if e := br.CreateEditor(p, nil); e != nil {
		t.Errorf("CreateEditor() after unset = %v, want nil", e)
	}
}
