// Package tree renders a browser as an indented two-column tree on a
// terminal screen.
//
// A View receives the item hooks of a browser.Browser and keeps per-item
// presentation state: expansion, visibility and background colour. Layout
// is the flattened list of visible rows; it is rebuilt lazily, or once per
// batch when a Scheduler is supplied.
package tree

import (
	"github.com/dshills/propbrowser/internal/browser"
	"github.com/dshills/propbrowser/internal/config"
	"github.com/dshills/propbrowser/internal/logging"
	"github.com/dshills/propbrowser/internal/style"
)

// Scheduler defers work until the current batch of changes is done.
// app.TaskQueue implements it.
type Scheduler interface {
	PostOnce(key any, fn func()) bool
}

// Row is one visible line of the tree.
type Row struct {
	Item        *browser.Item
	Depth       int
	Expanded    bool
	HasChildren bool
}

type itemState struct {
	expanded   bool
	hidden     bool
	background style.Color
}

// layoutKey identifies a view's pending layout in the scheduler.
type layoutKey struct{ v *View }

// Option configures a View.
type Option func(*View)

// WithConfig sets the tree options.
func WithConfig(cfg config.TreeConfig) Option {
	return func(v *View) {
		v.cfg = cfg
	}
}

// WithScheduler batches layout through s.
func WithScheduler(s Scheduler) Option {
	return func(v *View) {
		v.sched = s
	}
}

// WithTheme sets the drawing styles.
func WithTheme(t Theme) Option {
	return func(v *View) {
		v.theme = t
	}
}

// WithLogger sets the view's logger.
func WithLogger(l *logging.Logger) Option {
	return func(v *View) {
		v.logger = l
	}
}

// View is a tree viewer. It implements browser.View.
type View struct {
	cfg     config.TreeConfig
	theme   Theme
	sched   Scheduler
	logger  *logging.Logger
	browser *browser.Browser

	states map[*browser.Item]*itemState
	rows   []Row
	dirty  bool
	top    int // first row shown
}

// New creates a view with the default configuration and theme.
func New(opts ...Option) *View {
	v := &View{
		cfg:    config.Default().Tree,
		theme:  DefaultTheme(),
		states: make(map[*browser.Item]*itemState),
	}
	for _, opt := range opts {
		opt(v)
	}
	if v.logger == nil {
		v.logger = logging.Null()
	}
	v.logger = v.logger.WithComponent("tree")
	return v
}

// Attach binds the view to b. The view follows b's current item.
func (v *View) Attach(b *browser.Browser) {
	if b == nil || v.browser == b {
		return
	}
	v.browser = b
	b.OnCurrentItemChanged(func(*browser.Item) {
		v.invalidate()
	})
	v.invalidate()
}

// Browser returns the attached browser.
func (v *View) Browser() *browser.Browser {
	return v.browser
}

// Config returns the tree options in effect.
func (v *View) Config() config.TreeConfig {
	return v.cfg
}

// SetConfig replaces the tree options. Expansion of existing items is
// kept; ExpandNew applies to items inserted afterwards.
func (v *View) SetConfig(cfg config.TreeConfig) {
	if cfg == v.cfg {
		return
	}
	v.cfg = cfg
	v.logger.Debug("tree options changed")
	v.invalidate()
}

// ItemInserted implements browser.View.
func (v *View) ItemInserted(item, _ *browser.Item) {
	if v.browser == nil {
		v.browser = item.Browser()
	}
	v.states[item] = &itemState{expanded: v.cfg.ExpandNew}
	v.invalidate()
}

// ItemRemoved implements browser.View.
func (v *View) ItemRemoved(item *browser.Item) {
	delete(v.states, item)
	v.invalidate()
}

// ItemChanged implements browser.View.
func (v *View) ItemChanged(*browser.Item) {
	v.invalidate()
}

// IsExpanded reports whether item shows its children.
func (v *View) IsExpanded(item *browser.Item) bool {
	st, ok := v.states[item]
	return ok && st.expanded
}

// SetExpanded expands or collapses item. Collapsing an ancestor of the
// current item makes item current.
func (v *View) SetExpanded(item *browser.Item, expanded bool) {
	st, ok := v.states[item]
	if !ok || st.expanded == expanded {
		return
	}
	st.expanded = expanded
	if !expanded && isAncestor(item, v.CurrentItem()) {
		v.browser.SetCurrentItem(item)
	}
	v.invalidate()
}

func isAncestor(anc, item *browser.Item) bool {
	if item == nil {
		return false
	}
	for it := item.Parent(); it != nil; it = it.Parent() {
		if it == anc {
			return true
		}
	}
	return false
}

// IsItemVisible reports whether item and its subtree are shown.
func (v *View) IsItemVisible(item *browser.Item) bool {
	st, ok := v.states[item]
	return ok && !st.hidden
}

// SetItemVisible shows or hides item together with its subtree.
func (v *View) SetItemVisible(item *browser.Item, visible bool) {
	st, ok := v.states[item]
	if !ok || st.hidden == !visible {
		return
	}
	st.hidden = !visible
	v.invalidate()
}

// BackgroundColor returns the colour set on item itself.
func (v *View) BackgroundColor(item *browser.Item) style.Color {
	if st, ok := v.states[item]; ok {
		return st.background
	}
	return style.Invalid
}

// SetBackgroundColor sets item's background. The invalid colour clears it.
func (v *View) SetBackgroundColor(item *browser.Item, c style.Color) {
	st, ok := v.states[item]
	if !ok || st.background == c {
		return
	}
	st.background = c
	v.invalidate()
}

// CalculatedBackgroundColor returns the background of item or of its
// nearest ancestor that has one.
func (v *View) CalculatedBackgroundColor(item *browser.Item) style.Color {
	for it := item; it != nil; it = it.Parent() {
		if c := v.BackgroundColor(it); c.Valid {
			return c
		}
	}
	return style.Invalid
}

// Rows returns the visible rows, laying them out first if needed.
func (v *View) Rows() []Row {
	if v.dirty {
		v.Layout()
	}
	return v.rows
}

// Layout rebuilds the visible rows.
func (v *View) Layout() {
	v.dirty = false
	v.rows = nil
	if v.browser == nil {
		return
	}
	for _, item := range v.browser.TopLevelItems() {
		v.appendRows(item, 0)
	}
	v.top = max(0, min(v.top, len(v.rows)-1))
}

func (v *View) appendRows(item *browser.Item, depth int) {
	st, ok := v.states[item]
	if !ok || st.hidden {
		return
	}
	children := item.Children()
	v.rows = append(v.rows, Row{
		Item:        item,
		Depth:       depth,
		Expanded:    st.expanded,
		HasChildren: len(children) > 0,
	})
	if !st.expanded {
		return
	}
	for _, c := range children {
		v.appendRows(c, depth+1)
	}
}

func (v *View) invalidate() {
	v.dirty = true
	if v.sched != nil {
		v.sched.PostOnce(layoutKey{v}, func() {
			if v.dirty {
				v.Layout()
			}
		})
	}
}

// CurrentItem returns the browser's current item.
func (v *View) CurrentItem() *browser.Item {
	if v.browser == nil {
		return nil
	}
	return v.browser.CurrentItem()
}

// CurrentRow returns the index of the current item's row, or -1.
func (v *View) CurrentRow() int {
	cur := v.CurrentItem()
	if cur == nil {
		return -1
	}
	for i, r := range v.Rows() {
		if r.Item == cur {
			return i
		}
	}
	return -1
}

// MoveCurrent moves the current item delta rows down (up when negative),
// stopping at the first and last row. Without a current item it selects
// the first row.
func (v *View) MoveCurrent(delta int) {
	rows := v.Rows()
	if v.browser == nil || len(rows) == 0 {
		return
	}
	idx := v.CurrentRow()
	if idx < 0 {
		idx = 0
	} else {
		idx = max(0, min(idx+delta, len(rows)-1))
	}
	v.browser.SetCurrentItem(rows[idx].Item)
}

// ExpandCurrent expands the current item, or steps into its first child
// when it is already expanded.
func (v *View) ExpandCurrent() {
	cur := v.CurrentItem()
	if cur == nil {
		return
	}
	children := cur.Children()
	if len(children) == 0 {
		return
	}
	if !v.IsExpanded(cur) {
		v.SetExpanded(cur, true)
		return
	}
	for _, c := range children {
		if v.IsItemVisible(c) {
			v.browser.SetCurrentItem(c)
			return
		}
	}
}

// CollapseCurrent collapses the current item, or steps out to its parent
// when it is collapsed or has no children.
func (v *View) CollapseCurrent() {
	cur := v.CurrentItem()
	if cur == nil {
		return
	}
	if v.IsExpanded(cur) && len(cur.Children()) > 0 {
		v.SetExpanded(cur, false)
		return
	}
	if p := cur.Parent(); p != nil {
		v.browser.SetCurrentItem(p)
	}
}

// StatusText returns the status tip of the current property, falling back
// to its tool tip.
func (v *View) StatusText() string {
	cur := v.CurrentItem()
	if cur == nil {
		return ""
	}
	p := cur.Property()
	if s := p.StatusTip(); s != "" {
		return s
	}
	return p.ToolTip()
}
