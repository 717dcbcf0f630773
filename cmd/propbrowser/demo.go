package main

import (
	"github.com/dshills/propbrowser/internal/app"
	"github.com/dshills/propbrowser/internal/browser"
	"github.com/dshills/propbrowser/internal/editor/widgets"
	"github.com/dshills/propbrowser/internal/manager"
	"github.com/dshills/propbrowser/internal/property"
	"github.com/dshills/propbrowser/internal/style"
)

// demo holds the managers behind the sample property set.
type demo struct {
	groups *manager.GroupManager
	ints   *manager.IntManager
	strs   *manager.StringManager
	bools  *manager.BoolManager
	colors *manager.ColorManager
}

func newDemo(s *app.Session) (*demo, error) {
	d := &demo{
		groups: manager.NewGroupManager(),
		ints:   manager.NewIntManager(),
		strs:   manager.NewStringManager(),
		bools:  manager.NewBoolManager(),
		colors: manager.NewColorManager(),
	}
	for _, m := range []app.Destroyer{d.groups, d.ints, d.strs, d.bools, d.colors} {
		if err := s.Track(m); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// populate fills b with
//
//	Window
//	  Title
//	  Geometry
//	    X, Y, Width, Height
//	  Visible
//	  Opacity
//	Background
//	Login
//	  User
//	  Password
//	Width (shared with Window/Geometry)
func (d *demo) populate(b *browser.Browser) error {
	window := d.groups.AddProperty("Window")

	title := d.strs.AddProperty("Title")
	d.strs.SetValue(title, "Untitled")
	title.SetToolTip("Window title")
	window.AddSubProperty(title)

	geometry := d.groups.AddProperty("Geometry")
	window.AddSubProperty(geometry)
	var width *property.Property
	for _, dim := range []struct {
		name     string
		value    int
		min, max int
	}{
		{"X", 40, 0, 4096},
		{"Y", 20, 0, 4096},
		{"Width", 800, 1, 4096},
		{"Height", 600, 1, 4096},
	} {
		p := d.ints.AddProperty(dim.name)
		d.ints.SetRange(p, dim.min, dim.max)
		d.ints.SetValue(p, dim.value)
		d.ints.SetSingleStep(p, 10)
		p.SetStatusTip(dim.name + " in pixels")
		geometry.AddSubProperty(p)
		if dim.name == "Width" {
			width = p
		}
	}

	visible := d.bools.AddProperty("Visible")
	d.bools.SetValue(visible, true)
	window.AddSubProperty(visible)

	opacity := d.ints.AddProperty("Opacity")
	d.ints.SetRange(opacity, 0, 100)
	d.ints.SetValue(opacity, 100)
	d.ints.SetSingleStep(opacity, 5)
	opacity.SetValueColor(style.RGB(0x87, 0xaf, 0xff))
	window.AddSubProperty(opacity)

	background := d.colors.AddProperty("Background")
	d.colors.SetValue(background, style.RGB(0x33, 0x66, 0x99))

	login := d.groups.AddProperty("Login")
	user := d.strs.AddProperty("User")
	if err := d.strs.SetPattern(user, `[a-z][a-z0-9_]*`); err != nil {
		return err
	}
	d.strs.SetValue(user, "guest")
	password := d.strs.AddProperty("Password")
	d.strs.SetEchoMode(password, manager.EchoPassword)
	d.strs.SetValue(password, "secret")
	login.AddSubProperty(user)
	login.AddSubProperty(password)

	b.AddProperty(window)
	b.AddProperty(background)
	b.AddProperty(login)
	b.AddProperty(width)
	return nil
}

// bindFactories attaches the editor factories used by the key handlers.
func (d *demo) bindFactories(b *browser.Browser) {
	spin := widgets.NewSpinBoxFactory()
	b.SetFactoryForManager(d.ints, spin)
	b.SetFactoryForManager(d.colors.SubIntPropertyManager(), spin)
	b.SetFactoryForManager(d.strs, widgets.NewLineEditFactory())
	b.SetFactoryForManager(d.bools, widgets.NewCheckBoxFactory())
}
