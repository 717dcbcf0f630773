package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/propbrowser/internal/app"
	"github.com/dshills/propbrowser/internal/browser"
	"github.com/dshills/propbrowser/internal/config"
	"github.com/dshills/propbrowser/internal/editor/widgets"
	"github.com/dshills/propbrowser/internal/logging"
	"github.com/dshills/propbrowser/internal/view/tree"
)

type ui struct {
	session *app.Session
	screen  tcell.Screen
	view    *tree.View
	browser *browser.Browser
	logger  *logging.Logger
}

func newUI(s *app.Session) (*ui, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}

	view := tree.New(
		tree.WithConfig(s.Config().Tree),
		tree.WithScheduler(s.Tasks()),
		tree.WithLogger(s.Logger()),
	)
	b, err := s.NewBrowser(view)
	if err != nil {
		return nil, err
	}
	view.Attach(b)

	d, err := newDemo(s)
	if err != nil {
		return nil, err
	}
	d.bindFactories(b)
	if err := d.populate(b); err != nil {
		return nil, err
	}
	view.MoveCurrent(0)

	s.OnConfigChanged(func(c *config.Config) {
		view.SetConfig(c.Tree)
	})

	return &ui{
		session: s,
		screen:  screen,
		view:    view,
		browser: b,
		logger:  s.Logger().WithComponent("ui"),
	}, nil
}

func (u *ui) run() error {
	if err := u.screen.Init(); err != nil {
		return err
	}
	defer u.screen.Fini()

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := u.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)

	tasks := u.session.Tasks()
	for {
		tasks.Drain()
		u.draw()

		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if !u.handle(ev) {
				return nil
			}
		case <-tasks.Wake():
		case <-signals:
			return nil
		}
	}
}

// handle reacts to one terminal event. It reports false to quit.
func (u *ui) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		u.screen.Sync()
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyCtrlC, tcell.KeyEscape:
			return false
		case tcell.KeyUp:
			u.view.MoveCurrent(-1)
		case tcell.KeyDown:
			u.view.MoveCurrent(1)
		case tcell.KeyPgUp:
			u.view.MoveCurrent(-10)
		case tcell.KeyPgDn:
			u.view.MoveCurrent(10)
		case tcell.KeyLeft:
			u.view.CollapseCurrent()
		case tcell.KeyRight:
			u.view.ExpandCurrent()
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case '+', '=':
				u.step(1)
			case '-', '_':
				u.step(-1)
			case ' ':
				u.toggle()
			}
		}
	case *tcell.EventMouse:
		if ev.Buttons()&tcell.Button1 != 0 {
			_, y := ev.Position()
			if idx := u.view.RowAt(y); idx >= 0 {
				u.browser.SetCurrentItem(u.view.Rows()[idx].Item)
			}
		}
	}
	return true
}

// step moves the current integer property by one single step.
func (u *ui) step(dir int) {
	cur := u.view.CurrentItem()
	if cur == nil {
		return
	}
	ed := u.browser.CreateEditor(cur.Property(), u.view)
	spin, ok := ed.(*widgets.SpinBox)
	if !ok {
		if ed != nil {
			ed.Close()
		}
		return
	}
	defer spin.Close()
	if dir > 0 {
		spin.StepUp()
	} else {
		spin.StepDown()
	}
	u.logger.Debug("%s = %d", cur.Property().Name(), spin.Value())
}

// toggle flips the current boolean property.
func (u *ui) toggle() {
	cur := u.view.CurrentItem()
	if cur == nil {
		return
	}
	ed := u.browser.CreateEditor(cur.Property(), u.view)
	box, ok := ed.(*widgets.CheckBox)
	if !ok {
		if ed != nil {
			ed.Close()
		}
		return
	}
	defer box.Close()
	box.Toggle()
}

func (u *ui) draw() {
	width, height := u.screen.Size()
	u.screen.Clear()
	u.view.Draw(region{Screen: u.screen, width: width, height: height - 1})

	status := u.view.StatusText()
	st := tcell.StyleDefault.Reverse(true)
	x := 0
	for _, r := range status {
		if x >= width {
			break
		}
		u.screen.SetContent(x, height-1, r, nil, st)
		x++
	}
	for ; x < width; x++ {
		u.screen.SetContent(x, height-1, ' ', nil, st)
	}
	u.screen.Show()
}

// region limits drawing to the top of the screen.
type region struct {
	tcell.Screen
	width, height int
}

func (r region) Size() (int, int) {
	return r.width, r.height
}
