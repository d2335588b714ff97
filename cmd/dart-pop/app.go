package main

import (
	"context"
	"log"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/dart-pop/core"
	"github.com/lixenwraith/dart-pop/engine"
	"github.com/lixenwraith/dart-pop/render"
	"github.com/lixenwraith/dart-pop/sensor"
)

// Idle screen messages
const (
	msgStopped   = "stopped - press s to start, q to quit"
	msgFocusLost = "paused while the terminal is unfocused"
)

// app routes terminal events to the scheduler and sensor sources
type app struct {
	screen   tcell.Screen
	sched    *engine.FrameScheduler
	renderer *render.TerminalRenderer
	cell     *sensor.Cell
	keys     *sensor.KeyboardSource

	// userStopped keeps a focus gain from restarting a loop stopped with s
	userStopped bool
}

func newApp(screen tcell.Screen, sched *engine.FrameScheduler, renderer *render.TerminalRenderer, cell *sensor.Cell, keys *sensor.KeyboardSource) *app {
	return &app{
		screen:   screen,
		sched:    sched,
		renderer: renderer,
		cell:     cell,
		keys:     keys,
	}
}

// run pumps terminal events until quit or ctx is done
func (a *app) run(ctx context.Context) error {
	events := make(chan tcell.Event, 100)
	core.Go(func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	})

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if !a.handleEvent(ev) {
				log.Printf("app: quit requested")
				return nil
			}
		}
	}
}

// handleEvent applies one event, false means quit
func (a *app) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return a.handleKey(ev)

	case *tcell.EventResize:
		a.screen.Sync()
		w, h := ev.Size()
		a.sched.SetDrawable(render.PlayArea(w, h))
		if !a.sched.Running() {
			a.renderer.PresentIdle(a.idleMessage())
		}

	case *tcell.EventFocus:
		if ev.Focused {
			if !a.userStopped && !a.sched.Running() {
				log.Printf("app: focus gained")
				a.sched.Start()
			}
		} else if a.sched.Running() {
			log.Printf("app: focus lost")
			a.sched.Stop()
			a.renderer.PresentIdle(msgFocusLost)
		}
	}
	return true
}

func (a *app) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return false
		case 'p', 'P':
			paused := !a.cell.Paused()
			a.cell.SetPaused(paused)
			log.Printf("app: sensor intake paused=%v", paused)
		case 's', 'S':
			if a.sched.Running() {
				a.userStopped = true
				a.sched.Stop()
				a.renderer.PresentIdle(msgStopped)
			} else {
				a.userStopped = false
				a.sched.Start()
			}
		}
	default:
		a.keys.HandleKey(ev)
	}
	return true
}

func (a *app) idleMessage() string {
	if a.userStopped {
		return msgStopped
	}
	return msgFocusLost
}
