// Package plugin is the query surface the host reads from.
//
// Every read lazily starts the poller and then returns the latest published
// value, or a fixed default when nothing has been published. Reads never
// wait on the poller and never fail.
package plugin

import (
	"errors"
	"strconv"
	"strings"
	"syscall"

	"github.com/genricoloni/nowplaying/internal/lifecycle"
	"github.com/genricoloni/nowplaying/internal/state"
	"go.uber.org/fx"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// MinRefreshInterval is the shortest host refresh period worth using, in
// milliseconds: the 100ms poll interval plus the time a cycle takes.
const MinRefreshInterval = 150

const (
	defaultText    = ""
	defaultNumeric = "0"
)

const infoText = "Developer: genricoloni\r\nVersion: 1.0 (nowplaying)"

const demoText = `# Get the currently playing artist
$dll(chcl_now_playing,1,,)
# Get the currently playing song title
$dll(chcl_now_playing,2,,)
# Get the current song progress - M:SS
$dll(chcl_now_playing,3,,) / $dll(chcl_now_playing,4,,)
# Get the current song progress as a bar 20 characters wide
$Bar($dll(chcl_now_playing,5,,),$dll(chcl_now_playing,6,,),20)
# Get the playback status (Playing, Paused, Stopped, ...)
$dll(chcl_now_playing,7,,)
`

// Plugin owns the published state and the controller of the poller that
// fills it.
type Plugin struct {
	logger *zap.Logger
	state  *state.Published
	ctrl   *lifecycle.Controller
}

// New creates a plugin. Nothing runs until the first read.
// Extra options are passed on to the engine's fx graph.
func New(logger *zap.Logger, extra ...fx.Option) *Plugin {
	st := state.New()
	return &Plugin{
		logger: logger,
		state:  st,
		ctrl:   lifecycle.NewController(logger, st, extra...),
	}
}

// Info returns the plugin identification string
func Info() string {
	return infoText
}

// Demo returns usage examples for every query
func Demo() string {
	return demoText
}

// Artist returns the current artist, or an empty string
func (p *Plugin) Artist() string {
	return p.text(&p.state.Artist)
}

// Title returns the current title, or an empty string
func (p *Plugin) Title() string {
	return p.text(&p.state.Title)
}

// Position returns the elapsed time as M:SS, or an empty string
func (p *Plugin) Position() string {
	return p.text(&p.state.PositionDisplay)
}

// Length returns the track length as M:SS, or an empty string
func (p *Plugin) Length() string {
	return p.text(&p.state.LengthDisplay)
}

// PositionSeconds returns the elapsed whole seconds, or "0"
func (p *Plugin) PositionSeconds() string {
	return p.seconds(&p.state.PositionSeconds)
}

// LengthSeconds returns the track length in whole seconds, or "0"
func (p *Plugin) LengthSeconds() string {
	return p.seconds(&p.state.LengthSeconds)
}

// Status returns the playback status name, or "0"
func (p *Plugin) Status() string {
	p.ctrl.EnsureStarted()
	return p.state.Status.LoadOr(defaultNumeric)
}

// Shutdown stops the poller and flushes the logger
func (p *Plugin) Shutdown() error {
	err := p.ctrl.Shutdown()
	return multierr.Append(err, syncLogger(p.logger))
}

func (p *Plugin) text(slot *state.Slot[string]) string {
	p.ctrl.EnsureStarted()
	v := slot.LoadOr(defaultText)
	// C strings end at the first NUL
	return strings.ReplaceAll(v, "\x00", "")
}

func (p *Plugin) seconds(slot *state.Slot[int64]) string {
	p.ctrl.EnsureStarted()
	v, ok := slot.Load()
	if !ok {
		return defaultNumeric
	}
	return strconv.FormatInt(v, 10)
}

// syncLogger flushes buffered entries. Syncing stderr fails on some
// platforms, which is not worth reporting.
func syncLogger(logger *zap.Logger) error {
	err := logger.Sync()
	if errors.Is(err, syscall.EINVAL) || errors.Is(err, syscall.ENOTTY) {
		return nil
	}
	return err
}
