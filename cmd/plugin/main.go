// Command plugin builds the host-loadable library:
//
//	go build -buildmode=c-shared -o chcl_now_playing.dll ./cmd/plugin
//
// The export names and signatures are fixed by the host. Every query takes
// two string parameters, which are ignored. The host calls entry points as
// stdcall; exports.c defines them and forwards to the Go functions below.
// A 32-bit build strips the stdcall name decoration with --kill-at, which
// cgo only accepts when allowed explicitly:
//
//	CGO_LDFLAGS_ALLOW='-Wl,--kill-at' GOARCH=386 go build -buildmode=c-shared -o chcl_now_playing.dll ./cmd/plugin
package main

/*
#cgo windows,386 LDFLAGS: -Wl,--kill-at
#include <stdlib.h>
*/
import "C"

import (
	"sync"

	"github.com/genricoloni/nowplaying/internal/config"
	"github.com/genricoloni/nowplaying/internal/logging"
	"github.com/genricoloni/nowplaying/internal/plugin"
	"go.uber.org/zap"
)

var (
	instanceOnce sync.Once
	instance     *plugin.Plugin
	cstrings     = newCStringCache()
)

// current returns the process-wide plugin, creating it on first use
func current() *plugin.Plugin {
	instanceOnce.Do(func() {
		cfg := config.NewAppConfig()
		logger, err := logging.New(cfg, "")
		if err != nil {
			logger = zap.NewNop()
		}
		cfg.Log(logger)
		instance = plugin.New(logger)
	})
	return instance
}

// goSmartieInit is called when the host loads the library. The poller is
// started by the first query instead; starting it here is unreliable in
// some hosts.
//
//export goSmartieInit
func goSmartieInit() {}

//export goSmartieFini
func goSmartieFini() {
	_ = current().Shutdown()
}

//export goSmartieInfo
func goSmartieInfo() *C.char {
	return cstrings.get(exportInfo, plugin.Info())
}

//export goSmartieDemo
func goSmartieDemo() *C.char {
	return cstrings.get(exportDemo, plugin.Demo())
}

//export goGetMinRefreshInterval
func goGetMinRefreshInterval() C.int {
	return C.int(plugin.MinRefreshInterval)
}

//export goFunction1
func goFunction1(param1, param2 *C.char) *C.char {
	return cstrings.get(exportArtist, current().Artist())
}

//export goFunction2
func goFunction2(param1, param2 *C.char) *C.char {
	return cstrings.get(exportTitle, current().Title())
}

//export goFunction3
func goFunction3(param1, param2 *C.char) *C.char {
	return cstrings.get(exportPosition, current().Position())
}

//export goFunction4
func goFunction4(param1, param2 *C.char) *C.char {
	return cstrings.get(exportLength, current().Length())
}

//export goFunction5
func goFunction5(param1, param2 *C.char) *C.char {
	return cstrings.get(exportPositionSeconds, current().PositionSeconds())
}

//export goFunction6
func goFunction6(param1, param2 *C.char) *C.char {
	return cstrings.get(exportLengthSeconds, current().LengthSeconds())
}

//export goFunction7
func goFunction7(param1, param2 *C.char) *C.char {
	return cstrings.get(exportStatus, current().Status())
}

func main() {}
