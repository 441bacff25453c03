package lua

import (
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/wombatlabs/worldbridge/bridge"
	"github.com/wombatlabs/worldbridge/errors"
)

// Engine wraps a single gopher-lua VM with the world module opened.
// Single-goroutine access only, same as the session it drives.
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a VM bound to the session and loads every .lua
// file under scriptsDir. A missing directory is not an error; scripts
// can also be loaded later with DoFile.
func NewEngine(s *bridge.Session, scriptsDir string) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})
	Open(vm, s)

	e := &Engine{vm: vm, log: bridge.Logger()}
	if scriptsDir != "" {
		if err := e.loadDir(scriptsDir); err != nil {
			vm.Close()
			return nil, err
		}
	}
	return e, nil
}

// loadDir loads all .lua files in a directory, sorted by name.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrap(errors.PhaseScript, errors.KindInvalidInput, err, "read script dir")
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return errors.New(errors.PhaseScript, errors.KindInvalidInput).
				Path(path).Cause(err).Build()
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// DoFile loads and runs a single script.
func (e *Engine) DoFile(path string) error {
	if err := e.vm.DoFile(path); err != nil {
		return errors.New(errors.PhaseScript, errors.KindInvalidInput).
			Path(path).Cause(err).Build()
	}
	return nil
}

// DoString runs a chunk of Lua source.
func (e *Engine) DoString(src string) error {
	if err := e.vm.DoString(src); err != nil {
		return errors.Wrap(errors.PhaseScript, errors.KindInvalidInput, err, "run chunk")
	}
	return nil
}

// OnFrame calls the script's global on_frame(dt) hook if one is
// defined. Scripts without the hook are valid.
func (e *Engine) OnFrame(dt float64) error {
	fn := e.vm.GetGlobal("on_frame")
	if fn == lua.LNil {
		return nil
	}
	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    0,
		Protect: true,
	}, lua.LNumber(dt)); err != nil {
		e.log.Error("lua on_frame error", zap.Error(err))
		return errors.Wrap(errors.PhaseScript, errors.KindInvalidInput, err, "on_frame")
	}
	return nil
}

// State exposes the underlying VM for callers that register extra
// functions of their own.
func (e *Engine) State() *lua.LState {
	return e.vm
}

// Close shuts down the VM.
func (e *Engine) Close() {
	e.vm.Close()
}
