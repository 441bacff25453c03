package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/wombatlabs/worldbridge/bridge"
	"github.com/wombatlabs/worldbridge/input"
	luabind "github.com/wombatlabs/worldbridge/lua"
	"github.com/wombatlabs/worldbridge/scene"
	"github.com/wombatlabs/worldbridge/world"
)

func main() {
	var (
		sceneFile   = flag.String("scene", "", "Path to a TOML scene file")
		scriptFile  = flag.String("script", "", "Lua script to run against the scene")
		scriptDir   = flag.String("scripts", "", "Directory of Lua scripts to load")
		frames      = flag.Int("frames", 1, "Number of on_frame ticks to run")
		dt          = flag.Float64("dt", 1.0/60.0, "Delta time per frame in seconds")
		verbose     = flag.Bool("v", false, "Verbose logging")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	if *sceneFile == "" {
		fmt.Fprintln(os.Stderr, "Usage: worldctl -scene <file.toml> [-script file.lua] [-frames n]")
		fmt.Fprintln(os.Stderr, "       worldctl -scene <file.toml> -i  (interactive mode)")
		os.Exit(1)
	}

	if *verbose {
		log, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer log.Sync()
		bridge.SetLogger(log)
	}

	if *interactive {
		if err := runInteractive(*sceneFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(*sceneFile, *scriptFile, *scriptDir, *frames, *dt); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(sceneFile, scriptFile, scriptDir string, frames int, dt float64) error {
	w, err := loadWorld(sceneFile)
	if err != nil {
		return err
	}

	snap := input.NewSnapshot()
	queue := input.NewCommandQueue(0)
	defer queue.Close()

	session := bridge.Open(w, queue)
	defer session.Close()

	engine, err := luabind.NewEngine(session, scriptDir)
	if err != nil {
		return err
	}
	defer engine.Close()

	if scriptFile != "" {
		if err := engine.DoFile(scriptFile); err != nil {
			return err
		}
	}

	for i := 0; i < frames; i++ {
		session.BeginFrame(snap)
		if err := engine.OnFrame(dt); err != nil {
			return err
		}
		queue.Drain(snap)
	}

	printWorld(w)
	return nil
}

func loadWorld(sceneFile string) (*world.World, error) {
	s, md, err := scene.Load(sceneFile)
	if err != nil {
		return nil, err
	}
	w := world.NewWorld()
	if err := scene.Populate(w, s, md); err != nil {
		return nil, err
	}
	return w, nil
}

func printWorld(w *world.World) {
	fmt.Printf("Entities: %d\n", w.Len())
	w.Each(func(h world.Handle, label string) bool {
		t, _ := w.Transform(h)
		fmt.Printf("  %s  pos=(%.3f, %.3f, %.3f)", label,
			t.Position[0], t.Position[1], t.Position[2])
		if cam, ok := w.CameraByEntity(h); ok {
			fmt.Printf("  camera=%s", cam.Label)
		}
		fmt.Println()
		return true
	})
}
