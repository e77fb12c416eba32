// Textadv runs Lua-defined text adventures: a room graph, an inventory,
// and per-item scripted reactions behind a small command grammar.
// Usage: textadv [--version] [--plain] [--script <file>] [--trace] [--debug] <game_directory>
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/norrisaftcc/tool-textadv/cli"
	"github.com/norrisaftcc/tool-textadv/engine"
	"github.com/norrisaftcc/tool-textadv/loader"
	"github.com/norrisaftcc/tool-textadv/tui"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	plain := false
	trace := false
	debug := false
	var gameDir string
	var scriptFile string

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--version":
			fmt.Printf("textadv %s (commit %s, built %s)\n", version, commit, date)
			return
		case "--plain":
			plain = true
		case "--trace":
			trace = true
		case "--debug":
			debug = true
		case "--script":
			if i+1 >= len(args) {
				fmt.Fprintf(os.Stderr, "--script requires a file path\n")
				os.Exit(1)
			}
			i++
			scriptFile = args[i]
		default:
			if gameDir == "" {
				gameDir = args[i]
			}
		}
	}

	if gameDir == "" {
		fmt.Fprintf(os.Stderr, "Usage: textadv [--version] [--plain] [--script <file>] [--trace] [--debug] <game_directory>\n")
		os.Exit(1)
	}

	// Load and compile Lua game content, then build this session's world.
	def, err := loader.Load(gameDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading game: %v\n", err)
		os.Exit(1)
	}
	game, err := def.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building game: %v\n", err)
		os.Exit(1)
	}

	var opts []engine.Option
	if debug {
		log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
		opts = append(opts, engine.WithLogger(log))
	}
	eng := engine.New(game.Start, opts...)

	// Script mode: open file, force plain, echo commands.
	if scriptFile != "" {
		f, err := os.Open(scriptFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening script: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		printBanner(game)
		c := cli.New(eng, game)
		c.In = f
		c.EchoInput = true
		c.Trace = trace
		c.Run()
		return
	}

	// Use plain CLI if --plain flag or stdout is not a terminal.
	if plain || !isTerminal() {
		printBanner(game)
		c := cli.New(eng, game)
		c.Trace = trace
		c.Run()
		return
	}

	if err := tui.Run(eng, game); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printBanner(game *loader.Game) {
	fmt.Printf("%s v%s by %s\n\n", game.Title, game.Version, game.Author)
}

// isTerminal returns true if stdout is a terminal (not piped/redirected).
func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
