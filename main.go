package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/lookbusy1344/mlang/api"
	"github.com/lookbusy1344/mlang/compilation"
	"github.com/lookbusy1344/mlang/config"
	"github.com/lookbusy1344/mlang/source"
	"github.com/lookbusy1344/mlang/tools"
	"github.com/lookbusy1344/mlang/tui"
)

// Version information - can be overridden at build time with:
// go build -ldflags "-X main.Version=v1.2.3"
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

func main() {
	var (
		showVersion = flag.Bool("version", false, "Show version information")
		showHelp    = flag.Bool("help", false, "Show help information")
		serveMode   = flag.Bool("serve", false, "Start watch-mode HTTP+WebSocket compile daemon")
		apiPort     = flag.Int("port", 8420, "API server port (used with -serve)")
		tuiMode     = flag.Bool("tui", false, "Explore a compiled program's source, diagnostics, and symbols interactively")
		dumpTree    = flag.Bool("tree", false, "Dump the parsed syntax tree")
		dumpBound   = flag.Bool("bound", false, "Dump the bound/lowered program")
		dumpXRef    = flag.Bool("xref", false, "Dump a cross-reference table of every declared symbol")
		checkUnused = flag.Bool("unused", false, "Warn about unreferenced global variables and functions")
		noColor     = flag.Bool("no-color", false, "Disable ANSI color in diagnostics output")
	)

	flag.Parse()

	if *showVersion {
		fmt.Printf("mlangc %s\n", Version)
		if Commit != "unknown" {
			fmt.Printf("Commit: %s\n", Commit)
		}
		if Date != "unknown" {
			fmt.Printf("Built: %s\n", Date)
		}
		os.Exit(0)
	}

	if *showHelp {
		printHelp()
		os.Exit(0)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if *serveMode {
		runServer(cfg, *apiPort)
		return
	}

	if flag.NArg() == 0 {
		printHelp()
		os.Exit(0)
	}

	sources := make([]*source.Text, flag.NArg())
	for i, path := range flag.Args() {
		content, err := os.ReadFile(path) // #nosec G304 -- user-specified source file path
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: cannot read %s: %v\n", path, err)
			os.Exit(1)
		}
		sources[i] = source.New(path, string(content))
	}

	comp, program, diags := compilation.CompileSources(nil, sources...)

	if *dumpTree {
		for _, tree := range comp.Trees {
			tools.DumpTree(os.Stdout, tree)
		}
	}

	if *checkUnused && !diags.HasErrors() {
		tools.CheckUnused(diags, comp.GlobalScope, program)
	}

	printerOpts := &tools.PrinterOptions{
		Color:        cfg.Diagnostics.ColorOutput && !*noColor,
		ContextLines: cfg.Diagnostics.ContextLines,
	}
	printer := tools.NewPrinter(printerOpts)
	if err := printer.Print(os.Stdout, diags); err != nil {
		fmt.Fprintf(os.Stderr, "Error printing diagnostics: %v\n", err)
	}
	fmt.Println(tools.Summary(diags))

	if diags.HasErrors() {
		os.Exit(1)
	}

	if *dumpBound {
		tools.DumpBoundProgram(os.Stdout, comp.GlobalScope, program)
	}

	if *dumpXRef {
		for _, entry := range tools.XRef(comp.GlobalScope, program) {
			fmt.Printf("%s (%s): %v\n", entry.Name, entry.Kind, entry.References)
		}
	}

	if *tuiMode {
		if err := tui.Run(comp, program, diags, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "TUI error: %v\n", err)
			os.Exit(1)
		}
	}
}

func runServer(cfg *config.Config, port int) {
	server := api.NewServer(port)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	var shutdownOnce sync.Once
	performShutdown := func() {
		shutdownOnce.Do(func() {
			fmt.Println("\nShutting down mlangc compile daemon...")

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := server.Shutdown(ctx); err != nil {
				fmt.Fprintf(os.Stderr, "Error during shutdown: %v\n", err)
				os.Exit(1)
			}

			fmt.Println("mlangc compile daemon stopped")
			os.Exit(0)
		})
	}

	go watchParent(performShutdown)

	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			fmt.Fprintf(os.Stderr, "API server error: %v\n", err)
			os.Exit(1)
		}
	}()

	_ = cfg
	<-sigChan
	performShutdown()
}

// watchParent polls the parent PID and fires shutdown when it changes.
// The daemon is meant to die with the editor or shell that spawned it,
// not linger as an orphan compiling for nobody: when the parent exits,
// the OS re-parents this process and Getppid stops matching.
func watchParent(shutdown func()) {
	parent := os.Getppid()
	for {
		time.Sleep(2 * time.Second)
		if os.Getppid() != parent {
			shutdown()
			return
		}
	}
}

func printHelp() {
	fmt.Printf(`mlangc %s

Usage: mlangc [options] <source-file> [<source-file> ...]
       mlangc -serve [-port N]

Options:
  -help              Show this help message
  -version           Show version information
  -serve             Start watch-mode HTTP+WebSocket compile daemon
  -port N            API server port (default: 8420, used with -serve)
  -tui               Explore the compiled program interactively
  -tree              Dump the parsed syntax tree
  -bound             Dump the bound/lowered program
  -xref              Dump a cross-reference table of every declared symbol
  -unused            Warn about unreferenced global variables and functions
  -no-color          Disable ANSI color in diagnostics output

Examples:
  # Compile one or more files and print diagnostics
  mlangc program.mlang

  # Start the compile daemon for editor/GUI integration
  mlangc -serve -port 3000

  # Dump the parsed tree along with the diagnostics
  mlangc -tree program.mlang

  # Explore a program's symbols and diagnostics interactively
  mlangc -tui program.mlang
`, Version)
}
