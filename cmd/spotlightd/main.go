package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/1broseidon/spotlightd/internal/config"
	"github.com/1broseidon/spotlightd/internal/daemon"
	"github.com/1broseidon/spotlightd/internal/ipc"
	"github.com/1broseidon/spotlightd/internal/platform"
	"github.com/1broseidon/spotlightd/internal/spotlight"
	"github.com/1broseidon/spotlightd/internal/tui"
)

func main() {
	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "daemon":
		if len(os.Args) > 2 && (os.Args[2] == "help" || os.Args[2] == "-h" || os.Args[2] == "--help") {
			fmt.Fprintln(os.Stdout, "Usage: spotlightd daemon")
			os.Exit(0)
		}
		if len(os.Args) > 2 {
			fmt.Fprintln(os.Stderr, "daemon takes no arguments")
			fmt.Fprintln(os.Stderr, "")
			fmt.Fprintln(os.Stderr, "Usage: spotlightd daemon")
			os.Exit(2)
		}
		runDaemon()
	case "status":
		os.Exit(runStatus(os.Args[2:]))
	case "windows":
		os.Exit(runWindows(os.Args[2:]))
	case "show":
		os.Exit(runWindowCommand("show", os.Args[2:]))
	case "hide":
		os.Exit(runWindowCommand("hide", os.Args[2:]))
	case "toggle":
		os.Exit(runWindowCommand("toggle", os.Args[2:]))
	case "hide-all":
		os.Exit(runHideAll(os.Args[2:]))
	case "config":
		os.Exit(runConfig(os.Args[2:]))
	case "tui":
		os.Exit(runTUI(os.Args[2:]))
	case "mcp":
		os.Exit(runMCP(os.Args[2:]))
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: spotlightd <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  daemon              Start the spotlight daemon (foreground)")
	fmt.Fprintln(w, "  status              Show daemon status")
	fmt.Fprintln(w, "  windows             List configured windows and their state")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  show <label>        Show and focus a spotlight window")
	fmt.Fprintln(w, "  hide <label>        Hide a spotlight window")
	fmt.Fprintln(w, "  toggle <label>      Toggle a spotlight window")
	fmt.Fprintln(w, "  hide-all            Hide every registered spotlight window")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config validate     Validate configuration")
	fmt.Fprintln(w, "  config print        Print configuration")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  tui                 Open interactive TUI")
	fmt.Fprintln(w, "  mcp serve           Start MCP server (stdio transport)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'spotlightd <command> --help' for command-specific options.")
}

func runStatus(args []string) int {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: spotlightd status")
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}

	client := ipc.NewClient()
	status, err := client.GetStatus()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	fmt.Printf("daemon:          running\n")
	fmt.Printf("windows:         %d configured, %d registered\n", status.WindowCount, status.RegisteredCount)
	fmt.Printf("close shortcut:  %s\n", status.GlobalCloseShortcut)
	fmt.Printf("uptime:          %s\n", (time.Duration(status.UptimeSeconds) * time.Second).String())
	return 0
}

func runWindows(args []string) int {
	fs := flag.NewFlagSet("windows", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: spotlightd windows")
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}

	client := ipc.NewClient()
	data, err := client.ListWindows()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if len(data.Windows) == 0 {
		fmt.Println("no spotlight windows configured")
		return 0
	}

	fmt.Printf("%-20s %-18s %-10s %-11s %s\n", "LABEL", "SHORTCUT", "STATE", "REGISTERED", "AUTO-HIDE")
	for _, w := range data.Windows {
		state := "absent"
		if w.Found {
			if w.Visible {
				state = "visible"
			} else {
				state = "hidden"
			}
		}
		fmt.Printf("%-20s %-18s %-10s %-11v %v\n", w.Label, w.Shortcut, state, w.Registered, w.AutoHide)
	}
	return 0
}

func runWindowCommand(verb string, args []string) int {
	fs := flag.NewFlagSet(verb, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: spotlightd %s <label>\n", verb)
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}
	label := fs.Arg(0)

	client := ipc.NewClient()
	var err error
	switch verb {
	case "show":
		err = client.ShowWindow(label)
	case "hide":
		err = client.HideWindow(label)
	case "toggle":
		err = client.ToggleWindow(label)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runHideAll(args []string) int {
	fs := flag.NewFlagSet("hide-all", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: spotlightd hide-all")
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if err := ipc.NewClient().HideAll(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runConfig(args []string) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, "  spotlightd config validate [--path PATH]")
		fmt.Fprintln(os.Stderr, "  spotlightd config print [--path PATH] [--defaults]")
		return 2
	}

	switch args[0] {
	case "validate":
		fs := flag.NewFlagSet("validate", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		path := fs.String("path", "", "Config file path (default: ~/.config/spotlightd/config.yaml)")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}

		var err error
		if *path == "" {
			_, err = config.Load()
		} else {
			_, err = config.LoadFromPath(*path)
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Println("config: ok")
		return 0

	case "print":
		fs := flag.NewFlagSet("print", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		path := fs.String("path", "", "Config file path (default: ~/.config/spotlightd/config.yaml)")
		printDefaults := fs.Bool("defaults", false, "Print built-in defaults (no files)")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}

		var cfg *config.Config
		var err error
		if *printDefaults {
			cfg = config.DefaultConfig()
		} else if *path == "" {
			cfg, err = config.Load()
		} else {
			cfg, err = config.LoadFromPath(*path)
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}

		data, err := yaml.Marshal(cfg)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Print(string(data))
		return 0

	default:
		fmt.Fprintf(os.Stderr, "Unknown config command: %s\n", args[0])
		return 2
	}
}

func runTUI(args []string) int {
	if len(args) > 0 && (args[0] == "help" || args[0] == "-h" || args[0] == "--help") {
		fmt.Fprintln(os.Stderr, "Usage: spotlightd tui")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Keybindings:")
		fmt.Fprintln(os.Stderr, "  j/k, ↑/↓  Navigate windows")
		fmt.Fprintln(os.Stderr, "  t, Enter  Toggle selected window")
		fmt.Fprintln(os.Stderr, "  s         Show selected window")
		fmt.Fprintln(os.Stderr, "  h         Hide selected window")
		fmt.Fprintln(os.Stderr, "  a         Hide all windows")
		fmt.Fprintln(os.Stderr, "  r         Refresh from daemon")
		fmt.Fprintln(os.Stderr, "  q, Esc    Quit")
		return 0
	}

	if err := tui.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runDaemon() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	log.Printf("Configuration loaded (%d windows, close shortcut: %s)", len(cfg.Windows), cfg.GlobalCloseShortcut)

	toolkit, err := platform.NewToolkit()
	if err != nil {
		log.Fatalf("Failed to connect to display: %v", err)
	}
	defer toolkit.Disconnect()

	manager := spotlight.New(cfg, toolkit)

	adoptLogger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	adoptInterval := time.Duration(cfg.AdoptIntervalSeconds) * time.Second
	adopter := daemon.NewAdopter(daemon.AdopterConfig{
		Interval: adoptInterval,
		Logger:   adoptLogger,
	}, manager, toolkit, cfg.Labels())

	// Adopt windows already on screen before the loop starts so their
	// shortcuts work immediately.
	adopter.AdoptNow()

	adopterCtx, adopterCancel := context.WithCancel(context.Background())
	defer adopterCancel()
	go adopter.Run(adopterCtx)

	ipcServer, err := ipc.NewServer(cfg, manager, toolkit)
	if err != nil {
		log.Fatalf("Failed to create IPC server: %v", err)
	}
	if err := ipcServer.Start(); err != nil {
		log.Fatalf("Failed to start IPC server: %v", err)
	}
	defer ipcServer.Stop()

	log.Println("spotlightd daemon started successfully")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Println("Shutting down spotlightd daemon...")
		adopterCancel()
		ipcServer.Stop()
		toolkit.Disconnect()
		os.Exit(0)
	}()

	// Start event loop (blocking)
	log.Println("Entering event loop...")
	toolkit.EventLoop()
}
