/*
HumanGL viewer: an animated cube humanoid in an OpenGL window.
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/YannUFLL/HumanGL/engine"
	"github.com/YannUFLL/HumanGL/engine/config"
	"github.com/YannUFLL/HumanGL/engine/core"
	"github.com/YannUFLL/HumanGL/testbed"
)

func main() {
	configPath := flag.String("config", "", "TOML configuration file, reloaded on change")
	logLevel := flag.String("log-level", "", "override the configured log level")
	dumpConfig := flag.Bool("dump-config", false, "print the resolved configuration and exit")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			core.LogFatal("%s", err)
		}
		cfg = loaded
	} else if err := cfg.Resolve(); err != nil {
		core.LogFatal("%s", err)
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}
	if err := core.SetLogLevel(cfg.Log.Level); err != nil {
		core.LogFatal("%s", err)
	}

	if *dumpConfig {
		if err := cfg.Encode(os.Stdout); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	tb := testbed.NewTestGame(engine.NewApplicationConfig(cfg, *configPath))

	e, err := engine.New(tb.Game)
	if err != nil {
		core.LogFatal("%s", err)
	}

	if err := e.Initialize(); err != nil {
		core.LogFatal("%s", err)
	}

	// signal channel to capture system calls
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)

	// the window belongs to the main thread, so the signal only stops the loop
	go func() {
		<-sigCh
		e.Stop()
	}()

	runErr := e.Run()
	if err := e.Shutdown(); err != nil {
		core.LogError("shutdown: %s", err)
	}
	if runErr != nil {
		core.LogFatal("%s", runErr)
	}
}
