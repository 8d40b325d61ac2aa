// Command fintools serves the financial tools registry over MCP streamable HTTP.
//
// Usage:
//
//	fintools -cfg fintools.yaml              serve the registry
//	fintools -cfg fintools.yaml -list        print the published tools and tags
//	fintools -cfg fintools.yaml -call sec_map_ticker_to_cik -input '{"ticker":"AAPL"}' -o yaml
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/effective-security/fintools/config"
	"github.com/effective-security/fintools/encoding"
	"github.com/effective-security/xlog"
)

var logger = xlog.NewPackageLogger("github.com/effective-security/fintools/cmd", "fintools")

// Version of the application, set by the linker
var Version = "v0.0.0-dev"

type flags struct {
	cfgFile string
	list    bool
	call    string
	input   string
	verbose bool
	output  string
}

func parseFlags(args []string, errOut io.Writer) (*flags, error) {
	f := new(flags)
	fs := flag.NewFlagSet("fintools", flag.ContinueOnError)
	fs.SetOutput(errOut)
	fs.StringVar(&f.cfgFile, "cfg", "", "path to the configuration file")
	fs.BoolVar(&f.list, "list", false, "print the published tools and tags, then exit")
	fs.StringVar(&f.call, "call", "", "call the published tool by name, then exit")
	fs.StringVar(&f.input, "input", "{}", "JSON input of the -call")
	fs.BoolVar(&f.verbose, "v", false, "print the tool events of the -call")
	fs.StringVar(&f.output, "o", encoding.ModePlainText, "output format of -list and -call: "+strings.Join(encoding.Modes(), "|"))
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if _, err := encoding.PredefinedEncoder(f.output); err != nil {
		return nil, err
	}
	return f, nil
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		os.Exit(1)
	}
}

func run(args []string, out, errOut io.Writer) error {
	f, err := parseFlags(args, errOut)
	if err != nil {
		return err
	}

	cfg, err := config.Load(f.cfgFile)
	if err != nil {
		return err
	}
	if err = cfg.Validate(); err != nil {
		return err
	}

	xlog.SetFormatter(xlog.NewStringFormatter(errOut))
	xlog.SetGlobalLogLevel(logLevel(cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(cfg, f, errOut)
	if err != nil {
		return err
	}
	defer a.Close()

	if err = a.registry.Initialize(ctx); err != nil {
		return err
	}

	switch {
	case f.list:
		return a.printTools(out, f.output)
	case f.call != "":
		return a.callTool(ctx, out, f.output, f.call, f.input)
	default:
		return a.serve(ctx)
	}
}

func logLevel(level string) xlog.LogLevel {
	switch level {
	case "DEBUG":
		return xlog.DEBUG
	case "NOTICE":
		return xlog.NOTICE
	case "WARNING":
		return xlog.WARNING
	case "ERROR":
		return xlog.ERROR
	default:
		return xlog.INFO
	}
}
