package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/journalkeeper/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   address and port of the journal server
//	-r string   app data root holding journal_entries/ and journal_images/
//	-t string   access token
//	-o int      per-operation network timeout in seconds
//	-w          enable auto-sync after local saves
//	-p string   reflection provider: openai or anthropic
//	-l string   reflection endpoint base URL
//	-m string   reflection model name
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-r", "-t", "-o", "-p", "-l", "-m"}, "-w")

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "address and port to access server")
	fs.StringVar(&cfg.DataRoot, "r", cfg.DataRoot, "app data root directory")
	fs.StringVar(&cfg.AccessToken, "t", cfg.AccessToken, "access token")
	opTimeout := fs.Int("o", int(cfg.OperationTimeout.Seconds()), "network operation timeout (in seconds)")
	fs.BoolVar(&cfg.AutoSync, "w", cfg.AutoSync, "sync automatically after local changes")
	fs.StringVar(&cfg.ReflectProvider, "p", cfg.ReflectProvider, "reflection provider (openai or anthropic)")
	fs.StringVar(&cfg.ReflectBaseURL, "l", cfg.ReflectBaseURL, "reflection endpoint base URL")
	fs.StringVar(&cfg.ReflectModel, "m", cfg.ReflectModel, "reflection model name")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.OperationTimeout = time.Duration(*opTimeout) * time.Second
}
