package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/ehrlich-b/go-ossim"
	"github.com/ehrlich-b/go-ossim/internal/logging"
)

func main() {
	var verbose = flag.Bool("v", false, "Verbose output")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [-v] <config-file>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}
	configPath := flag.Arg(0)

	logConfig := logging.DefaultConfig()
	if *verbose {
		logConfig.Level = logging.LevelDebug
	}
	logger := logging.NewLogger(logConfig)
	logging.SetDefault(logger)

	_, err := ossim.Run(configPath, &ossim.Options{Logger: logger})
	if err != nil {
		logger.Error("run failed", "error", err)
		os.Exit(1)
	}
}
