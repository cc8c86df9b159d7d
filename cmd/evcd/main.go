package main

import (
	"flag"
	"log"

	"github.com/Na1awut/NDLP/internal/di"
	"github.com/Na1awut/NDLP/internal/structures"
)

func main() {
	flags := &structures.CliFlags{}
	flag.StringVar(&flags.ConfigPath, "config", "config.yaml", "path to the configuration file")
	flag.BoolVar(&flags.DebugMode, "debug", false, "enable debug logging")
	flag.Parse()

	_, err := di.InitApp(flags)
	if err != nil {
		log.Fatalf("%v", err)
	}
}
