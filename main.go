package main

import (
	"os"
)

func main() {
	cli := parseArgs(os.Args[1:])

	cfg, err := LoadConfigOrDefault(cli.ConfigFile)
	checkf(err, "failed to load configuration")

	switch cli.mode {
	case infoMode:
		checkf(infoMain(cli.Info, os.Stdout), "info")
	case chrMode:
		checkf(chrMain(cli.CHR, cfg), "chr")
	case disasmMode:
		checkf(disasmMain(cli.Disasm, cfg), "disasm")
	case dumpMode:
		checkf(dumpMain(cli.Dump, cfg), "dump")
	case batchMode:
		if !batchMain(cli.Batch, cfg, os.Stdout) {
			os.Exit(1)
		}
	case configMode:
		checkf(configMain(cli.Config, cfg, cli.ConfigFile, os.Stdout), "config")
	}
}
