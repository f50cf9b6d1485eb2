// Command tnk compiles the accepted source-language subset (spec §1, §6)
// to Rust, either as a standalone file or a full Cargo project wired
// against the bridge runtime crate. Flag parsing follows the teacher's
// cmd/funxy/main.go style: stdlib flag for options, positional argv
// walking for the source path, no CLI framework.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"

	"github.com/tanep3/Tsuchinoko/internal/bridge"
	"github.com/tanep3/Tsuchinoko/internal/codegen"
	"github.com/tanep3/Tsuchinoko/internal/config"
	"github.com/tanep3/Tsuchinoko/internal/pipeline"
	"github.com/tanep3/Tsuchinoko/internal/project"
)

const (
	exitSuccess     = 0
	exitDiagnostics = 1
	exitIOFailure   = 2
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(argv []string) int {
	fs := flag.NewFlagSet("tnk", flag.ContinueOnError)
	output := fs.String("o", "", "standalone mode output file (default: stdout)")
	projectDir := fs.String("project", "", "project mode output directory")
	workerPath := fs.String("worker", "", "override the configured worker companion script path")
	batchSize := fs.Int("batch-size", config.DefaultIteratorBatchSize, "iterator batch size (B)")
	bridgeConfigPath := fs.String("bridge-config", "tnk-bridge.yaml", "path to the bridge configuration file")

	if err := fs.Parse(argv); err != nil {
		return exitIOFailure
	}
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: tnk [-o output] [--project dir] [--worker path] [--batch-size n] <source>")
		return exitIOFailure
	}
	sourcePath := fs.Arg(0)

	source, err := os.ReadFile(sourcePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tnk: %v\n", err)
		return exitIOFailure
	}

	bridgeCfg, err := config.LoadBridgeConfig(*bridgeConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tnk: %v\n", err)
		return exitIOFailure
	}
	if *workerPath != "" {
		bridgeCfg.WorkerPath = *workerPath
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "batch-size" && *batchSize > 0 {
			bridgeCfg.BatchSize = *batchSize
		}
	})

	mode := codegen.Standalone
	if *projectDir != "" {
		mode = codegen.Project
	}

	ctx := pipeline.Standard(mode).Run(&pipeline.Context{
		FilePath: sourcePath,
		Source:   string(source),
	})

	colored := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
	if ctx.Errors.HasErrors() {
		for _, e := range ctx.Errors.Errors() {
			printDiagnostic(e, colored)
		}
		return exitDiagnostics
	}

	if mode == codegen.Project {
		return writeProject(*projectDir, ctx.Output, bridgeCfg)
	}
	return writeStandalone(*output, ctx.Output)
}

func writeStandalone(output, source string) int {
	if output == "" {
		fmt.Print(source)
		return exitSuccess
	}
	if err := os.WriteFile(output, []byte(source), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "tnk: writing %s: %v\n", output, err)
		return exitIOFailure
	}
	return exitSuccess
}

func writeProject(dir, source string, bridgeCfg *config.BridgeConfig) int {
	name := filepath.Base(dir)
	if name == "" || name == "." || name == "/" {
		name = "tnk_out"
	}
	res, err := project.Assemble(project.Config{Name: name, Dir: dir}, source)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tnk: %v\n", err)
		return exitIOFailure
	}

	script := bridge.RenderWorkerScript(bridgeCfg.ForbiddenNames, bridgeCfg.ForbiddenPrefixes)
	workerOut := filepath.Join(dir, "worker", "tnk_worker.py")
	if err := os.WriteFile(workerOut, []byte(script), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "tnk: writing %s: %v\n", workerOut, err)
		return exitIOFailure
	}

	crateSrc := bridge.RuntimeCrateSource(bridgeCfg.WorkerPath, bridgeCfg.BatchSize, bridgeCfg.RPCTimeoutMS)
	crateSrcDir := filepath.Join(dir, "bridge_runtime", "src")
	if err := os.MkdirAll(crateSrcDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "tnk: %v\n", err)
		return exitIOFailure
	}
	libPath := filepath.Join(crateSrcDir, "lib.rs")
	if err := os.WriteFile(libPath, []byte(crateSrc), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "tnk: writing %s: %v\n", libPath, err)
		return exitIOFailure
	}

	fmt.Printf("tnk: wrote project to %s (main: %s)\n", res.Dir, res.MainPath)
	return exitSuccess
}

func printDiagnostic(e interface{ Error() string }, colored bool) {
	if colored {
		fmt.Fprintf(os.Stderr, "\x1b[31m%s\x1b[0m\n", e.Error())
		return
	}
	fmt.Fprintln(os.Stderr, e.Error())
}
