// Command clownlzss is a thin file-I/O wrapper around the format
// packages: one subcommand per backend, mirroring original_source's
// mode-dispatch table (`-ch`, `-c`, `-k`, `-kp`, `-ra`, `-r`, `-s`, `-sn`,
// `-f`) plus a shared `--module`/`--module-size` pair.
//
// It is a convenience wrapper, not a contracted interface: the format
// packages' exported functions are the actual deliverable, and this exists
// only to make them runnable from a shell.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/KrysBlu/clownlzss/format/chameleon"
	"github.com/KrysBlu/clownlzss/format/comper"
	"github.com/KrysBlu/clownlzss/format/faxman"
	"github.com/KrysBlu/clownlzss/format/kosinski"
	"github.com/KrysBlu/clownlzss/format/kosinskiplus"
	"github.com/KrysBlu/clownlzss/format/rage"
	"github.com/KrysBlu/clownlzss/format/rocket"
	"github.com/KrysBlu/clownlzss/format/saxman"
)

const defaultModuleSize = 0x1000

var moduleFlags = []cli.Flag{
	&cli.BoolFlag{
		Name:  "module",
		Usage: "compress into modules",
	},
	&cli.IntFlag{
		Name:  "module-size",
		Usage: "controls the module size used by --module",
		Value: defaultModuleSize,
	},
}

// plainBackend adapts a format package's Compress/ModuledCompress pair
// (the ones that take no extra arguments) to a single shape the command
// table below can dispatch through uniformly.
type plainBackend struct {
	compress        func(data []byte) []byte
	moduledCompress func(data []byte, moduleSize int) ([]byte, error)
}

func (b plainBackend) run(cctx *cli.Context, data []byte) ([]byte, error) {
	if cctx.Bool("module") {
		return b.moduledCompress(data, cctx.Int("module-size"))
	}
	return b.compress(data), nil
}

func formatCommand(name, usage string, backend plainBackend) *cli.Command {
	return &cli.Command{
		Name:      name,
		Usage:     usage,
		ArgsUsage: "<in-filename> [out-filename]",
		Flags:     moduleFlags,
		Action: func(cctx *cli.Context) error {
			return runCompress(cctx, backend.run)
		},
	}
}

func runCompress(cctx *cli.Context, compress func(*cli.Context, []byte) ([]byte, error)) error {
	if cctx.Args().Len() < 1 {
		return cli.Exit("expected an input filename", 1)
	}

	inFilename := cctx.Args().Get(0)
	outFilename := cctx.Args().Get(1)
	if outFilename == "" {
		outFilename = inFilename + ".out"
	}

	data, err := os.ReadFile(inFilename)
	if err != nil {
		return fmt.Errorf("reading input file: %w", err)
	}

	compressed, err := compress(cctx, data)
	if err != nil {
		return fmt.Errorf("compressing: %w", err)
	}

	if err := os.WriteFile(outFilename, compressed, 0644); err != nil {
		return fmt.Errorf("writing output file: %w", err)
	}

	fmt.Printf("%s: %d -> %d bytes\n", inFilename, len(data), len(compressed))
	return nil
}

func main() {
	app := &cli.App{
		Name:  "clownlzss",
		Usage: "LZSS-family compressor for a handful of retro formats",
		Commands: []*cli.Command{
			formatCommand("ch", "compress in Chameleon format", plainBackend{chameleon.Compress, chameleon.ModuledCompress}),
			formatCommand("c", "compress in Comper format",
				plainBackend{
					compress: func(data []byte) []byte {
						out, err := comper.Compress(data)
						if err != nil {
							return nil
						}
						return out
					},
					moduledCompress: comper.ModuledCompress,
				}),
			formatCommand("k", "compress in Kosinski format", plainBackend{kosinski.Compress, kosinski.ModuledCompress}),
			formatCommand("kp", "compress in Kosinski+ format", plainBackend{kosinskiplus.Compress, kosinskiplus.ModuledCompress}),
			formatCommand("ra", "compress in Rage format", plainBackend{rage.Compress, rage.ModuledCompress}),
			formatCommand("r", "compress in Rocket format", plainBackend{rocket.Compress, rocket.ModuledCompress}),
			{
				Name:      "s",
				Usage:     "compress in Saxman format",
				ArgsUsage: "<in-filename> [out-filename]",
				Flags:     moduleFlags,
				Action: func(cctx *cli.Context) error {
					return runCompress(cctx, func(cctx *cli.Context, data []byte) ([]byte, error) {
						if cctx.Bool("module") {
							return saxman.ModuledCompress(data, true, cctx.Int("module-size"))
						}
						return saxman.Compress(data, true), nil
					})
				},
			},
			{
				Name:      "sn",
				Usage:     "compress in Saxman format (with no header)",
				ArgsUsage: "<in-filename> [out-filename]",
				Flags:     moduleFlags,
				Action: func(cctx *cli.Context) error {
					return runCompress(cctx, func(cctx *cli.Context, data []byte) ([]byte, error) {
						if cctx.Bool("module") {
							return saxman.ModuledCompress(data, false, cctx.Int("module-size"))
						}
						return saxman.Compress(data, false), nil
					})
				},
			},
			formatCommand("f", "compress in Faxman format", plainBackend{faxman.Compress, faxman.ModuledCompress}),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
