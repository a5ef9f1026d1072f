// Copyright (c) 2025 Niema Moshiri and The Zaparoo Project.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of go-romtext.
//
// go-romtext is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// go-romtext is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with go-romtext.  If not, see <https://www.gnu.org/licenses/>.


// Command romtext extracts text from Game Boy family ROMs and injects
// translations back.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	romtext "github.com/ZaparooProject/go-romtext"
	"github.com/ZaparooProject/go-romtext/config"
	"github.com/ZaparooProject/go-romtext/export"
	"github.com/spf13/afero"
)

const appVersion = "0.1.0"

// errUsage marks errors caused by bad arguments; the usage text has already
// been printed.
var errUsage = errors.New("usage error")

// common holds the flags shared by every subcommand.
type common struct {
	input     string
	pluginDir string
	localeDir string
	debug     bool
	quiet     bool
}

func (c *common) register(fs *flag.FlagSet) {
	fs.StringVar(&c.input, "i", "", "input ROM, archive or archive path (required)")
	fs.StringVar(&c.pluginDir, "plugins", "", "directory of plugin descriptor JSON files")
	fs.StringVar(&c.localeDir, "locales", "", "directory of <lang>/charset.json tables")
	fs.BoolVar(&c.debug, "debug", false, "enable debug logging")
	fs.BoolVar(&c.quiet, "quiet", false, "only log errors")
}

// app carries what subcommands need from the process.
type app struct {
	fs     afero.Fs
	stdout io.Writer
	stderr io.Writer
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	a := &app{fs: afero.NewOsFs(), stdout: os.Stdout, stderr: os.Stderr}
	code := a.run(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}

func (a *app) usage() {
	fmt.Fprintf(a.stderr, "Usage: romtext <command> [options]\n\n")
	fmt.Fprintf(a.stderr, "Extracts and injects text in GB, GBC and GBA ROMs.\n\n")
	fmt.Fprintf(a.stderr, "Commands:\n")
	fmt.Fprintf(a.stderr, "  info      show header details and the plugin that applies\n")
	fmt.Fprintf(a.stderr, "  extract   dump text as txt, csv, po or json\n")
	fmt.Fprintf(a.stderr, "  inject    write translations from a CSV back into the ROM\n")
	fmt.Fprintf(a.stderr, "  plugins   list available plugins\n")
	fmt.Fprintf(a.stderr, "  version   print version and exit\n")
	fmt.Fprintf(a.stderr, "\nExamples:\n")
	fmt.Fprintf(a.stderr, "  romtext info -i game.gb\n")
	fmt.Fprintf(a.stderr, "  romtext extract -i roms.zip/game.gba -o game.csv\n")
	fmt.Fprintf(a.stderr, "  romtext inject -i game.gb -segment dialogues -t game.csv -o game_en.gb\n")
}

// run executes one subcommand and returns the process exit code.
func (a *app) run(ctx context.Context, args []string) int {
	if len(args) == 0 {
		a.usage()
		return 2
	}

	var err error
	switch cmd, rest := args[0], args[1:]; cmd {
	case "info":
		err = a.info(ctx, rest)
	case "extract":
		err = a.extract(ctx, rest)
	case "inject":
		err = a.inject(ctx, rest)
	case "plugins":
		err = a.plugins(rest)
	case "version", "-version", "--version":
		fmt.Fprintf(a.stdout, "romtext version %s\n", appVersion)
	case "help", "-h", "-help", "--help":
		a.usage()
	default:
		fmt.Fprintf(a.stderr, "Error: unknown command %q\n\n", cmd)
		a.usage()
		return 2
	}

	switch {
	case err == nil:
		return 0
	case errors.Is(err, errUsage), errors.Is(err, flag.ErrHelp):
		return 2
	default:
		fmt.Fprintf(a.stderr, "Error: %v\n", err)
		return 1
	}
}

func (a *app) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	return fs
}

// parse parses args and checks that an input was given.
func (a *app) parse(fs *flag.FlagSet, c *common, args []string) error {
	if err := fs.Parse(args); err != nil {
		return err //nolint:wrapcheck // flag already printed the problem
	}
	if c.input == "" {
		fmt.Fprintf(a.stderr, "Error: input file required (-i)\n")
		fs.Usage()
		return errUsage
	}
	return nil
}

func (a *app) tool(c *common) (*romtext.Tool, error) {
	return romtext.New(romtext.Options{ //nolint:wrapcheck // facade errors are already descriptive
		Logger:    config.CreateLogger(c.debug, c.quiet),
		Fs:        a.fs,
		PluginDir: c.pluginDir,
		LocaleDir: c.localeDir,
	})
}

func (a *app) info(ctx context.Context, args []string) error {
	var c common
	fs := a.flagSet("info")
	c.register(fs)
	jsonOutput := fs.Bool("json", false, "output as JSON")
	if err := a.parse(fs, &c, args); err != nil {
		return err
	}

	tool, err := a.tool(&c)
	if err != nil {
		return err
	}
	img, err := tool.OpenFile(c.input)
	if err != nil {
		return err //nolint:wrapcheck // facade errors are already descriptive
	}
	info := tool.Describe(ctx, img)

	if *jsonOutput {
		enc := json.NewEncoder(a.stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(info); err != nil {
			return fmt.Errorf("encode JSON: %w", err)
		}
		return nil
	}

	fmt.Fprintf(a.stdout, "Platform: %s\n", info.Platform)
	fmt.Fprintf(a.stdout, "Title: %s\n", info.Title)
	fmt.Fprintf(a.stdout, "Game ID: %s\n", info.GameID)
	fmt.Fprintf(a.stdout, "Size: %d\n", info.Size)
	fmt.Fprintf(a.stdout, "Plugin: %s\n", info.Plugin)
	if info.GameCode != "" {
		fmt.Fprintf(a.stdout, "Game Code: %s\n", info.GameCode)
		fmt.Fprintf(a.stdout, "Maker Code: %s\n", info.MakerCode)
		fmt.Fprintf(a.stdout, "Logo Valid: %t\n", info.LogoValid)
		return nil
	}
	fmt.Fprintf(a.stdout, "Cartridge Type: %s\n", info.CartridgeType)
	fmt.Fprintf(a.stdout, "Controller: %s\n", info.Controller)
	fmt.Fprintf(a.stdout, "ROM Size: %d (%d banks)\n", info.DeclaredROMSize, info.ROMBanks)
	fmt.Fprintf(a.stdout, "RAM Size: %d\n", info.RAMSize)
	if info.Publisher != "" {
		fmt.Fprintf(a.stdout, "Publisher: %s\n", info.Publisher)
	}
	fmt.Fprintf(a.stdout, "Header Checksum Valid: %t\n", info.HeaderChecksumValid)
	return nil
}

func (a *app) extract(ctx context.Context, args []string) error {
	var c common
	fs := a.flagSet("extract")
	c.register(fs)
	output := fs.String("o", "", "output file (stdout if omitted)")
	format := fs.String("format", "", "txt, csv, po or json (default from -o extension, else txt)")
	validate := fs.Bool("validate", false, "print a readability report to stderr")
	if err := a.parse(fs, &c, args); err != nil {
		return err
	}

	name := *format
	if name == "" {
		name = string(export.FormatText)
		if ext := filepath.Ext(*output); ext != "" {
			name = ext
		}
	}
	f, err := export.ParseFormat(name)
	if err != nil {
		return err //nolint:wrapcheck // already names the format
	}

	tool, err := a.tool(&c)
	if err != nil {
		return err
	}
	img, err := tool.OpenFile(c.input)
	if err != nil {
		return err //nolint:wrapcheck // facade errors are already descriptive
	}
	res, err := tool.Extract(ctx, img)
	if err != nil {
		return err //nolint:wrapcheck // pipeline errors are already descriptive
	}

	for _, p := range res.Problems {
		fmt.Fprintf(a.stderr, "Warning: segment %s: %s: %v\n", p.Segment, p.Kind, p.Err)
	}
	if *validate {
		report := romtext.Validate(res)
		fmt.Fprintf(a.stderr, "Validation: %d/%d messages readable (%.1f%%)\n",
			report.Valid, report.Total, report.SuccessRate*100)
		for _, issue := range report.Issues {
			fmt.Fprintf(a.stderr, "  %s[%d] at 0x%04X: %s\n", issue.Segment, issue.Index, issue.Offset, issue.Kind)
		}
	}

	if *output == "" {
		return export.Write(a.stdout, f, res) //nolint:wrapcheck // export errors name the format
	}

	file, err := a.fs.Create(*output)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := export.Write(file, f, res); err != nil {
		_ = file.Close()
		return err //nolint:wrapcheck // export errors name the format
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}
	return nil
}

func (a *app) inject(ctx context.Context, args []string) error {
	var c common
	fs := a.flagSet("inject")
	c.register(fs)
	segment := fs.String("segment", "", "segment to patch (required)")
	translations := fs.String("t", "", "translation CSV written by extract (required)")
	output := fs.String("o", "", "output ROM; a .gz, .zst, .xz, .lzma, .lz4 or .br suffix compresses it (required)")
	if err := a.parse(fs, &c, args); err != nil {
		return err
	}
	if *segment == "" || *translations == "" || *output == "" {
		fmt.Fprintf(a.stderr, "Error: -segment, -t and -o are required\n")
		fs.Usage()
		return errUsage
	}

	tool, err := a.tool(&c)
	if err != nil {
		return err
	}
	img, err := tool.OpenFile(c.input)
	if err != nil {
		return err //nolint:wrapcheck // facade errors are already descriptive
	}

	file, err := a.fs.Open(*translations)
	if err != nil {
		return fmt.Errorf("open translations: %w", err)
	}
	defer func() { _ = file.Close() }()

	texts, err := export.ReadTranslations(file, *segment)
	if err != nil {
		return err //nolint:wrapcheck // already names the CSV problem
	}

	res, err := tool.Inject(ctx, img, *segment, texts)
	if err != nil {
		return err //nolint:wrapcheck // pipeline errors are already descriptive
	}
	if err := tool.Save(*output, res.ROM); err != nil {
		return err //nolint:wrapcheck // facade errors are already descriptive
	}

	fmt.Fprintf(a.stdout, "Patched %d message(s) in %s, wrote %s\n", len(res.Changes), *segment, *output)
	return nil
}

func (a *app) plugins(args []string) error {
	var c common
	fs := a.flagSet("plugins")
	c.register(fs)
	if err := fs.Parse(args); err != nil {
		return err //nolint:wrapcheck // flag already printed the problem
	}

	tool, err := a.tool(&c)
	if err != nil {
		return err
	}
	for _, d := range tool.Plugins() {
		platforms := make([]string, 0, len(d.Platforms))
		for _, p := range d.Platforms {
			platforms = append(platforms, string(p))
		}
		segments := make([]string, 0, len(d.Segments))
		for _, s := range d.Segments {
			segments = append(segments, s.Name)
		}
		fmt.Fprintf(a.stdout, "%s\t%s\t%s\t%s\n", d.Name, strings.Join(platforms, ","), d.Source, strings.Join(segments, ","))
	}
	return nil
}
