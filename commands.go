package main

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-faster/jx"
	"golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"

	"nesinspect/chr"
	"nesinspect/ines"
	"nesinspect/inspect"
	"nesinspect/log"
)

func infoMain(args Info, w io.Writer) error {
	hdr, err := ines.ReadHeader(args.RomPath)
	if err != nil {
		return err
	}
	return hdr.WriteInfos(w)
}

// disasmOptions merges command line flags and configuration.
func disasmOptions(maxSteps int, reset, strict bool, cfg Config) []inspect.Option {
	if maxSteps <= 0 {
		maxSteps = cfg.Disasm.MaxSteps
	}
	opts := []inspect.Option{
		inspect.WithMaxSteps(maxSteps),
		inspect.WithResetTrace(reset || cfg.Disasm.TraceReset),
	}
	if strict {
		opts = append(opts, inspect.Strict())
	}
	return opts
}

func disasmMain(args Disasm, cfg Config) error {
	var w io.Writer = os.Stdout
	if args.Out != nil {
		// kong creates the file while parsing the command line.
		defer args.Out.Close()
		w = args.Out
	}

	res, err := inspect.ParseFile(args.RomPath, disasmOptions(args.MaxSteps, args.Reset, args.Strict, cfg)...)
	if err != nil {
		return err
	}
	if _, err := res.Disasm.WriteTo(w); err != nil {
		return err
	}

	if err := res.Disasm.Err(); err != nil {
		log.ModApp.WarnZ("incomplete disassembly").Error("err", err).End()
	}
	return nil
}

func chrMain(args CHR, cfg Config) error {
	pal := cfg.Palette.Colors
	if args.Palette != "" {
		var err error
		if pal, err = chr.ParsePalette(args.Palette); err != nil {
			return err
		}
	}
	scale := args.Scale
	if scale <= 0 {
		scale = cfg.Export.Scale
	}

	res, err := inspect.ParseFile(args.RomPath, inspect.SkipDisassembly())
	if err != nil {
		return err
	}
	if len(res.Graphics.PatternTables) == 0 {
		fmt.Println("no CHR ROM (the cartridge uses CHR RAM)")
		return nil
	}

	if err := os.MkdirAll(args.Out, DefaultFileMode); err != nil {
		return err
	}

	base := strings.TrimSuffix(filepath.Base(args.RomPath), filepath.Ext(args.RomPath))
	for i := range res.Graphics.PatternTables {
		img := scaleImage(chr.RenderImage(&res.Graphics.PatternTables[i], pal), scale)
		path := filepath.Join(args.Out, fmt.Sprintf("%s.%d.png", base, i))
		if err := writePNG(path, img); err != nil {
			return err
		}
		fmt.Println("wrote", path)
	}
	return nil
}

// scaleImage enlarges src by an integer factor, without smoothing.
func scaleImage(src image.Image, scale int) image.Image {
	if scale <= 1 {
		return src
	}
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func dumpMain(args Dump, cfg Config) error {
	opts := disasmOptions(0, false, false, cfg)
	if args.NoDisasm {
		opts = append(opts, inspect.SkipDisassembly())
	}
	res, err := inspect.ParseFile(args.RomPath, opts...)
	if err != nil {
		return err
	}

	var e jx.Encoder
	e.SetIdent(args.Indent)
	res.Encode(&e)
	if _, err := os.Stdout.Write(e.Bytes()); err != nil {
		return err
	}
	_, err = fmt.Println()
	return err
}

// batchMain parses all ROMs and prints one line per ROM, in the order they
// were given. It reports whether all of them could be parsed.
func batchMain(args Batch, cfg Config, w io.Writer) bool {
	jobs := args.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	lines, ok := checkRoms(args.RomPaths, jobs, disasmOptions(0, false, false, cfg))
	for _, l := range lines {
		fmt.Fprintln(w, l)
	}
	return ok
}

func checkRoms(paths []string, jobs int, opts []inspect.Option) (lines []string, ok bool) {
	lines = make([]string, len(paths))
	errs := make([]error, len(paths))

	var g errgroup.Group
	g.SetLimit(jobs)
	for i, path := range paths {
		g.Go(func() error {
			res, err := inspect.ParseFile(path, opts...)
			if err != nil {
				errs[i] = err
				lines[i] = "FAIL " + err.Error()
				return nil
			}
			lines[i] = "ok   " + path + ": " + summary(res)
			return nil
		})
	}
	g.Wait()

	ok = true
	for _, err := range errs {
		if err != nil {
			ok = false
		}
	}
	return lines, ok
}

func summary(res *inspect.Result) string {
	hdr := &res.Header
	s := fmt.Sprintf("%s, mapper %d, PRG %dKB, CHR %dKB, %d pattern tables",
		hdr.Format, hdr.Mapper, hdr.PRGROMSize/1024, hdr.CHRROMSize/1024, len(res.Graphics.PatternTables))
	if res.Disasm != nil {
		s += fmt.Sprintf(", %d instructions", len(res.Disasm.Instructions))
		if res.Disasm.Err() != nil {
			s += " (incomplete)"
		}
	}
	return s
}

func configMain(args ConfigCmd, cfg Config, path string, w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return err
	}
	if args.Save {
		if err := SaveConfig(cfg, path); err != nil {
			return err
		}
		fmt.Fprintln(w, "# saved to", configPath(path))
	}
	return nil
}
