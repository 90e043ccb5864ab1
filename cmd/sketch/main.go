package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"sketchlang/pkg/images"
	"sketchlang/pkg/infer"
	"sketchlang/pkg/lang"
	"sketchlang/pkg/raster"
	"sketchlang/pkg/render"
	"sketchlang/pkg/watch"
)

func main() {
	output := flag.String("o", "", "output file path (default: input name with .svg/.png)")
	pngOut := flag.Bool("png", false, "write a PNG bitmap instead of SVG")
	fontPath := flag.String("font", "", "TTF font file for PNG text rendering")
	assets := flag.String("assets", "", "base directory for image sources (default: input file's directory)")
	serve := flag.String("serve", "", "serve a live-reloading preview on this address (e.g. :8080)")
	importURL := flag.String("import", "", "infer wireframe source from a webpage URL and print it")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: sketch [flags] <input.sketch>\n\nFlags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *importURL != "" {
		source, err := infer.FromURL(*importURL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error importing %s: %v\n", *importURL, err)
			os.Exit(1)
		}
		fmt.Print(source)
		return
	}

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}
	input := flag.Arg(0)
	base := *assets
	if base == "" {
		base = filepath.Dir(input)
	}
	loader := images.NewDirLoader(base)

	if *serve != "" {
		serveLive(input, *serve, loader)
		return
	}

	svg, doc, err := compile(input, loader)
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	out := *output
	if *pngOut {
		if out == "" {
			out = replaceExt(input, ".png")
		}
		data, err := raster.PNG(doc, raster.Options{Images: loader, FontPath: *fontPath})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding PNG: %v\n", err)
			os.Exit(1)
		}
		writeOut(out, data)
		return
	}
	if out == "" {
		out = replaceExt(input, ".svg")
	}
	writeOut(out, []byte(svg))
}

// compile runs the whole pipeline for one source file.
func compile(input string, loader images.Loader) (string, *lang.Document, error) {
	source, err := os.ReadFile(input)
	if err != nil {
		return "", nil, err
	}
	doc, err := lang.Parse(string(source))
	if err != nil {
		return "", nil, err
	}
	return render.Render(doc, render.Options{Images: loader}), doc, nil
}

// serveLive compiles once, then recompiles on every save and pushes the
// result to the preview page. Compile errors show up in the page instead
// of stopping the server.
func serveLive(input, addr string, loader images.Loader) {
	server := watch.NewServer()
	rebuild := func() {
		svg, _, err := compile(input, loader)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s\n", errorText(err))
		}
		server.Update(svg, err)
	}
	rebuild()

	stop, err := watch.Watch(input, rebuild)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error watching %s: %v\n", input, err)
		os.Exit(1)
	}
	defer stop()

	if err := server.ListenAndServe(addr); err != nil {
		fmt.Fprintf(os.Stderr, "Error serving preview: %v\n", err)
		os.Exit(1)
	}
}

// printError shows located errors with their caret excerpt; anything else
// prints plainly.
func printError(err error) {
	fmt.Fprintln(os.Stderr, errorText(err))
}

func errorText(err error) string {
	var langErr *lang.Error
	if errors.As(err, &langErr) {
		return langErr.Excerpt()
	}
	return "Error: " + err.Error()
}

func writeOut(path string, data []byte) {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", path, err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "Wrote %s\n", path)
}

func replaceExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}
