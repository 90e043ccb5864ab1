// sketchshow opens a desktop window showing the rendered wireframe and
// refreshes it whenever the source file is saved.
package main

import (
	"flag"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"sketchlang/pkg/images"
	"sketchlang/pkg/lang"
	"sketchlang/pkg/raster"
	"sketchlang/pkg/watch"
)

func main() {
	fontPath := flag.String("font", "", "TTF font file for text rendering")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: sketchshow [flags] <input.sketch>\n\nFlags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}
	input := flag.Arg(0)
	loader := images.NewDirLoader(filepath.Dir(input))
	opts := raster.Options{Images: loader, FontPath: *fontPath}

	a := app.New()
	w := a.NewWindow("sketchlang: " + filepath.Base(input))
	w.Resize(fyne.NewSize(1024, 640))

	blank := image.NewRGBA(image.Rect(0, 0, 1280, 720))
	canvasImg := canvas.NewImageFromImage(blank)
	canvasImg.FillMode = canvas.ImageFillContain
	status := widget.NewLabel("")
	w.SetContent(container.NewBorder(nil, status, nil, nil, canvasImg))

	refresh := func() {
		source, err := os.ReadFile(input)
		if err != nil {
			status.SetText("Error: " + err.Error())
			return
		}
		doc, err := lang.Parse(string(source))
		if err != nil {
			status.SetText(err.Error())
			return
		}
		canvasImg.Image = raster.Render(doc, opts)
		canvasImg.Refresh()
		status.SetText(fmt.Sprintf("%d components", len(doc.Components)))
	}
	refresh()

	stop, err := watch.Watch(input, refresh)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error watching %s: %v\n", input, err)
		os.Exit(1)
	}
	defer stop()

	w.ShowAndRun()
}
