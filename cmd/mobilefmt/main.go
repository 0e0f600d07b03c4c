package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/blogkey/blogkey/internal/importer"
	"github.com/blogkey/blogkey/internal/reflow"
	"github.com/blogkey/blogkey/internal/render"
)

// mobilefmt reflows a document for mobile reading. Input comes from a file
// argument or stdin; output goes to stdout.
func main() {
	target := flag.Int("target", reflow.DefaultTarget, "target line width in characters")
	htmlOut := flag.Bool("html", false, "render markdown to HTML with <br> line breaks")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] [file]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "reflows text, markdown, html, csv, pdf or docx for mobile reading\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	var (
		text string
		err  error
	)
	if flag.NArg() > 0 {
		text, err = extractFile(flag.Arg(0))
	} else {
		text, err = readStdin()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	cfg := reflow.Config{Target: *target}
	if *htmlOut {
		body, err := render.ToHTML(text)
		if err != nil {
			fmt.Fprintln(os.Stderr, "error: render:", err)
			os.Exit(1)
		}
		fmt.Println(reflow.FormatHTML(body, cfg))
		return
	}
	fmt.Println(reflow.FormatText(text, cfg))
}

func extractFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	ext, err := importer.ForFile(path)
	if err != nil {
		return "", err
	}
	return ext.Extract(f, path)
}

func readStdin() (string, error) {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
