// Command shorthand is an interactive host for the autoformat engine: it
// feeds typed characters through the shortcut tables against an in-memory
// document, and can load and save the document as markdown.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/mdedit/shorthand/internal/termui"
)

func main() {
	file := flag.String("f", "", "markdown file to load into the session")
	flag.Parse()

	var sess session
	sess.init()
	if *file != "" {
		if err := sess.load(*file); err != nil {
			log.Fatalln(err)
		}
	}

	if err := termui.StreamRequest(os.Stdin).Serve(os.Stdout, &sess); err != nil {
		log.Fatalln(err)
	}
}
