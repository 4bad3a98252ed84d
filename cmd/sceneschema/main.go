// Command sceneschema writes the JSON Schema for scene files.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/milk9111/townfolk/scenes"
)

func main() {
	out := flag.String("out", "", "output path (stdout when empty)")
	flag.Parse()

	data, err := scenes.SchemaJSON()
	if err != nil {
		log.Fatal(err)
	}
	data = append(data, '\n')

	if *out == "" {
		if _, err := os.Stdout.Write(data); err != nil {
			log.Fatal(err)
		}
		return
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		log.Fatal(err)
	}
}
