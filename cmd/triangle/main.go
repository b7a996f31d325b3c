package main

import (
	"fmt"
	"os"

	"github.com/tinyrange/glcube/internal/config"
	"github.com/tinyrange/glcube/internal/demo"
)

func main() {
	cfg, err := config.ForVariant(config.Triangle)
	if err != nil {
		fmt.Fprintf(os.Stderr, "triangle: %v\n", err)
		os.Exit(1)
	}
	demo.Main("triangle", cfg)
}
