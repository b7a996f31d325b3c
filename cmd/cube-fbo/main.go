package main

import (
	"fmt"
	"os"

	"github.com/tinyrange/glcube/internal/config"
	"github.com/tinyrange/glcube/internal/demo"
)

func main() {
	cfg, err := config.ForVariant(config.CubeFBO)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cube-fbo: %v\n", err)
		os.Exit(1)
	}
	demo.Main("cube-fbo", cfg)
}
