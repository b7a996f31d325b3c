package main

import (
	"fmt"
	"os"

	"github.com/tinyrange/glcube/internal/config"
	"github.com/tinyrange/glcube/internal/demo"
)

func main() {
	cfg, err := config.ForVariant(config.CubeYV12)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cube-yv12: %v\n", err)
		os.Exit(1)
	}
	demo.Main("cube-yv12", cfg)
}
