package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/tinyrange/glcube/internal/config"
	"github.com/tinyrange/glcube/internal/demo"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "glcube: %v\n", err)
		os.Exit(1)
	}
	if cfg == nil {
		return
	}
	demo.Main("glcube", *cfg)
}

func loadConfig() (*config.Config, error) {
	configPath := flag.String("config", "", "YAML settings file")
	variant := flag.String("variant", "", "Variant to run, overriding the config file")
	frames := flag.Int("frames", -1, "Stop after this many frames (0 runs until interrupted)")
	writeConfig := flag.String("write-config", "", "Write the resolved settings to this file and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Render a rotating OpenGL ES 2 demo through EGL.\n\n")
		fmt.Fprintf(os.Stderr, "Variants: %s\n\n", variantNames())
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	var (
		cfg config.Config
		err error
	)
	switch {
	case *configPath != "":
		cfg, err = config.LoadVariant(*configPath, config.Variant(*variant))
	case *variant != "":
		cfg, err = config.ForVariant(config.Variant(*variant))
	default:
		cfg, err = config.ForVariant(config.Cube)
	}
	if err != nil {
		return nil, err
	}

	if *frames >= 0 {
		cfg.Frames = *frames
	}

	if *writeConfig != "" {
		if err := config.Write(*writeConfig, cfg); err != nil {
			return nil, err
		}
		return nil, nil
	}
	return &cfg, nil
}

func variantNames() string {
	names := make([]string, len(config.Variants))
	for i, v := range config.Variants {
		names[i] = string(v)
	}
	return strings.Join(names, ", ")
}
