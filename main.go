package main

import (
	"os"

	"github.com/bitrise-io/go-steputils/stepconf"
	"github.com/bitrise-io/go-utils/log"
)

const stepID = "xcode-localization"

type config struct {
	ProjectPath        string `env:"project_path,required"`
	InfoPlistPath      string `env:"info_plist_path"`
	Languages          string `env:"languages,required"`
	LocalesDir         string `env:"locales_dir"`
	LocalizedFiles     string `env:"localized_files"`
	TargetName         string `env:"target_name"`
	ContainerGroup     string `env:"container_group"`
	ClearKnownRegions  string `env:"clear_known_regions,opt[yes,no]"`
	DedupeKnownRegions string `env:"dedupe_known_regions,opt[yes,no]"`
	DevelopmentRegion  string `env:"development_region"`
	VerboseLog         string `env:"verbose_log,opt[yes,no]"`
}

func failf(format string, args ...interface{}) {
	log.Errorf(format, args...)
	os.Exit(1)
}

func main() {
	var cfg config
	if err := stepconf.Parse(&cfg); err != nil {
		failf("Invalid configuration: %s", err)
	}
	stepconf.Print(cfg)
	log.SetEnableDebugLog(cfg.VerboseLog == "yes")

	opts, err := newOptions(cfg)
	if err != nil {
		failf("Invalid configuration: %s", err)
	}

	if err := run(opts); err != nil {
		// already reported by run
		os.Exit(1)
	}
	log.Donef("Localization finished.")
}
