package main

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"runtime"

	"github.com/integrii/flaggy"
	"github.com/jesseduffield/yaml"

	"github.com/SheharaNethkalana/Cryptography-code/pkg/app"
	"github.com/SheharaNethkalana/Cryptography-code/pkg/config"
	"github.com/SheharaNethkalana/Cryptography-code/pkg/modes"
)

var (
	commit      string
	version     = "unversioned"
	date        string
	buildSource = "unknown"

	configFlag    = false
	debuggingFlag = false
	randomIVFlag  = false
)

func main() {
	info := fmt.Sprintf(
		"%s\nDate: %s\nBuildSource: %s\nCommit: %s\nOS: %s\nArch: %s",
		version,
		date,
		buildSource,
		commit,
		runtime.GOOS,
		runtime.GOARCH,
	)

	flaggy.SetName("cryptography-code")
	flaggy.SetDescription("A toy 8-bit substitution-permutation cipher, driven in ECB and CBC modes")

	flaggy.Bool(&configFlag, "c", "config", "Print the default config")
	flaggy.Bool(&debuggingFlag, "d", "debug", "Write a development log to the config directory")
	flaggy.Bool(&randomIVFlag, "r", "random-iv", "Draw a fresh IV and persist it to the config file")
	flaggy.SetVersion(info)

	flaggy.Parse()

	if configFlag {
		var buf bytes.Buffer
		encoder := yaml.NewEncoder(&buf)
		err := encoder.Encode(config.GetDefaultConfig())
		if err != nil {
			log.Fatal(err.Error())
		}
		fmt.Printf("%v\n", buf.String())
		os.Exit(0)
	}

	appConfig, err := config.NewAppConfig("cryptography-code", version, buildSource, debuggingFlag)
	if err != nil {
		log.Fatal(err.Error())
	}

	if randomIVFlag {
		if err := appConfig.WriteToUserConfig(func(uc *config.UserConfig) error {
			iv, err := modes.RandomIV()
			if err != nil {
				return err
			}
			uc.IV = iv
			return nil
		}); err != nil {
			log.Fatal(err.Error())
		}
	}

	demo, err := app.NewApp(appConfig)
	if err == nil {
		err = demo.Run(context.Background())
	}

	if err != nil {
		log.Fatal(err.Error())
	}
}
