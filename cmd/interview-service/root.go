package main

import (
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const app = "interview-service"

var (
	// Used for flags.
	settingsFile string

	rootCmd = &cobra.Command{
		Use:           app,
		Short:         "interview-service runs adaptive technical interviews over HTTP or in the terminal",
		SilenceUsage:  true,
	}
)

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&settingsFile, "config", "", "interview settings file (yaml or json); overrides SETTINGS_PATH")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().String("questions", "", "question bank file (yaml, json or xlsx); overrides QUESTION_BANK_PATH")

	for _, name := range []string{"debug", "questions"} {
		if err := viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name)); err != nil {
			log.Fatalf("binding %s flag: %v", name, err)
		}
	}
}

func initConfig() {
	if settingsFile != "" {
		viper.Set("settings", settingsFile)
	}
}
