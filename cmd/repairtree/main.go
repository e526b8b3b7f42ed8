package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type globalFlags struct {
	sequence string
	rules    string
	program  string
	verbose  bool
	logFile  string

	logOut *os.File
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	gf := &globalFlags{}

	rootCmd := newVisualizeCmd(gf)
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return gf.setupLogging()
	}
	rootCmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		if gf.logOut != nil {
			gf.logOut.Close()
			gf.logOut = nil
		}
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&gf.sequence, "sequence", "s", "", "Path to the compressed sequence file.")
	pf.StringVarP(&gf.rules, "rules", "r", "", "Path to grammar rule file.")
	pf.StringVarP(&gf.program, "program", "p", "rlz-repair", "Compression program used (repair, rlz-repair, bigrepair, rerepair).")
	pf.BoolVarP(&gf.verbose, "verbose", "v", false, "Print more infos: (DebugLevel)")
	pf.StringVar(&gf.logFile, "log", "", "Logfile")
	rootCmd.MarkPersistentFlagRequired("sequence")
	rootCmd.MarkPersistentFlagRequired("rules")

	rootCmd.AddCommand(newAccessCmd(gf))
	return rootCmd
}

func (gf *globalFlags) setupLogging() error {
	if gf.verbose {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.InfoLevel)
	}
	if gf.logFile != "" {
		f, err := os.OpenFile(gf.logFile, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("create logfile %s: %w", gf.logFile, err)
		}
		gf.logOut = f
		log.SetOutput(f)
	}

	log.WithFields(log.Fields{
		"sequence": gf.sequence,
		"rules":    gf.rules,
		"program":  gf.program,
	}).Debug("input files")
	return nil
}
