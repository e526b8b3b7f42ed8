package main

import (
	"fmt"

	"github.com/k0kubun/pp/v3"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"repairtree/format"
	"repairtree/grammar"
	"repairtree/render"
	"repairtree/tree"
)

func newVisualizeCmd(gf *globalFlags) *cobra.Command {
	var (
		output        string
		extensions    []string
		printGrammar  bool
		printSequence bool
		noImage       bool
		dumpTree      bool
	)

	cmd := &cobra.Command{
		Use:   "repairtree",
		Short: "Print the parse tree of RePair grammars",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := gf.load()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if printGrammar {
				if err := g.Dump(out); err != nil {
					return fmt.Errorf("print grammar: %w", err)
				}
			}
			if printSequence {
				if err := g.DumpSequence(out); err != nil {
					return fmt.Errorf("print sequence: %w", err)
				}
			}

			forest := tree.Build(g)
			log.WithFields(log.Fields{
				"roots":  len(forest),
				"nodes":  tree.Count(forest),
				"height": tree.Height(forest),
			}).Info("parse tree built")

			if dumpTree {
				printer := pp.New()
				printer.SetOutput(out)
				printer.SetColoringEnabled(false)
				if _, err := printer.Println(forest); err != nil {
					return fmt.Errorf("dump tree: %w", err)
				}
			}

			if noImage {
				return nil
			}

			if _, err := render.WriteFiles(output, extensions, render.Layout(forest)); err != nil {
				return fmt.Errorf("render parse tree: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "parse_tree", "Prefix of output file.")
	cmd.Flags().StringSliceVarP(&extensions, "extension", "e", []string{"png"}, "One or more image file extensions (png, svg, dot).")
	cmd.Flags().BoolVar(&printGrammar, "print_grammar", false, "If set, print the parsed grammar rules to the console.")
	cmd.Flags().BoolVar(&printSequence, "print_sequence", false, "If set, print the compressed sequence to the console.")
	cmd.Flags().BoolVar(&noImage, "no_image", false, "If set, do not produce the parse tree image.")
	cmd.Flags().BoolVar(&dumpTree, "dump_tree", false, "If set, dump the expanded parse tree structure to the console.")

	return cmd
}

func (gf *globalFlags) load() (*grammar.Grammar, error) {
	p, err := format.ParseProgram(gf.program)
	if err != nil {
		return nil, err
	}
	log.Infof("Compressed sequence file location: %s", gf.sequence)
	log.Infof("Rule file location: %s", gf.rules)
	return format.DecodeFiles(p, gf.sequence, gf.rules)
}
