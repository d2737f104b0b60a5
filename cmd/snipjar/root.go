package main

import (
	"io"
	"os"

	"snipjar/internal/core/classifier"
	"snipjar/internal/core/rulepack"
	"snipjar/internal/platform/config"
	"snipjar/internal/platform/logger"
	classifysvc "snipjar/internal/services/classify/service"

	"github.com/spf13/cobra"
)

// app carries what every subcommand shares
type app struct {
	in  io.Reader
	out io.Writer

	rulesFile string
	workers   int
	asJSON    bool

	svc *classifysvc.Svc
}

func newRootCmd(in io.Reader, out io.Writer) *cobra.Command {
	a := &app{in: in, out: out}

	root := &cobra.Command{
		Use:           "snipjar",
		Short:         "Classify clipboard snippets",
		Long:          `snipjar runs the snippet classifier locally: single snippets, JSON line batches, and a few helpers.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := config.LoadDotenv(); err != nil {
				return err
			}
			opt := logger.FromEnv()
			opt.Writer = os.Stderr
			opt.Component = "cli"
			logger.Init(opt)
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error { return cmd.Help() },
	}
	root.SetIn(in)
	root.SetOut(out)

	f := root.PersistentFlags()
	f.StringVar(&a.rulesFile, "rules", os.Getenv("CORE_CLASSIFY_RULES_FILE"), "rule table file (YAML or JSON); embedded table when empty")
	f.IntVar(&a.workers, "workers", classifysvc.DefaultWorkers, "batch concurrency")

	root.AddCommand(
		a.classifyCmd(),
		a.batchCmd(),
		a.categoriesCmd(),
		a.luhnCmd(),
		a.versionCmd(),
	)
	return root
}

// service builds the classify service lazily so helpers like luhn never load rules
func (a *app) service() (*classifysvc.Svc, error) {
	if a.svc != nil {
		return a.svc, nil
	}
	pack, err := rulepack.LoadOrFile(a.rulesFile)
	if err != nil {
		return nil, err
	}
	log := logger.Named("cli")
	eng, err := classifier.New(pack, classifier.WithLogger(log))
	if err != nil {
		return nil, err
	}
	a.svc = classifysvc.New(eng, classifysvc.Options{Workers: a.workers}, classifysvc.WithLogger(log))
	return a.svc, nil
}
