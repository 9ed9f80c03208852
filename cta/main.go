package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/lgaspar/carteira/cmd"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// completion describes the CLI for shell completion. It exits the process
// when invoked by the shell, before any flag parsing.
func completion() {
	sleeves := predict.Set{"fixed", "variable"}
	subtypes := predict.Set{"stock", "fii", "crypto"}

	cta := &complete.Command{
		Flags: map[string]complete.Predictor{
			"carteira-path": predict.Dirs("*"),
			"aggregate":     predict.Something,
			"brapi-token":   predict.Something,
		},
		Sub: map[string]*complete.Command{
			"deposit":   {Flags: map[string]complete.Predictor{"sleeve": sleeves, "amount": predict.Something, "d": predict.Something, "memo": predict.Something}},
			"transfer":  {Flags: map[string]complete.Predictor{"from": sleeves, "to": sleeves, "amount": predict.Something, "d": predict.Something}},
			"buy":       {Flags: map[string]complete.Predictor{"i": predict.Something, "subtype": subtypes, "q": predict.Something, "amount": predict.Something, "d": predict.Something}},
			"buy-fixed": {Flags: map[string]complete.Predictor{"i": predict.Something, "amount": predict.Something, "rate": predict.Something, "index": predict.Set{"CDI", "SELIC"}, "percent": predict.Something, "ipca": predict.Nothing, "d": predict.Something}},
			"sell":      {Flags: map[string]complete.Predictor{"i": predict.Something, "q": predict.Something, "amount": predict.Something, "d": predict.Something}},
			"redeem":    {Flags: map[string]complete.Predictor{"i": predict.Something, "d": predict.Something}},
			"dividend":  {Flags: map[string]complete.Predictor{"i": predict.Something, "month": predict.Something, "per-share": predict.Something}},
			"dividends": {},
			"holding":   {Flags: map[string]complete.Predictor{"d": predict.Something}},
			"tax":       {Flags: map[string]complete.Predictor{"subtype": subtypes}},
			"darf":      {Flags: map[string]complete.Predictor{"subtype": subtypes, "month": predict.Something}},
			"update":    {Flags: map[string]complete.Predictor{"d": predict.Something}},
			"fmt":       {},
			"topic":     {Args: predict.Set{"ledger", "tax", "dividends", "fixed-income", "oracle", "readme"}},
			"assist":    {},
		},
	}
	cta.Complete("cta")
}

func main() {
	completion()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "help")
	commander.Register(commander.FlagsCommand(), "help")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
