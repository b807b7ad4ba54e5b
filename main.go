package main

import (
	"os"

	"lifehub/spending/cmd/analyze"
	"lifehub/spending/cmd/ingest"
	"lifehub/spending/cmd/keywords"
	"lifehub/spending/cmd/root"
	"lifehub/spending/cmd/transactions"
	"lifehub/spending/cmd/users"
)

func main() {
	root.Init()

	root.Cmd.AddCommand(ingest.Cmd)
	root.Cmd.AddCommand(transactions.Cmd)
	root.Cmd.AddCommand(analyze.Cmd)
	root.Cmd.AddCommand(keywords.Cmd)
	root.Cmd.AddCommand(users.Cmd)

	if err := root.Cmd.Execute(); err != nil {
		root.Log.Error(err)
		os.Exit(1)
	}
}
