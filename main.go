package main

import "github.com/naka-gawa/solana-repo-tracker/cmd"

func main() {
	cmd.Execute()
}
