package main

import "github.com/Tiliavir/ride-ledger/cmd"

func main() {
	cmd.Execute()
}
