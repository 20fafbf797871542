package main

import "github.com/TripleAConsortium/gog-price-checker/cmd"

var execute = cmd.Execute

func main() {
	execute()
}
