package main

import "github.com/emrgen/inquests-migration/cmd"

func main() {
	cmd.Execute()
}
