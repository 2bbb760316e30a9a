package main

import "github.com/hoffmann-muki/omnireduce-experiments/cmd"

func main() {
	cmd.Execute()
}
