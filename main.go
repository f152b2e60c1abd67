package main

import "github.com/ziadkadry99/treemap/cmd"

func main() {
	cmd.Execute()
}
