package main

import "github.com/ptomo194059/family-growth/cmd/famgrow/root"

func main() {
	root.Execute()
}
