package main

import "github.com/miblum/go-fund-notice/cmd/worker/cmd"

func main() {
	cmd.Execute()
}
