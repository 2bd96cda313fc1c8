package main

import "github.com/zfogg/reelmatch/internal/cmd"

func main() {
	cmd.Execute()
}
