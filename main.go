package main

import "github.com/folknology/atask/cmd"

func main() {
	cmd.Run()
}
