package main

import "github.com/RyanBlaney/mfcc-extract/cmd"

func main() {
	cmd.Execute()
}
