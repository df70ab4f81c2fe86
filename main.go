package main

import "github.com/auradecor/studio/cmd"

func main() {
	cmd.Execute()
}
