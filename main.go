package main

import "github.com/theirongolddev/ratio/cmd"

func main() {
	cmd.Execute()
}
