package main

import "github.com/masmgr/gitmine/cmd"

func main() {
	cmd.Run()
}
