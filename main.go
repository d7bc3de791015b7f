package main

import "github.com/pablopoggiog/send-it/cmd"

func main() {
	cmd.Execute()
}
