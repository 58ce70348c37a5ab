package main

import "github.com/KaramelBytes/tidyset-cli/cmd"

func main() {
	cmd.Execute()
}
