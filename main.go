package main

import "empsync/cmd"

func main() {
	cmd.Execute()
}
