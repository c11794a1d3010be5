package main

import "github.com/Hyunwoo0815/bus2/cmd"

func main() {
	cmd.Execute()
}
