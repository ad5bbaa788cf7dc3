package main

import "github.com/ammichelon/dashboard-dinetec/cmd"

func main() {
	cmd.Execute()
}
