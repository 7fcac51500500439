package main

import "metapathways/rpkmcorr/cmd"

func main() {
	cmd.Execute()
}
