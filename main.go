/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>
*/
package main

import "github.com/vmikk/adegenet/cmd"

func main() {
	cmd.Execute()
}
