/*
Copyright © 2026 docstack
*/
package main

import "github.com/docstack/docproc/cmd"

func main() {
	cmd.Execute()
}
