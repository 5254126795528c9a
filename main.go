// main.go
package main

import "peflow/cmd"

func main() {
	cmd.Execute()
}
