// cmd/halo/main.go
package main

import (
	cmd "github.com/spiralogic/halo/internal/cli"
)

// main starts the halo CLI application by delegating to the
// cobra root command defined in the halo package. It does not
// take any arguments and does not return a value.
func main() {
	cmd.Execute()
}
