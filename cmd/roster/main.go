// roster imports, exports and serves member rosters.
package main

import (
	"os"

	"github.com/JonMunkholm/roster/cmd/roster/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
