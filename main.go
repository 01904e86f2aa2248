/*
Copyright © 2024 Ryan Painter paintersrp@gmail.com

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Paintersrp/curio/internal/state"
	"github.com/Paintersrp/curio/pkg/cmd/root"
)

func main() {
	s, err := state.NewState(catalogOverride(os.Args[1:]))
	if err != nil {
		fmt.Fprintln(os.Stderr, "curio:", err)
		os.Exit(1)
	}
	defer s.Close()

	cmd, err := root.NewCmdRoot(s)
	cobra.CheckErr(err)
	cobra.CheckErr(cmd.Execute())
}

// catalogOverride pulls the --catalog flag out of the raw arguments, since
// the selected catalog decides which data directory the state opens before
// cobra ever parses flags.
func catalogOverride(args []string) string {
	for i, arg := range args {
		switch {
		case arg == "--catalog" || arg == "-c":
			if i+1 < len(args) {
				return args[i+1]
			}
		case strings.HasPrefix(arg, "--catalog="):
			return strings.TrimPrefix(arg, "--catalog=")
		case strings.HasPrefix(arg, "-c="):
			return strings.TrimPrefix(arg, "-c=")
		}
	}
	return ""
}
