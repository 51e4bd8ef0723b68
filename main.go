// SPDX-License-Identifier: MPL-2.0

package main

import cmd "perfrun-cli/cmd/perfrun"

func main() {
	cmd.Execute()
}
