package cmd

import (
	"fmt"
	"strings"

	"patchenv/internal/version"
)

// GetUsage returns usage information as a string.
func GetUsage() string {
	var sb strings.Builder
	printStr := func(s string) {
		sb.WriteString(s + "\n")
	}

	appCmd := version.CommandName

	printStr(fmt.Sprintf("Usage: %s [<Flags>] <env-file> <key> <value>", appCmd))
	printStr("")
	printStr(fmt.Sprintf("%s [%s]", version.ApplicationName, version.Version))
	printStr("Sets <key> to <value> in <env-file>. An existing assignment is updated in")
	printStr("place, otherwise the assignment is appended to the end of the file.")
	printStr("<key> may only contain uppercase letters, digits and underscores, and may not")
	printStr("start with a digit. <value> is written exactly as given.")
	printStr("")
	printStr("Flags:")
	printStr("")
	sb.WriteString(NewFlagSet().FlagUsages())
	printStr("")
	printStr("Examples:")
	printStr(fmt.Sprintf("  %s .env.local REPO_ROOT /path/to/repo", appCmd))
	printStr(fmt.Sprintf("  %s .env PORT 3333", appCmd))
	printStr(fmt.Sprintf("  %s --diff --backup .env LOG_LEVEL debug", appCmd))

	return sb.String()
}
