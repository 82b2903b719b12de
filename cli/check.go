package cli

import (
	"fmt"

	"github.com/lorelime/eliza/script"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "check [script.json]",
		Short: "Validate a script file",
		Args:  cobra.MaximumNArgs(1),
		Run:   runCheck,
	}

	RootCmd.AddCommand(cmd)
}

func runCheck(cmd *cobra.Command, args []string) {
	var s *script.Script
	var err error
	if len(args) > 0 {
		s, err = script.Load(args[0])
	} else {
		s, err = loadScript()
	}
	if err != nil {
		exitErr("invalid script", err)
	}

	rules := 0
	for _, kw := range s.Keywords {
		rules += len(kw.Rules)
	}
	fmt.Printf("script %q is valid: %d keywords, %d rules, %d links, %d synonym groups\n",
		s.Name, len(s.Keywords), rules, len(s.Links), len(s.Synonyms))
}
