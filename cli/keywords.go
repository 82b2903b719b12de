package cli

import (
	"fmt"
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/lorelime/eliza/script"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "keywords [query]",
		Short: "List the script's keywords, optionally fuzzy-filtered",
		Args:  cobra.MaximumNArgs(1),
		Run:   runKeywords,
	}

	RootCmd.AddCommand(cmd)
}

func runKeywords(cmd *cobra.Command, args []string) {
	s, err := loadScript()
	if err != nil {
		exitErr("load script", err)
	}

	keywords := s.Keywords
	if len(args) > 0 {
		words := make([]string, len(s.Keywords))
		for i, kw := range s.Keywords {
			words[i] = kw.Word
		}
		matches := fuzzy.RankFindNormalizedFold(args[0], words)
		sort.Sort(matches)

		keywords = make([]*script.Keyword, 0, len(matches))
		for _, m := range matches {
			keywords = append(keywords, s.Keywords[m.OriginalIndex])
		}
	} else {
		keywords = append([]*script.Keyword(nil), keywords...)
		sort.Slice(keywords, func(i, j int) bool {
			if keywords[i].Rank != keywords[j].Rank {
				return keywords[i].Rank > keywords[j].Rank
			}
			return keywords[i].Word < keywords[j].Word
		})
	}

	for _, kw := range keywords {
		fmt.Printf("%-12s rank %-3d %d rules\n", kw.Word, kw.Rank, len(kw.Rules))
	}
}
