package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/hierodecode/hierodecode/internal/decoder"
)

func newNBestCmd(cfgPath *string) *cobra.Command {
	mf := &modelFlags{}
	var inputPath string
	var showRules bool

	cmd := &cobra.Command{
		Use:   "nbest",
		Short: "Translate and list the n-best candidates with feature breakdowns",
		RunE: func(cmd *cobra.Command, args []string) error {
			mf.cfgPath = *cfgPath
			lm, err := loadModels(mf)
			if err != nil {
				return err
			}
			if lm.closer != nil {
				defer lm.closer()
			}

			var in *os.File
			if inputPath == "-" {
				in = os.Stdin
			} else {
				in, err = os.Open(inputPath)
				if err != nil {
					return fmt.Errorf("input: %w", err)
				}
				defer in.Close()
			}

			out := cmd.OutOrStdout()
			scanner := bufio.NewScanner(in)
			sentenceID := 0
			for scanner.Scan() {
				line := scanner.Text()
				if line == "" {
					continue
				}
				sentenceID++
				log := logger.With("request_id", uuid.New().String(), "sentence_id", sentenceID)

				d, err := decoder.NewDecoder(lm.models, lm.params, lm.weight, line)
				if err != nil {
					log.Error("tokenize failed", "error", err, "input", line)
					continue
				}
				_ = d.TranslateSentence(cmd.Context())

				for rank, info := range d.GetTuneInfo(sentenceID) {
					fields := make([]string, len(info.FeatureValues))
					for i, v := range info.FeatureValues {
						fields[i] = strconv.FormatFloat(v, 'g', -1, 64)
					}
					fmt.Fprintf(out, "%d ||| %d ||| %s ||| %s ||| %g\n",
						sentenceID, rank, info.Translation, strings.Join(fields, " "), info.TotalScore)
				}
				if showRules {
					for _, rule := range d.GetAppliedRules(sentenceID) {
						fmt.Fprintln(out, rule)
					}
				}
			}
			return scanner.Err()
		},
	}
	mf.register(cmd.Flags())
	cmd.Flags().StringVar(&inputPath, "input", "-", `file of one "word#tag ..." sentence per line, or "-" for stdin`)
	cmd.Flags().BoolVar(&showRules, "show-rules", false, "also print the best derivation's applied rules")
	return cmd
}
