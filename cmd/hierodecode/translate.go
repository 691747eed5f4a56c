package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/hierodecode/hierodecode/internal/decoder"
)

func newTranslateCmd(cfgPath *string) *cobra.Command {
	mf := &modelFlags{}
	var inputPath string

	cmd := &cobra.Command{
		Use:   "translate",
		Short: "Translate one sentence, or one sentence per line of a file, to its best translation",
		RunE: func(cmd *cobra.Command, args []string) error {
			mf.cfgPath = *cfgPath
			lm, err := loadModels(mf)
			if err != nil {
				return err
			}
			if lm.closer != nil {
				defer lm.closer()
			}
			return translateLines(cmd.Context(), lm, inputPath, cmd.OutOrStdout())
		},
	}
	mf.register(cmd.Flags())
	cmd.Flags().StringVar(&inputPath, "input", "-", `file of one "word#tag ..." sentence per line, or "-" for stdin`)
	return cmd
}

func translateLines(ctx context.Context, lm *loadedModels, inputPath string, out io.Writer) error {
	var in io.Reader = os.Stdin
	if inputPath != "-" {
		f, err := os.Open(inputPath)
		if err != nil {
			return fmt.Errorf("input: %w", err)
		}
		defer f.Close()
		in = f
	}

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		requestID := uuid.New().String()
		log := logger.With("request_id", requestID)

		d, err := decoder.NewDecoder(lm.models, lm.params, lm.weight, line)
		if err != nil {
			log.Error("tokenize failed", "error", err, "input", line)
			fmt.Fprintf(out, "\n")
			continue
		}
		translation := d.TranslateSentence(ctx)
		log.Info("translated", "input", line, "output", translation)
		fmt.Fprintln(out, translation)
	}
	return scanner.Err()
}
