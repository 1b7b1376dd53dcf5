package main

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vyakarni1/vyakarni/internal/config"
	"github.com/vyakarni1/vyakarni/internal/highlight"
	"github.com/vyakarni1/vyakarni/internal/model"
)

var correctShowSegments bool

var correctCmd = &cobra.Command{
	Use:   "correct [text]",
	Short: "Correct a piece of Hindi text and print the result as JSON",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		manager, err := config.NewManager(cfgFile)
		if err != nil {
			return err
		}
		cfg := manager.Get()

		log, err := newLogger(cfg)
		if err != nil {
			return err
		}
		defer log.Sync()

		// One-shot runs skip Redis; built-in and file rules suffice.
		pipe, err := assemble(cmd.Context(), cfg, nil, log)
		if err != nil {
			return err
		}

		text := strings.Join(args, " ")
		res, err := pipe.Run(cmd.Context(), text)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if !correctShowSegments {
			return enc.Encode(res)
		}
		return enc.Encode(struct {
			*model.Result
			Segments []model.Segment `json:"segments"`
		}{
			Result:   res,
			Segments: highlight.BuildSegments(res.Original, res.Corrections),
		})
	},
}

func init() {
	correctCmd.Flags().BoolVar(&correctShowSegments, "segments", false, "include highlight segments in the output")
}
