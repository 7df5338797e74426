package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"termfolio/internal/resume"
	"termfolio/internal/schemas"
)

var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Check a resume document against the schema",
	Long: `Validate a resume document (.json or .toml) against the resume schema and
the field rules the terminal relies on. Without a file the configured resume
is checked, or the built-in sample when none is configured.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	path := ""
	if len(args) == 1 {
		path = args[0]
	} else {
		cfg, err := settings(cmd)
		if err != nil {
			return err
		}
		path = cfg.Resume
	}

	var data []byte
	format := resume.FormatJSON
	if path == "" {
		var err error
		if data, err = resume.Sample().JSON(); err != nil {
			return err
		}
		path = "(sample)"
	} else {
		var err error
		if data, err = os.ReadFile(path); err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		format = resume.FormatFromPath(path)
	}

	return checkDocument(cmd.OutOrStdout(), path, data, format)
}

// checkDocument reports every schema and field problem in data to w and
// returns an error when there was at least one. Lint findings are printed
// as warnings and do not fail the check.
func checkDocument(w io.Writer, path string, data []byte, format resume.Format) error {
	normalized, err := resume.Normalize(data, format)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	problems := 0
	if err := schemas.ValidateResume(normalized); err != nil {
		var verr *schemas.ValidationError
		if !errors.As(err, &verr) {
			return err
		}
		for _, fe := range verr.Errors {
			fmt.Fprintf(w, "error: %s: %s\n", fe.Field, fe.Message)
		}
		problems += len(verr.Errors)
	}

	doc, err := resume.Parse(normalized, resume.FormatJSON)
	if err != nil {
		fmt.Fprintf(w, "error: %v\n", err)
		problems++
	}
	if problems > 0 {
		return fmt.Errorf("%s: %d problem(s) found", path, problems)
	}

	for _, warning := range resume.Lint(doc) {
		fmt.Fprintf(w, "warning: %s\n", warning)
	}
	fmt.Fprintf(w, "ok: %s (%s)\n", path, doc.Personal.Name)
	return nil
}
