package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"termfolio/internal/server"
)

var (
	messagesDB    string
	messagesLimit int
	messagesJSON  bool
)

var messagesCmd = &cobra.Command{
	Use:   "messages",
	Short: "List contact messages stored by serve",
	Args:  cobra.NoArgs,
	RunE:  runMessages,
}

func init() {
	messagesCmd.Flags().StringVar(&messagesDB, "db", "", "sqlite database (default termfolio.db)")
	messagesCmd.Flags().IntVarP(&messagesLimit, "limit", "n", 20, "maximum number of messages")
	messagesCmd.Flags().BoolVar(&messagesJSON, "json", false, "print messages as JSON")
	rootCmd.AddCommand(messagesCmd)
}

func runMessages(cmd *cobra.Command, _ []string) error {
	cfg, err := settings(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("db") {
		cfg.DatabasePath = messagesDB
	}

	ctx := cmd.Context()
	store, err := server.OpenStore(ctx, cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer store.Close()

	msgs, err := store.List(ctx, messagesLimit)
	if err != nil {
		return err
	}
	if messagesJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if msgs == nil {
			msgs = []server.Message{}
		}
		return enc.Encode(msgs)
	}
	return printMessages(cmd.OutOrStdout(), msgs)
}

// printMessages writes one row per message, newest first.
func printMessages(w io.Writer, msgs []server.Message) error {
	if len(msgs) == 0 {
		_, err := fmt.Fprintln(w, "No messages.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tRECEIVED\tFROM\tSUBJECT\tRELAYED")
	for _, m := range msgs {
		from := m.FromEmail
		if m.FromName != "" {
			from = fmt.Sprintf("%s <%s>", m.FromName, m.FromEmail)
		}
		relayed := "no"
		if m.Relayed {
			relayed = "yes"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			m.ID.String()[:8],
			m.CreatedAt.Local().Format("2006-01-02 15:04"),
			truncate(from, 32),
			truncate(m.Subject, 40),
			relayed,
		)
	}
	return tw.Flush()
}
