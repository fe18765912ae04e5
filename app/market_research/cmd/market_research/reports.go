package main

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/iWorld-y/market_research/app/market_research/pkg/config"
	"github.com/iWorld-y/market_research/app/market_research/pkg/storage"
)

// withStore 加载配置并打开报告存储，fn 返回后关闭存储
func withStore(cmd *cobra.Command, fn func(ctx context.Context, cfg *config.Config, store storage.Store) error) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	store, err := storage.NewStore(ctx, cfg.Storage)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(ctx, cfg, store)
}

func listCMD() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved reports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(ctx context.Context, cfg *config.Config, store storage.Store) error {
				metas, err := store.List(ctx)
				if err != nil {
					return err
				}
				if len(metas) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No saved reports.")
					return nil
				}
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tTITLE\tDATE\tSIZE")
				for _, m := range metas {
					fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", m.ID, m.Title, m.Date, m.Size)
				}
				return w.Flush()
			})
		},
	}
}

func showCMD() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Print a saved report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(ctx context.Context, cfg *config.Config, store storage.Store) error {
				text, err := store.Read(ctx, args[0])
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), text)
				return nil
			})
		},
	}
}

func deleteCMD() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a saved report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(ctx context.Context, cfg *config.Config, store storage.Store) error {
				if err := store.Delete(ctx, args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
				return nil
			})
		},
	}
}

func exportCMD() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export <id>",
		Short: "Export a saved report as HTML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(ctx context.Context, cfg *config.Config, store storage.Store) error {
				text, err := store.Read(ctx, args[0])
				if err != nil {
					return err
				}
				title, _, id := storage.ParseMetadata(text)
				path := out
				if path == "" {
					if id == "" {
						id = strings.TrimSuffix(args[0], ".md")
					}
					path = id + ".html"
				}
				if err := writeHTML(path, title, text); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "HTML exported: %s\n", path)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output HTML path (default <id>.html)")
	return cmd
}

func smsCMD() *cobra.Command {
	var to string
	cmd := &cobra.Command{
		Use:   "sms <id>",
		Short: "Send the executive summary of a saved report by SMS",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(ctx context.Context, cfg *config.Config, store storage.Store) error {
				text, err := store.Read(ctx, args[0])
				if err != nil {
					return err
				}
				title, _, _ := storage.ParseMetadata(text)
				sid, err := sendSummary(ctx, cfg, to, title, text)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "SMS sent: %s\n", sid)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&to, "to", "", "recipient phone number in E.164 format")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}
