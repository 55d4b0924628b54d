// wbforms renders, fills and serves Wikibase-style creation forms defined in
// the line-oriented form mini-language.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	_ "modernc.org/sqlite"

	"github.com/goliatone/go-wbforms/internal/server"
	"github.com/goliatone/go-wbforms/pkg/localrepo"
	"github.com/goliatone/go-wbforms/pkg/materialize"
	"github.com/goliatone/go-wbforms/pkg/orchestrator"
	"github.com/goliatone/go-wbforms/pkg/tui"
)

func main() {
	if err := rootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCommand() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "wbforms",
		Short:         "Create structured items from form definitions",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "wbforms.yaml", "configuration file")

	root.AddCommand(renderCommand(&configPath))
	root.AddCommand(fillCommand(&configPath))
	root.AddCommand(serveCommand(&configPath))
	return root
}

// setup builds the orchestrator and its local repository from the
// configuration file.
func setup(configPath string) (config, *orchestrator.Orchestrator, *localrepo.Repository, func() error, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return config{}, nil, nil, nil, err
	}
	forms, cleanup, err := cfg.formProvider()
	if err != nil {
		return config{}, nil, nil, nil, err
	}
	if cleanup == nil {
		cleanup = func() error { return nil }
	}

	repo := localrepo.New(localrepo.Config{
		Labels:          cfg.Labels,
		DataTypes:       cfg.DataTypes,
		DefaultDataType: cfg.DefaultDataType,
		FirstItemID:     cfg.FirstItemID,
		BaseURL:         cfg.BaseURL,
		Output:          os.Stdout,
	})

	o, err := orchestrator.New(orchestrator.Config{
		Provider:  forms,
		Labels:    repo,
		DataTypes: repo,
		Parsers:   repo,
		Store:     repo,
		Saver:     repo,
		Titles:    repo,
	})
	if err != nil {
		_ = cleanup()
		return config{}, nil, nil, nil, err
	}
	return cfg, o, repo, cleanup, nil
}

func renderCommand(configPath *string) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "render <form>",
		Short: "Render a form to HTML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, o, _, cleanup, err := setup(*configPath)
			if err != nil {
				return err
			}
			defer func() {
				_ = cleanup()
			}()

			html, err := o.Show(cmd.Context(), orchestrator.ShowRequest{
				FormName:  args[0],
				Action:    server.BasePath + "/" + args[0],
				EditToken: `+\`,
			})
			if err != nil {
				return err
			}

			if output != "" {
				return os.WriteFile(output, html, 0o644)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(html))
			return err
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	return cmd
}

func fillCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "fill <form>",
		Short: "Fill a form interactively and save the item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, o, repo, cleanup, err := setup(*configPath)
			if err != nil {
				return err
			}
			defer func() {
				_ = cleanup()
			}()

			form, err := o.Form(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			filler := tui.NewFiller(tui.NewSurveyDriver(), materialize.New(repo, repo))
			posted, err := filler.Fill(cmd.Context(), form)
			if err != nil {
				return err
			}

			outcome, err := o.Submit(cmd.Context(), orchestrator.SubmitRequest{
				FormName:  args[0],
				Posted:    posted,
				EditToken: `+\`,
			})
			if err != nil {
				return err
			}
			if len(outcome.FieldErrors) > 0 {
				for name, problem := range outcome.FieldErrors {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", name, problem)
				}
				return fmt.Errorf("submission had %d invalid fields", len(outcome.FieldErrors))
			}
			if outcome.Result == nil {
				// The filler answers every add-another prompt itself, so a
				// grow request should never reach this point.
				return fmt.Errorf("submission did not produce an item")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", outcome.Result.Item.ID)
			return nil
		},
	}
}

func serveCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the form pages over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, o, _, cleanup, err := setup(*configPath)
			if err != nil {
				return err
			}
			defer func() {
				_ = cleanup()
			}()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return server.Run(ctx, server.Config{
				Port:         cfg.Port,
				Orchestrator: o,
			})
		},
	}
}
