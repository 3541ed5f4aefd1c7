package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/berkasflow/berkasflow/internal/report"
)

func templatesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "Manage checklist templates",
	}

	cmd.AddCommand(templatesListCmd())
	cmd.AddCommand(templatesShowCmd())

	return cmd
}

func templatesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the known checklist templates",
		RunE: func(_ *cobra.Command, _ []string) error {
			eng, err := buildEngine()
			if err != nil {
				return err
			}

			fmt.Println(report.TitleStyle.Render("Checklist templates"))
			for _, tmpl := range eng.store.All() {
				fmt.Printf("%-24s %2d documents  %s\n", tmpl.Name, tmpl.TotalRequired, tmpl.Description)
			}
			return nil
		},
	}
}

func templatesShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Show a template's required documents",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			eng, err := buildEngine()
			if err != nil {
				return err
			}

			tmpl, ok := eng.store.Get(args[0])
			if !ok {
				return fmt.Errorf("unknown template %q (valid: %v)", args[0], eng.store.Names())
			}

			fmt.Println(report.TitleStyle.Render(tmpl.Name))
			if tmpl.Description != "" {
				fmt.Println(report.SubtleStyle.Render(tmpl.Description))
			}
			for i, label := range tmpl.RequiredDocuments {
				fmt.Printf("%2d. %s\n", i+1, label)
			}
			return nil
		},
	}
}
