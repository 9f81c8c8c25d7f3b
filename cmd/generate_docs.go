package cmd

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func newGenerateDocsCmd() *cobra.Command {
	var outputFile string

	cmd := &cobra.Command{
		Use:    "generate-docs",
		Short:  "Generate CLI command documentation",
		Hidden: true,
		Long: `Generate markdown documentation for all homecal commands.
This command introspects the registered commands and outputs their
documentation in markdown format, ensuring the documentation is always
accurate and in sync with the actual implementation.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerateDocs(outputFile)
		},
	}

	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")

	return cmd
}

func runGenerateDocs(outputFile string) error {
	markdown := generateCommandsMarkdown(rootCmd)

	if outputFile != "" {
		if err := os.WriteFile(outputFile, []byte(markdown), 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Documentation written to: %s\n", outputFile)
	} else {
		fmt.Print(markdown)
	}

	return nil
}

func generateCommandsMarkdown(root *cobra.Command) string {
	var sb strings.Builder

	// Header
	sb.WriteString("# Command Reference\n\n")
	sb.WriteString("This document provides a complete reference of all homecal commands.\n\n")
	sb.WriteString("**Note:** This documentation is automatically generated from the command definitions.\n\n")

	commands := visibleCommands(root)

	// Table of contents
	sb.WriteString("## Table of Contents\n\n")
	for _, c := range commands {
		anchor := strings.ToLower(strings.ReplaceAll(c.Name(), " ", "-"))
		sb.WriteString(fmt.Sprintf("- [%s](#%s)\n", c.Name(), anchor))
	}
	sb.WriteString("\n")

	for _, c := range commands {
		sb.WriteString(generateCommandMarkdown(c))
		sb.WriteString("\n")
	}

	return sb.String()
}

func visibleCommands(root *cobra.Command) []*cobra.Command {
	commands := make([]*cobra.Command, 0, len(root.Commands()))
	for _, c := range root.Commands() {
		if c.Hidden || c.Name() == "help" || c.Name() == "completion" {
			continue
		}
		commands = append(commands, c)
	}
	sort.Slice(commands, func(i, j int) bool {
		return commands[i].Name() < commands[j].Name()
	})
	return commands
}

func generateCommandMarkdown(c *cobra.Command) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("## %s\n\n", c.Name()))
	sb.WriteString(fmt.Sprintf("```\nhomecal %s\n```\n\n", c.UseLine()))

	if c.Long != "" {
		sb.WriteString(c.Long)
		sb.WriteString("\n\n")
	} else if c.Short != "" {
		sb.WriteString(c.Short)
		sb.WriteString("\n\n")
	}

	flags := c.NonInheritedFlags()
	if flags.HasAvailableFlags() {
		sb.WriteString("**Flags:**\n")
		flags.VisitAll(func(f *pflag.Flag) {
			if f.Hidden {
				return
			}
			sb.WriteString(fmt.Sprintf("- `--%s`", f.Name))
			if f.DefValue != "" && f.DefValue != "false" {
				sb.WriteString(fmt.Sprintf(" (default: `%s`)", f.DefValue))
			}
			sb.WriteString(fmt.Sprintf(": %s\n", f.Usage))
		})
		sb.WriteString("\n")
	}

	return sb.String()
}
