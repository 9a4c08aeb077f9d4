package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// ChampionshipsCmd returns the `brk championships` command group.
func ChampionshipsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "championships",
		Aliases: []string{"ch"},
		Short:   "Inspect championships",
	}
	cmd.AddCommand(championshipsListCmd())
	cmd.AddCommand(championshipSeasonsCmd())
	return cmd
}

func championshipsListCmd() *cobra.Command {
	var activeOnly bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List championships you manage",
		RunE: func(c *cobra.Command, _ []string) error {
			client, err := loadClient()
			if err != nil {
				return err
			}

			items, err := client.ListChampionships()
			if err != nil {
				return fmt.Errorf("list championships: %w", err)
			}

			out := c.OutOrStdout()
			shown := 0
			for _, ch := range items {
				if activeOnly && !ch.Active {
					continue
				}
				status := "active"
				if !ch.Active {
					status = "inactive"
				}
				place := ch.City
				if ch.State != "" {
					place += "/" + ch.State
				}
				fmt.Fprintf(out, "  %s  %s  (%s)  %s\n", ch.ID, ch.Name, status, place)
				shown++
			}
			if shown == 0 {
				fmt.Fprintln(out, "no championships found")
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&activeOnly, "active", "a", false, "show active championships only")
	return cmd
}

func championshipSeasonsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seasons <championship-id>",
		Short: "List the seasons of a championship",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			client, err := loadClient()
			if err != nil {
				return err
			}

			seasons, err := client.ListSeasons(args[0])
			if err != nil {
				return fmt.Errorf("list seasons: %w", err)
			}

			out := c.OutOrStdout()
			if len(seasons) == 0 {
				fmt.Fprintln(out, "no seasons found")
				return nil
			}
			for _, s := range seasons {
				fmt.Fprintf(out, "  %s  %s  [%s]  %s → %s\n", s.ID, s.Name, s.Status, dateOnly(s.StartDate), dateOnly(s.EndDate))
			}
			return nil
		},
	}
}

func dateOnly(v string) string {
	if len(v) > 10 {
		return v[:10]
	}
	return v
}
