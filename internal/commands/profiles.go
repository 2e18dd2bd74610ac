package commands

import (
	"strconv"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/wiztriage/wiztriage/internal/profiles"
)

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List available classification profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		registry := profiles.NewRegistry()
		if cfg.ProfilesDir != "" {
			if err := registry.LoadDir(cfg.ProfilesDir); err != nil {
				return err
			}
		}

		data := [][]string{{"Profile", "Groups", "Default", "Rules"}}
		for _, name := range registry.Names() {
			p, err := registry.Get(name)
			if err != nil {
				return err
			}
			data = append(data, []string{
				p.Name,
				strings.Join(p.Groups, ", "),
				p.DefaultGroup,
				strconv.Itoa(len(p.Rules)),
			})
		}

		return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	},
}

func init() {
	rootCmd.AddCommand(profilesCmd)
}
