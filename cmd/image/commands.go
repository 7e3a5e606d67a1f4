package image

import "github.com/spf13/cobra"

// Actions defines the service image lifecycle subcommands.
type Actions interface {
	Install(cmd *cobra.Command, args []string) error
	RemoveOld(cmd *cobra.Command, args []string) error
	RemoveAll(cmd *cobra.Command, args []string) error
	List(cmd *cobra.Command, args []string) error
	Enabled(cmd *cobra.Command, args []string) error
}

// Commands builds the image command set.
func Commands(h Actions) []*cobra.Command {
	install := &cobra.Command{
		Use:   "install [TARBALL]",
		Short: "Install the service image from TARBALL (default: packaged tarball)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  h.Install,
	}
	install.Flags().String("name", "", "image name override")
	install.Flags().String("force-version", "", "version tag override")
	_ = install.Flags().MarkHidden("force-version")

	removeOld := &cobra.Command{
		Use:   "remove-old",
		Short: "Remove all but the newest service image version",
		RunE:  h.RemoveOld,
	}
	removeOld.Flags().Bool("force", false, "remove even currently enabled images")

	removeAll := &cobra.Command{
		Use:   "remove-all",
		Short: "Remove every registered service image version",
		RunE:  h.RemoveAll,
	}
	removeAll.Flags().Bool("force", false, "remove even currently enabled images")

	return []*cobra.Command{
		install,
		removeOld,
		removeAll,
		{
			Use:     "list",
			Aliases: []string{"ls"},
			Short:   "List registered service images by version",
			RunE:    h.List,
		},
		{
			Use:   "enabled",
			Short: "Show the active worker image per service",
			RunE:  h.Enabled,
		},
	}
}
