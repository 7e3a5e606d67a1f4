package image

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/projecteru2/core/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	cmdcore "github.com/projecteru2/svcimage/cmd/core"
	"github.com/projecteru2/svcimage/lock"
	"github.com/projecteru2/svcimage/lock/flock"
	"github.com/projecteru2/svcimage/progress"
	installProgress "github.com/projecteru2/svcimage/progress/install"
	"github.com/projecteru2/svcimage/prune"
	"github.com/projecteru2/svcimage/types"
	"github.com/projecteru2/svcimage/utils"
)

type Handler struct {
	cmdcore.BaseHandler
}

func (h Handler) Install(cmd *cobra.Command, args []string) error {
	ctx, conf, err := h.Init(cmd)
	if err != nil {
		return err
	}
	if err := conf.ValidateInstall(); err != nil {
		return err
	}
	logger := log.WithFunc("cmd.install")
	mgr, _ := cmdcore.InitServices(conf)

	tarball := ""
	if len(args) == 1 {
		tarball = args[0]
		if !utils.ValidFile(tarball) {
			return fmt.Errorf("%w: %s", types.ErrNoTarball, tarball)
		}
	} else {
		if tarball, err = mgr.DefaultTarball(); err != nil {
			return err
		}
	}

	version, _ := cmd.Flags().GetString("force-version")
	if version == "" {
		if version, err = mgr.InstalledVersion(ctx); err != nil {
			return err
		}
	}
	name, _ := cmd.Flags().GetString("name")
	if name == "" {
		name = fmt.Sprintf("%s-v%s", conf.ImageBaseName, version)
	}

	if info, statErr := os.Stat(tarball); statErr == nil {
		logger.Infof(ctx, "installing %s (%s) as %s", tarball, cmdcore.FormatSize(info.Size()), name)
	}

	tracker := progress.NewTracker(func(e installProgress.Event) {
		switch e.Phase {
		case installProgress.PhaseExtract:
			logger.Infof(ctx, "extracting %s", e.Tarball)
		case installProgress.PhaseRegister:
			logger.Info(ctx, "bundling and registering...")
		case installProgress.PhaseTag:
			logger.Infof(ctx, "tagging %s (version %s)", e.ImageID, version)
		case installProgress.PhaseEnable:
			logger.Infof(ctx, "enabling %s for service %s", e.ImageID, e.Service)
		case installProgress.PhaseDone:
			logger.Infof(ctx, "installed: %s", e.ImageID)
		}
	})

	if err := utils.EnsureDirs(conf.RunDir); err != nil {
		return err
	}
	return lock.WithTryLock(ctx, flock.New(conf.LockFile()), func() error {
		_, err := mgr.Install(ctx, tarball, name, version, tracker)
		return err
	})
}

func (h Handler) RemoveOld(cmd *cobra.Command, _ []string) error {
	return h.remove(cmd, true)
}

func (h Handler) RemoveAll(cmd *cobra.Command, _ []string) error {
	force, _ := cmd.Flags().GetBool("force")
	if !force && term.IsTerminal(int(os.Stdin.Fd())) && !confirm("Remove ALL service image versions?") {
		return fmt.Errorf("aborted")
	}
	return h.remove(cmd, false)
}

func (h Handler) remove(cmd *cobra.Command, keepNewest bool) error {
	ctx, conf, err := h.Init(cmd)
	if err != nil {
		return err
	}
	if err := conf.Validate(); err != nil {
		return err
	}
	logger := log.WithFunc("cmd.remove")
	force, _ := cmd.Flags().GetBool("force")
	mgr, executor := cmdcore.InitServices(conf)

	if err := utils.EnsureDirs(conf.RunDir); err != nil {
		return err
	}
	return lock.WithTryLock(ctx, flock.New(conf.LockFile()), func() error {
		groups, err := mgr.GroupByVersion(ctx)
		if err != nil {
			return err
		}
		if len(groups) == 0 {
			logger.Info(ctx, "no service images registered, nothing to remove")
			return nil
		}
		enabled, err := mgr.Enabled(ctx)
		if err != nil {
			return err
		}

		plan := prune.Build(groups, enabled, prune.Policy{KeepNewest: keepNewest, Force: force})
		removed, err := executor.Execute(ctx, plan)
		if err != nil {
			return err
		}
		if plan.KeptVersion != "" {
			logger.Infof(ctx, "kept version %s", plan.KeptVersion)
		}
		logger.Infof(ctx, "removed %d image(s)", len(removed))
		return nil
	})
}

func (h Handler) List(cmd *cobra.Command, _ []string) error {
	ctx, conf, err := h.Init(cmd)
	if err != nil {
		return err
	}
	if err := conf.Validate(); err != nil {
		return err
	}
	mgr, _ := cmdcore.InitServices(conf)

	groups, err := mgr.GroupByVersion(ctx)
	if err != nil {
		return err
	}
	if len(groups) == 0 {
		fmt.Println("No service images found.")
		return nil
	}
	enabled, err := mgr.Enabled(ctx)
	if err != nil {
		return err
	}
	enabledFor := map[string][]string{}
	for service, id := range enabled {
		enabledFor[id] = append(enabledFor[id], service)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "VERSION\tIMAGE\tLOCATION\tPROVIDES\tENABLED FOR")
	for _, version := range groups.Versions() {
		for _, img := range groups[version] {
			services := append([]string{}, enabledFor[img.ID]...)
			sort.Strings(services)
			_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				version,
				img.ID,
				img.Location,
				img.Provides,
				strings.Join(services, ","),
			)
		}
	}
	w.Flush() //nolint:errcheck,gosec
	return nil
}

func (h Handler) Enabled(cmd *cobra.Command, _ []string) error {
	ctx, conf, err := h.Init(cmd)
	if err != nil {
		return err
	}
	if err := conf.Validate(); err != nil {
		return err
	}
	mgr, _ := cmdcore.InitServices(conf)

	enabled, err := mgr.Enabled(ctx)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "SERVICE\tIMAGE")
	for _, service := range conf.Services {
		id := enabled[service]
		if id == "" {
			id = "-"
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\n", service, id)
	}
	w.Flush() //nolint:errcheck,gosec
	return nil
}

// confirm asks an interactive yes/no question on stdin.
func confirm(question string) bool {
	fmt.Printf("%s [y/N] ", question)
	sc := bufio.NewScanner(os.Stdin)
	if !sc.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(sc.Text()))
	return answer == "y" || answer == "yes"
}
