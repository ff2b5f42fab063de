package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pakkurthi/jobquest-client/internal/authz"
	"github.com/pakkurthi/jobquest-client/internal/domain"
)

var (
	applyCoverLetter string
	applyResumeURL   string
)

func printApplications(apps []domain.Application) {
	if len(apps) == 0 {
		fmt.Println("No applications found")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tJOB\tAPPLICANT\tSTATUS\tGROUP")
	for _, a := range apps {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", a.ID, a.JobID, a.ApplicantName, a.Status, a.Status.Group())
	}
	_ = w.Flush()
}

var applyCmd = &cobra.Command{
	Use:   "apply <job-id>",
	Short: "Apply to a job",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireCapability(authz.JobSeeker); err != nil {
			return err
		}
		created, err := svc.ApplyToJob(cmd.Context(), domain.ApplyRequest{
			JobID:       args[0],
			CoverLetter: applyCoverLetter,
			ResumeURL:   applyResumeURL,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Applied to job %s (application %s, status %s)\n", created.JobID, created.ID, created.Status)
		return nil
	},
}

var applicationsCmd = &cobra.Command{
	Use:   "applications",
	Short: "Manage my applications",
}

var applicationsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List my applications",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireCapability(authz.JobSeeker); err != nil {
			return err
		}
		apps, err := svc.LoadMyApplications(cmd.Context())
		if err != nil {
			return err
		}
		printApplications(apps)
		return nil
	},
}

var applicationsCountCmd = &cobra.Command{
	Use:   "count",
	Short: "Show how many applications I have submitted",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireCapability(authz.JobSeeker); err != nil {
			return err
		}
		count, err := svc.MyApplicationsCount(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(count)
		return nil
	},
}

var applicationsWithdrawCmd = &cobra.Command{
	Use:   "withdraw <application-id>",
	Short: "Withdraw an application",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireCapability(authz.JobSeeker); err != nil {
			return err
		}
		if _, err := svc.LoadMyApplications(cmd.Context()); err != nil {
			return err
		}
		updated, err := svc.Withdraw(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if updated == nil {
			fmt.Println("Withdraw already in progress")
			return nil
		}
		fmt.Printf("Application %s is now %s\n", updated.ID, updated.Status)
		return nil
	},
}

var triageCmd = &cobra.Command{
	Use:   "triage",
	Short: "Review incoming applications as a provider",
}

var triageListCmd = &cobra.Command{
	Use:   "list",
	Short: "List incoming applications across my jobs",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireCapability(authz.JobProvider); err != nil {
			return err
		}
		apps, err := svc.LoadProviderApplications(cmd.Context())
		if err != nil {
			return err
		}
		printApplications(apps)
		return nil
	},
}

var triageJobCmd = &cobra.Command{
	Use:   "job <job-id>",
	Short: "List applications for one posting",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireCapability(authz.JobProvider); err != nil {
			return err
		}
		apps, err := svc.LoadApplicationsForJob(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		printApplications(apps)
		return nil
	},
}

var triageCountsCmd = &cobra.Command{
	Use:   "counts",
	Short: "Tally incoming applications per triage bucket",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireCapability(authz.JobProvider); err != nil {
			return err
		}
		if _, err := svc.LoadProviderApplications(cmd.Context()); err != nil {
			return err
		}
		counts := svc.GroupCounts()
		for _, group := range []domain.StatusGroup{
			domain.GroupNew, domain.GroupReviewing, domain.GroupAccepted,
			domain.GroupRejected, domain.GroupWithdrawn,
		} {
			fmt.Printf("%s\t%d\n", group, counts[group])
		}
		return nil
	},
}

var triageSetStatusCmd = &cobra.Command{
	Use:   "set-status <application-id> <status>",
	Short: "Move an application through the hiring lifecycle",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireCapability(authz.JobProvider); err != nil {
			return err
		}
		to := domain.Status(args[1])
		if !to.Valid() {
			return fmt.Errorf("unknown status %q", args[1])
		}
		if _, err := svc.LoadProviderApplications(cmd.Context()); err != nil {
			return err
		}
		updated, err := svc.UpdateApplicationStatus(cmd.Context(), args[0], to)
		if err != nil {
			return err
		}
		if updated == nil {
			fmt.Println("Status update already in progress")
			return nil
		}
		fmt.Printf("Application %s is now %s\n", updated.ID, updated.Status)
		return nil
	},
}

func init() {
	applyCmd.Flags().StringVar(&applyCoverLetter, "cover-letter", "", "cover letter text")
	applyCmd.Flags().StringVar(&applyResumeURL, "resume-url", "", "resume URL")

	applicationsCmd.AddCommand(applicationsListCmd, applicationsCountCmd, applicationsWithdrawCmd)
	triageCmd.AddCommand(triageListCmd, triageJobCmd, triageCountsCmd, triageSetStatusCmd)
}
