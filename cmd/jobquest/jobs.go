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
	jobTitle        string
	jobCompany      string
	jobLocation     string
	jobCategory     string
	jobType         string
	jobSalary       string
	jobExperience   string
	jobDescription  string
	jobRequirements string
)

func printJobs(jobs []domain.Job) {
	if len(jobs) == 0 {
		fmt.Println("No jobs found")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tCOMPANY\tLOCATION\tTYPE")
	for _, j := range jobs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", j.ID, j.Title, j.Company, j.Location, j.Type)
	}
	_ = w.Flush()
}

func jobFromFlags() domain.Job {
	return domain.Job{
		Title:           jobTitle,
		Company:         jobCompany,
		Location:        jobLocation,
		Category:        jobCategory,
		Type:            jobType,
		Salary:          jobSalary,
		ExperienceLevel: jobExperience,
		Description:     jobDescription,
		Requirements:    jobRequirements,
	}
}

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Browse and manage job postings",
}

var jobsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all open jobs",
	RunE: func(cmd *cobra.Command, args []string) error {
		jobs, err := svc.BrowseJobs(cmd.Context())
		if err != nil {
			return err
		}
		printJobs(jobs)
		return nil
	},
}

var jobsFeaturedCmd = &cobra.Command{
	Use:   "featured",
	Short: "List featured jobs",
	RunE: func(cmd *cobra.Command, args []string) error {
		jobs, err := svc.FeaturedJobs(cmd.Context())
		if err != nil {
			return err
		}
		printJobs(jobs)
		return nil
	},
}

var jobsSearchCmd = &cobra.Command{
	Use:   "search <keyword>",
	Short: "Search jobs by keyword",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		jobs, err := svc.SearchJobs(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		printJobs(jobs)
		return nil
	},
}

var jobsShowCmd = &cobra.Command{
	Use:   "show <job-id>",
	Short: "Show one job posting",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		job, err := svc.JobByID(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("%s at %s\n", job.Title, job.Company)
		fmt.Printf("Location: %s  Type: %s  Salary: %s\n", job.Location, job.Type, job.Salary)
		if job.Description != "" {
			fmt.Printf("\n%s\n", job.Description)
		}
		if job.Requirements != "" {
			fmt.Printf("\nRequirements:\n%s\n", job.Requirements)
		}
		return nil
	},
}

var jobsMineCmd = &cobra.Command{
	Use:   "mine",
	Short: "List my posted jobs",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireCapability(authz.JobProvider); err != nil {
			return err
		}
		jobs, err := svc.LoadMyJobs(cmd.Context())
		if err != nil {
			return err
		}
		printJobs(jobs)
		return nil
	},
}

var jobsPostCmd = &cobra.Command{
	Use:   "post",
	Short: "Post a new job",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireCapability(authz.JobProvider); err != nil {
			return err
		}
		created, err := svc.CreateJob(cmd.Context(), jobFromFlags())
		if err != nil {
			return err
		}
		fmt.Printf("Posted job %s: %s\n", created.ID, created.Title)
		return nil
	},
}

var jobsUpdateCmd = &cobra.Command{
	Use:   "update <job-id>",
	Short: "Update a posted job",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireCapability(authz.JobProvider); err != nil {
			return err
		}
		updated, err := svc.UpdateJob(cmd.Context(), args[0], jobFromFlags())
		if err != nil {
			return err
		}
		fmt.Printf("Updated job %s\n", updated.ID)
		return nil
	},
}

var jobsDeleteCmd = &cobra.Command{
	Use:   "delete <job-id>",
	Short: "Delete a posted job",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireCapability(authz.JobProvider); err != nil {
			return err
		}
		// Deletion reconciles against the cached postings.
		if _, err := svc.LoadMyJobs(cmd.Context()); err != nil {
			return err
		}
		if err := svc.DeleteJob(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted job %s\n", args[0])
		return nil
	},
}

func init() {
	for _, cmd := range []*cobra.Command{jobsPostCmd, jobsUpdateCmd} {
		cmd.Flags().StringVar(&jobTitle, "title", "", "job title")
		cmd.Flags().StringVar(&jobCompany, "company", "", "company name")
		cmd.Flags().StringVar(&jobLocation, "location", "", "job location")
		cmd.Flags().StringVar(&jobCategory, "category", "", "job category")
		cmd.Flags().StringVar(&jobType, "type", "FULL_TIME", "employment type")
		cmd.Flags().StringVar(&jobSalary, "salary", "", "salary range")
		cmd.Flags().StringVar(&jobExperience, "experience", "", "experience level")
		cmd.Flags().StringVar(&jobDescription, "description", "", "job description")
		cmd.Flags().StringVar(&jobRequirements, "requirements", "", "job requirements")
	}
	_ = jobsPostCmd.MarkFlagRequired("title")
	_ = jobsPostCmd.MarkFlagRequired("company")

	jobsCmd.AddCommand(jobsListCmd, jobsFeaturedCmd, jobsSearchCmd, jobsShowCmd,
		jobsMineCmd, jobsPostCmd, jobsUpdateCmd, jobsDeleteCmd)
}
