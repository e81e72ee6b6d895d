package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ochogwuprince92/nexus-job-board-client/internal/models"
)

func applyCmd(a *app) *cobra.Command {
	var resumePath, coverLetter, portfolio, linkedIn, github, expectedSalary string

	cmd := &cobra.Command{
		Use:   "apply <job-id>",
		Short: "Apply for a posting with a resume",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jobID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid job id %q", args[0])
			}

			resume, err := os.Open(resumePath)
			if err != nil {
				return err
			}
			defer resume.Close()

			req := models.ApplicationRequest{
				JobID:           jobID,
				CoverLetter:     coverLetter,
				PortfolioURL:    portfolio,
				LinkedInProfile: linkedIn,
				GithubProfile:   github,
				ExpectedSalary:  expectedSalary,
			}

			if err := a.store.Applications.ApplyForJob(cmd.Context(), req, filepath.Base(resumePath), resume); err != nil {
				return fmt.Errorf("%s", a.store.Applications.State().Error)
			}

			apps := a.store.Applications.State().Applications
			fmt.Printf("application %d submitted (status %s)\n", apps[0].ID, apps[0].Status)
			return nil
		},
	}

	cmd.Flags().StringVar(&resumePath, "resume", "", "path to resume file")
	cmd.Flags().StringVar(&coverLetter, "cover-letter", "", "cover letter text")
	cmd.Flags().StringVar(&portfolio, "portfolio", "", "portfolio URL")
	cmd.Flags().StringVar(&linkedIn, "linkedin", "", "LinkedIn profile URL")
	cmd.Flags().StringVar(&github, "github", "", "GitHub profile URL")
	cmd.Flags().StringVar(&expectedSalary, "expected-salary", "", "expected salary")
	_ = cmd.MarkFlagRequired("resume")
	return cmd
}

func applicationsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "applications",
		Aliases: []string{"apps"},
		Short:   "Manage your applications",
	}
	cmd.AddCommand(applicationsListCmd(a))
	cmd.AddCommand(applicationsShowCmd(a))
	cmd.AddCommand(applicationsWithdrawCmd(a))
	return cmd
}

func applicationsListCmd(a *app) *cobra.Command {
	var page, size int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your applications",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.store.Applications.FetchMyApplications(cmd.Context(), page, size); err != nil {
				return fmt.Errorf("%s", a.store.Applications.State().Error)
			}

			st := a.store.Applications.State()
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tJOB\tCOMPANY\tSTATUS\tAPPLIED")
			for _, app := range st.Applications {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
					app.ID, app.Job.Title, app.Job.Company.Name, app.Status,
					app.AppliedAt.Format("2006-01-02"))
			}
			w.Flush()
			fmt.Printf("page %d/%d, %d total\n", st.CurrentPage+1, st.TotalPages, st.TotalElements)
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 0, "zero-indexed page")
	cmd.Flags().IntVar(&size, "size", 20, "page size")
	return cmd
}

func applicationsShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one application",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid application id %q", args[0])
			}

			if err := a.store.Applications.FetchApplicationByID(cmd.Context(), id); err != nil {
				return fmt.Errorf("%s", a.store.Applications.State().Error)
			}

			app := a.store.Applications.State().CurrentApplication
			fmt.Printf("application %d: %s @ %s\n", app.ID, app.Job.Title, app.Job.Company.Name)
			fmt.Printf("status=%s applied=%s\n", app.Status, app.AppliedAt.Format("2006-01-02"))
			if app.InterviewDate != "" {
				fmt.Printf("interview: %s %s %s (%s)\n",
					app.InterviewDate, app.InterviewTime, app.InterviewLocation, app.InterviewType)
			}
			if app.ResumeURL != "" {
				fmt.Printf("resume: %s\n", a.client.FileURL(app.ResumeURL))
			}
			return nil
		},
	}
}

func applicationsWithdrawCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "withdraw <id>",
		Short: "Withdraw an application",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid application id %q", args[0])
			}

			if err := a.store.Applications.WithdrawApplication(cmd.Context(), id); err != nil {
				return fmt.Errorf("%s", a.store.Applications.State().Error)
			}
			fmt.Printf("application %d withdrawn\n", id)
			return nil
		},
	}
}
