package main

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ochogwuprince92/nexus-job-board-client/internal/models"
	"github.com/ochogwuprince92/nexus-job-board-client/internal/store"
)

func jobsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jobs",
		Short: "Browse and search job postings",
	}
	cmd.AddCommand(jobsListCmd(a))
	cmd.AddCommand(jobsSearchCmd(a))
	cmd.AddCommand(jobsShowCmd(a))
	return cmd
}

func renderJobs(st store.JobsState) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tCOMPANY\tLOCATION\tTYPE\tREMOTE")
	for _, job := range st.Jobs {
		location := job.Location
		if location == "" {
			location = "-"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%t\n",
			job.ID, job.Title, job.Company.Name, location, job.JobType, job.IsRemote)
	}
	w.Flush()
	fmt.Printf("page %d/%d, %d total\n", st.CurrentPage+1, st.TotalPages, st.TotalElements)
}

func jobsListCmd(a *app) *cobra.Command {
	var page, size int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List postings",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.store.Jobs.FetchJobs(cmd.Context(), page, size); err != nil {
				return fmt.Errorf("%s", a.store.Jobs.State().Error)
			}
			renderJobs(a.store.Jobs.State())
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 0, "zero-indexed page")
	cmd.Flags().IntVar(&size, "size", 20, "page size")
	return cmd
}

func jobsSearchCmd(a *app) *cobra.Command {
	var (
		query, location, jobType, experience string
		minSalary, maxSalary                 float64
		remote                               bool
		page, size                           int
	)

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search or filter postings",
		RunE: func(cmd *cobra.Command, args []string) error {
			filters := models.JobSearchFilters{
				Query:           query,
				Location:        location,
				JobType:         models.JobType(jobType),
				ExperienceLevel: models.ExperienceLevel(experience),
			}
			if cmd.Flags().Changed("min-salary") {
				filters.MinSalary = &minSalary
			}
			if cmd.Flags().Changed("max-salary") {
				filters.MaxSalary = &maxSalary
			}
			if cmd.Flags().Changed("remote") {
				filters.IsRemote = &remote
			}

			if err := a.store.Jobs.SearchJobs(cmd.Context(), filters, page, size); err != nil {
				return fmt.Errorf("%s", a.store.Jobs.State().Error)
			}
			renderJobs(a.store.Jobs.State())
			return nil
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "free-text query")
	cmd.Flags().StringVar(&location, "location", "", "location filter")
	cmd.Flags().StringVar(&jobType, "type", "", "job type")
	cmd.Flags().StringVar(&experience, "experience", "", "experience level")
	cmd.Flags().Float64Var(&minSalary, "min-salary", 0, "minimum salary")
	cmd.Flags().Float64Var(&maxSalary, "max-salary", 0, "maximum salary")
	cmd.Flags().BoolVar(&remote, "remote", false, "remote only")
	cmd.Flags().IntVar(&page, "page", 0, "zero-indexed page")
	cmd.Flags().IntVar(&size, "size", 20, "page size")
	return cmd
}

func jobsShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one posting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid job id %q", args[0])
			}

			if err := a.store.Jobs.FetchJobByID(cmd.Context(), id); err != nil {
				return fmt.Errorf("%s", a.store.Jobs.State().Error)
			}

			job := a.store.Jobs.State().CurrentJob
			fmt.Printf("%s @ %s\n", job.Title, job.Company.Name)
			fmt.Printf("type=%s experience=%s remote=%t active=%t applications=%d\n",
				job.JobType, job.ExperienceLevel, job.IsRemote, job.IsActive, job.ApplicationCount)
			if job.SalaryMin > 0 || job.SalaryMax > 0 {
				fmt.Printf("salary: %.0f-%.0f %s\n", job.SalaryMin, job.SalaryMax, job.SalaryType)
			}
			if len(job.RequiredSkills) > 0 {
				fmt.Print("skills:")
				for _, skill := range job.RequiredSkills {
					fmt.Printf(" %s", skill.Name)
				}
				fmt.Println()
			}
			fmt.Println()
			fmt.Println(job.Description)
			return nil
		},
	}
}
